package backend

import (
	"context"
	"errors"
	"fmt"
	"os"

	scp "github.com/bramvdbogaerde/go-scp"
	"github.com/johndagostino/sshkit/core/command"
	"github.com/johndagostino/sshkit/core/config"
	"github.com/johndagostino/sshkit/core/logger"
	"golang.org/x/crypto/ssh"
)

// SSH runs commands on a remote host over an SSH connection.
type SSH struct {
	// Addr is the host:port to dial.
	Addr string
	// User is the login user on the remote host.
	User string
	// Password enables password authentication when non-empty.
	Password string
	// IdentityFile enables public key authentication when non-empty.
	IdentityFile string
	// HostKeyCallback verifies the remote host key. When nil the key is not
	// verified, matching the deployment-tooling trust model.
	HostKeyCallback ssh.HostKeyCallback
	// Log receives lifecycle events; nil disables logging.
	Log *logger.Logger

	client *ssh.Client
}

var _ Backend = (*SSH)(nil)

// Connect dials the remote host. It must be called before Run or Upload.
func (s *SSH) Connect() error {
	var auth []ssh.AuthMethod
	if s.IdentityFile != "" {
		pem, err := os.ReadFile(s.IdentityFile)
		if err != nil {
			return err
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return err
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if s.Password != "" {
		auth = append(auth, ssh.Password(s.Password))
	}

	hostKeyCallback := s.HostKeyCallback
	if hostKeyCallback == nil {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	}

	client, err := ssh.Dial("tcp", s.Addr, &ssh.ClientConfig{
		User:            s.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
	})
	if err != nil {
		return fmt.Errorf("dialing %s: %w", s.Addr, err)
	}

	s.client = client
	return nil
}

// Close tears down the connection.
func (s *SSH) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Run implements Backend.
func (s *SSH) Run(ctx context.Context, cfg *config.Configuration, cmd *command.Command) error {
	if s.client == nil {
		return errors.New("backend: not connected")
	}

	rendered := cmd.Render(cfg)
	s.Log.Start(cmd, rendered)

	session, err := s.client.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()

	session.Stdout = &appendWriter{cmd: cmd, stream: "stdout", append: cmd.AppendStdout, logf: s.Log.Output}
	session.Stderr = &appendWriter{cmd: cmd, stream: "stderr", append: cmd.AppendStderr, logf: s.Log.Output}

	// Sessions have no context support; closing the session unblocks Run
	// when the context expires.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			session.Close()
		case <-done:
		}
	}()

	status := 0
	if err := session.Run(rendered); err != nil {
		var exitErr *ssh.ExitError
		if !errors.As(err, &exitErr) {
			// Transport failure; the command stays pending.
			return err
		}
		status = exitErr.ExitStatus()
	}

	err = cmd.SetExitStatus(status)
	s.Log.Finish(cmd)
	return err
}

// Upload copies a local file to the remote host via scp. permissions is an
// octal string such as "0644".
func (s *SSH) Upload(localPath, remotePath, permissions string) error {
	if s.client == nil {
		return errors.New("backend: not connected")
	}

	scpClient, err := scp.NewClientBySSH(s.client)
	if err != nil {
		return err
	}

	fd, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer fd.Close()

	return scpClient.CopyFile(fd, remotePath, permissions)
}
