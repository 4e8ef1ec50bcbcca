package backend

import (
	"context"
	"errors"
	"os/exec"

	"github.com/johndagostino/sshkit/core/command"
	"github.com/johndagostino/sshkit/core/config"
	"github.com/johndagostino/sshkit/core/logger"
)

const defaultShell = "/bin/sh"

// Local runs commands on this machine through the shell.
type Local struct {
	// Shell overrides the shell binary, /bin/sh when empty.
	Shell string
	// Log receives lifecycle events; nil disables logging.
	Log *logger.Logger
}

var _ Backend = (*Local)(nil)

// Run implements Backend.
func (l *Local) Run(ctx context.Context, cfg *config.Configuration, cmd *command.Command) error {
	rendered := cmd.Render(cfg)
	l.Log.Start(cmd, rendered)

	shell := l.Shell
	if shell == "" {
		shell = defaultShell
	}

	proc := exec.CommandContext(ctx, shell, "-c", rendered)
	proc.Stdout = &appendWriter{cmd: cmd, stream: "stdout", append: cmd.AppendStdout, logf: l.Log.Output}
	proc.Stderr = &appendWriter{cmd: cmd, stream: "stderr", append: cmd.AppendStderr, logf: l.Log.Output}

	status := 0
	if err := proc.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The shell never started; the command stays pending.
			return err
		}
		status = exitErr.ExitCode()
	}

	err := cmd.SetExitStatus(status)
	l.Log.Finish(cmd)
	return err
}
