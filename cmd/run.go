package cmd

import (
	"fmt"

	"github.com/johndagostino/sshkit/core/backend"
	"github.com/johndagostino/sshkit/core/command"
	"github.com/johndagostino/sshkit/core/config"
	"github.com/johndagostino/sshkit/core/logger"
	"github.com/spf13/cobra"
)

// sshFlags carries the connection options shared by run, upload and console.
type sshFlags struct {
	host     string
	user     string
	password string
	identity string
}

func (f *sshFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.host, "host", "H", "", "remote host:port; runs locally when empty")
	flags.StringVar(&f.user, "ssh-user", "", "remote login user")
	flags.StringVar(&f.password, "password", "", "remote password")
	flags.StringVarP(&f.identity, "identity", "i", "", "private key file for authentication")
}

func (f *sshFlags) remote() bool {
	return f.host != ""
}

// connect builds the backend selected by the flags. The caller must call the
// returned closer when done.
func (f *sshFlags) connect(log *logger.Logger) (backend.Backend, func() error, error) {
	if !f.remote() {
		return &backend.Local{Log: log}, func() error { return nil }, nil
	}

	remote := &backend.SSH{
		Addr:         f.host,
		User:         f.user,
		Password:     f.password,
		IdentityFile: f.identity,
		Log:          log,
	}
	if err := remote.Connect(); err != nil {
		return nil, nil, err
	}
	return remote, remote.Close, nil
}

// newLogger builds the lifecycle logger from the configured threshold.
func newLogger(cmd *cobra.Command, cfg *config.Configuration) (*logger.Logger, error) {
	threshold, err := command.ParseVerbosity(cfg.DefaultVerbosity)
	if err != nil {
		return nil, err
	}
	return logger.New(cmd.ErrOrStderr(), threshold), nil
}

var (
	runFlags    commandFlags
	runSSHFlags sshFlags
)

// runCmd compiles a command and executes it
var runCmd = &cobra.Command{
	Use:   "run [flags] -- COMMAND [ARGS...]",
	Short: "Compile a command and run it locally or on a remote host.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		c, err := runFlags.build(cfg, args)
		if err != nil {
			return err
		}

		log, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}

		be, closer, err := runSSHFlags.connect(log)
		if err != nil {
			return err
		}
		defer closer()

		runErr := be.Run(cmd.Context(), cfg, c)

		fmt.Fprint(cmd.OutOrStdout(), c.Stdout())
		fmt.Fprint(cmd.ErrOrStderr(), c.Stderr())
		return runErr
	},
}

func init() {
	runFlags.register(runCmd)
	runSSHFlags.register(runCmd)
	rootCmd.AddCommand(runCmd)
}
