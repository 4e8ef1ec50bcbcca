package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/johndagostino/sshkit/core/command"
	"github.com/spf13/cobra"
)

var (
	consoleFlags    commandFlags
	consoleSSHFlags sshFlags
)

// consoleCmd interactively renders and runs commands
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactively compile and run commands.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}

		be, closer, err := consoleSSHFlags.connect(log)
		if err != nil {
			return err
		}
		defer closer()

		rl, err := readline.New("sshkit> ")
		if err != nil {
			return err
		}
		defer rl.Close()

		for {
			line, err := rl.Readline()
			switch {
			case err == io.EOF:
				return nil

			case err == readline.ErrInterrupt:
				continue

			case err != nil:
				return err

			case strings.TrimSpace(line) == "":
				continue
			}

			c, err := consoleFlags.build(cfg, []string{line})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", err)
				continue
			}

			if err := be.Run(cmd.Context(), cfg, c); err != nil {
				var failed *command.FailedError
				if !errors.As(err, &failed) {
					return err
				}
				fmt.Fprint(cmd.ErrOrStderr(), failed.Error())
				continue
			}

			fmt.Fprint(cmd.OutOrStdout(), c.Stdout())
			fmt.Fprint(cmd.ErrOrStderr(), c.Stderr())
		}
	},
}

func init() {
	consoleFlags.register(consoleCmd)
	consoleSSHFlags.register(consoleCmd)
	rootCmd.AddCommand(consoleCmd)
}
