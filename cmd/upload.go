package cmd

import (
	"errors"

	"github.com/johndagostino/sshkit/core/backend"
	"github.com/spf13/cobra"
)

var (
	uploadSSHFlags sshFlags
	uploadMode     string
)

// uploadCmd copies a local file to a remote host
var uploadCmd = &cobra.Command{
	Use:   "upload --host HOST LOCAL REMOTE",
	Short: "Copy a local file to a remote host over scp.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if !uploadSSHFlags.remote() {
			return errors.New("upload requires --host")
		}

		remote := &backend.SSH{
			Addr:         uploadSSHFlags.host,
			User:         uploadSSHFlags.user,
			Password:     uploadSSHFlags.password,
			IdentityFile: uploadSSHFlags.identity,
		}
		if err := remote.Connect(); err != nil {
			return err
		}
		defer remote.Close()

		return remote.Upload(args[0], args[1], uploadMode)
	},
}

func init() {
	uploadSSHFlags.register(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadMode, "mode", "0644", "permissions for the remote file")
	uploadCmd.MarkFlagRequired("host")
	rootCmd.AddCommand(uploadCmd)
}
