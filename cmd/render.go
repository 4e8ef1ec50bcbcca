package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderFlags commandFlags

// renderCmd compiles a command without running it
var renderCmd = &cobra.Command{
	Use:   "render [flags] -- COMMAND [ARGS...]",
	Short: "Compile a command description into its shell one-liner.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		c, err := renderFlags.build(cfg, args)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), c.Render(cfg))
		return nil
	},
}

func init() {
	renderFlags.register(renderCmd)
	rootCmd.AddCommand(renderCmd)
}
