package cmd

import (
	"errors"
	"io/fs"

	"github.com/johndagostino/sshkit/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var cfgPath string

// loadConfig reads the configuration, falling back to the built-in defaults
// when none was initialized.
func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(afero.NewOsFs(), cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sshkit",
	Short: "Compile shell commands and run them locally or over SSH",
	Long: `sshkit compiles structured command descriptions (environment, working
directory, privilege switching, backgrounding, umask) into single shell
command strings and runs them locally or on remote hosts.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
