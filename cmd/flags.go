package cmd

import (
	"fmt"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/johndagostino/sshkit/core/command"
	"github.com/johndagostino/sshkit/core/config"
	"github.com/spf13/cobra"
)

// commandFlags carries the per-command options shared by render and run.
type commandFlags struct {
	env        []string
	dir        string
	user       string
	group      string
	umask      string
	verbosity  string
	background bool
	noRaise    bool
	script     bool
}

func (f *commandFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.env, "env", "e", nil, "environment variable KEY=value (repeatable)")
	flags.StringVarP(&f.dir, "dir", "d", "", "working directory on the target")
	flags.StringVarP(&f.user, "user", "u", "", "run as this user via sudo su")
	flags.StringVarP(&f.group, "group", "g", "", "run under this group via sg")
	flags.StringVar(&f.umask, "umask", "", "umask to apply (octal string)")
	flags.StringVarP(&f.verbosity, "verbosity", "v", "", "log verbosity: level number or debug|info|warn|error|fatal")
	flags.BoolVarP(&f.background, "background", "b", false, "detach with nohup")
	flags.BoolVar(&f.noRaise, "no-raise", false, "report non-zero exits as state instead of an error")
	flags.BoolVar(&f.script, "script", false, "treat the argument as a literal script body")
}

// build constructs the command from the positional arguments and flags. A
// single argument containing whitespace is tokenized shell-style for
// convenience, so `sshkit run "ls -l"` works like `sshkit run ls -l`.
func (f *commandFlags) build(cfg *config.Configuration, args []string) (*command.Command, error) {
	opts := command.Options{
		Dir:        f.dir,
		User:       f.user,
		Group:      f.group,
		Umask:      f.umask,
		Verbosity:  f.verbosity,
		Background: f.background,
	}

	raise := cfg.RaiseOnNonZeroExit && !f.noRaise
	opts.RaiseOnNonZeroExit = &raise

	for _, entry := range f.env {
		split := strings.SplitN(entry, "=", 2)
		if len(split) != 2 {
			return nil, fmt.Errorf("malformed --env entry %q, want KEY=value", entry)
		}
		opts.Env = opts.Env.Set(split[0], split[1])
	}

	if f.script {
		return command.NewScriptWithOptions(opts, strings.Join(args, "\n"))
	}

	if len(args) == 1 && strings.ContainsAny(args[0], " \t") {
		tokens, err := shlex.Split(args[0], true)
		if err != nil {
			return nil, fmt.Errorf("tokenizing %q: %w", args[0], err)
		}
		args = tokens
	}

	if len(args) == 0 {
		return nil, command.ErrInvalidArguments
	}
	return command.NewWithOptions(opts, args[0], args[1:]...)
}
