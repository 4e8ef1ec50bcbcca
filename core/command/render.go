package command

import (
	"strings"

	"github.com/johndagostino/sshkit/core/config"
)

// envLauncher resolves executables against PATH on the target host so the
// rendered string doesn't depend on the remote shell's hash table.
const envLauncher = "/usr/bin/env"

// reservedWords are interpreted by the shell itself and must never be
// prefixed with the env launcher.
var reservedWords = map[string]bool{
	"if":       true,
	"test":     true,
	"time":     true,
	"case":     true,
	"for":      true,
	"function": true,
	"until":    true,
	"while":    true,
}

// Render compiles the command into the single shell line handed to the
// executor. It is pure and repeatable: it never mutates the Command, and it
// reads cfg fresh on every call so configuration changes between renders are
// honored.
//
// Wrap stages apply innermost to outermost: launcher, background, group,
// user, environment, umask, directory. A stage whose option is unset is the
// identity transform.
//
// The quoting between the group and user stages is deliberately asymmetric:
// the group stage always backslash-escapes its quotes for a shell one level
// removed, while the user stage always uses plain quotes around its immediate
// payload. Downstream consumers depend on the literal string shape, so a
// command with both options renders as
//
//	sudo su U -c "sg G -c \"<inner>\""
//
// Nesting deeper than these two privilege layers is undefined.
func (c *Command) Render(cfg *config.Configuration) string {
	if cfg == nil {
		cfg = &config.Configuration{}
	}

	out := c.mapped()
	out = c.wrapBackground(out)
	out = c.wrapGroup(out)
	out = c.wrapUser(out)
	out = c.wrapEnvironment(out, cfg)
	out = c.wrapUmask(out, cfg)
	out = c.wrapDir(out)
	return out
}

// normalized collapses a script body to one line: lines trimmed, blanks
// dropped, joined with "; ". Argv commands are space-joined as given.
func (c *Command) normalized() string {
	if len(c.argv) > 0 {
		return strings.Join(c.argv, " ")
	}

	var lines []string
	for _, line := range strings.Split(c.script, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "; ")
}

func (c *Command) mapped() string {
	base := c.normalized()
	if fields := strings.Fields(base); len(fields) > 0 && reservedWords[fields[0]] {
		return base
	}
	return envLauncher + " " + base
}

func (c *Command) wrapBackground(cur string) string {
	if !c.opts.Background {
		return cur
	}
	return "nohup " + cur + " > /dev/null &"
}

// wrapGroup escapes its quotes unconditionally, even when no user wrap
// follows.
func (c *Command) wrapGroup(cur string) string {
	if c.opts.Group == "" {
		return cur
	}
	return "sg " + c.opts.Group + " -c \\\"" + cur + "\\\""
}

func (c *Command) wrapUser(cur string) string {
	if c.opts.User == "" {
		return cur
	}
	return "sudo su " + c.opts.User + " -c \"" + cur + "\""
}

// wrapEnvironment overlays the per-command environment on the configured
// default. Default keys keep their position when overridden; new keys are
// appended after them.
func (c *Command) wrapEnvironment(cur string, cfg *config.Configuration) string {
	merged := NewEnvironment(cfg.DefaultEnv...).Merge(c.opts.Env)
	if len(merged) == 0 {
		return cur
	}
	return "( " + merged.String() + " " + cur + " )"
}

func (c *Command) wrapUmask(cur string, cfg *config.Configuration) string {
	umask := c.opts.Umask
	if umask == "" {
		umask = cfg.DefaultUmask
	}
	if umask == "" {
		return cur
	}
	return "umask " + umask + " && " + cur
}

func (c *Command) wrapDir(cur string) string {
	if c.opts.Dir == "" {
		return cur
	}
	return "cd " + c.opts.Dir + " && " + cur
}
