// Package command compiles structured descriptions of shell invocations into
// single command strings and tracks their outcome once executed.
package command

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrInvalidArguments reports a construction attempt with neither an
// executable nor a script body.
var ErrInvalidArguments = errors.New("command: must be constructed with a command to run or a script body")

// Options adjusts how a Command is compiled and evaluated. The zero value
// is valid and leaves every wrap stage disabled.
type Options struct {
	// Env holds per-command environment variables, merged on top of the
	// configuration's default environment at render time.
	Env Environment
	// Dir is the working directory to cd into before running.
	Dir string
	// User switches to this identity via sudo su before running.
	User string
	// Group runs the command under this group via sg.
	Group string
	// Background detaches the command with nohup.
	Background bool
	// Umask applies before running; falls back to the configured default
	// when empty.
	Umask string
	// Verbosity accepts a numeric level ("0") or a symbolic name ("debug").
	// Empty means Info. Unknown values fail at construction.
	Verbosity string
	// RaiseOnNonZeroExit overrides the failure policy when non-nil. The
	// default is to raise.
	RaiseOnNonZeroExit *bool
}

// Command is the record of one shell invocation: its immutable intent set at
// construction, and its outcome filled in by an executor once the process
// terminates.
//
// The outcome operations (AppendStdout, AppendStderr, SetExitStatus) assume a
// single executor writes to any given Command. No ordering is guaranteed
// between SetExitStatus and appends still in flight from another goroutine.
type Command struct {
	uuid      string
	argv      []string
	script    string
	opts      Options
	verbosity Verbosity

	mu         sync.Mutex
	exitStatus *int
	stdout     strings.Builder
	stderr     strings.Builder
}

// New builds a Command from an executable name and its arguments.
func New(name string, args ...string) (*Command, error) {
	return NewWithOptions(Options{}, name, args...)
}

// NewWithOptions builds a Command from an executable name, its arguments and
// explicit options.
func NewWithOptions(opts Options, name string, args ...string) (*Command, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidArguments
	}
	return build(append([]string{name}, args...), "", opts)
}

// NewScript builds a Command from a multi-line script body. The body is
// collapsed to a single line at render time.
func NewScript(body string) (*Command, error) {
	return NewScriptWithOptions(Options{}, body)
}

// NewScriptWithOptions builds a script Command with explicit options.
func NewScriptWithOptions(opts Options, body string) (*Command, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrInvalidArguments
	}
	return build(nil, body, opts)
}

func build(argv []string, script string, opts Options) (*Command, error) {
	verbosity, err := ParseVerbosity(opts.Verbosity)
	if err != nil {
		return nil, err
	}

	return &Command{
		uuid:      uuid.NewString(),
		argv:      argv,
		script:    script,
		opts:      opts,
		verbosity: verbosity,
	}, nil
}

// UUID returns the correlation token assigned at construction. It is only
// useful for correlating log lines, never for comparing command content.
func (c *Command) UUID() string {
	return c.uuid
}

// Name returns the display name: the base executable token.
func (c *Command) Name() string {
	raw := c.script
	if len(c.argv) > 0 {
		raw = c.argv[0]
	}
	if fields := strings.Fields(raw); len(fields) > 0 {
		return fields[0]
	}
	return raw
}

// Verbosity returns the logging severity for this command's lifecycle events.
func (c *Command) Verbosity() Verbosity {
	return c.verbosity
}

// AppendStdout adds a chunk to the stdout accumulator. Chunks are only ever
// appended, never replaced.
func (c *Command) AppendStdout(chunk string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stdout.WriteString(chunk)
}

// AppendStderr adds a chunk to the stderr accumulator.
func (c *Command) AppendStderr(chunk string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stderr.WriteString(chunk)
}

// Stdout returns everything the executor captured from stdout so far.
func (c *Command) Stdout() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stdout.String()
}

// Stderr returns everything the executor captured from stderr so far.
func (c *Command) Stderr() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stderr.String()
}

// ExitStatus returns the recorded exit status. ok is false while the command
// is still pending.
func (c *Command) ExitStatus() (status int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exitStatus == nil {
		return 0, false
	}
	return *c.exitStatus, true
}

// Complete reports whether an exit status has been recorded.
func (c *Command) Complete() bool {
	_, ok := c.ExitStatus()
	return ok
}

// Successful reports whether the command completed with exit status zero.
func (c *Command) Successful() bool {
	status, ok := c.ExitStatus()
	return ok && status == 0
}

// Failed reports whether the command completed with a non-zero exit status.
// While the raise policy is enabled this state is only reachable by callers
// that ignore the error from SetExitStatus.
func (c *Command) Failed() bool {
	status, ok := c.ExitStatus()
	return ok && status != 0
}

// SetExitStatus records the command's exit status, completing it. The first
// write wins; later calls are no-ops.
//
// When the raise policy is enabled and code is non-zero, the returned error
// is a *FailedError summarizing the captured output. The status is recorded before
// the error is built, so the Command is Complete either way.
func (c *Command) SetExitStatus(code int) error {
	c.mu.Lock()
	if c.exitStatus != nil {
		c.mu.Unlock()
		return nil
	}
	c.exitStatus = &code
	stdout, stderr := c.stdout.String(), c.stderr.String()
	c.mu.Unlock()

	if code != 0 && c.raises() {
		return &FailedError{
			Name:       c.Name(),
			ExitStatus: code,
			Stdout:     stdout,
			Stderr:     stderr,
		}
	}
	return nil
}

func (c *Command) raises() bool {
	if c.opts.RaiseOnNonZeroExit != nil {
		return *c.opts.RaiseOnNonZeroExit
	}
	return true
}

// nothingWritten is the placeholder reported for streams that produced no
// output before the command failed.
const nothingWritten = "Nothing written"

// FailedError reports a command that terminated with a non-zero exit status
// while the raise policy was enabled.
type FailedError struct {
	Name       string
	ExitStatus int
	Stdout     string
	Stderr     string
}

func (e *FailedError) Error() string {
	stdout, stderr := e.Stdout, e.Stderr
	if stdout == "" {
		stdout = nothingWritten
	}
	if stderr == "" {
		stderr = nothingWritten
	}
	return fmt.Sprintf("%s stdout: %s\n%s stderr: %s\n", e.Name, stdout, e.Name, stderr)
}
