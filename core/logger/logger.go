// Package logger writes verbosity-filtered command lifecycle events.
package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/johndagostino/sshkit/core/command"
)

var (
	colorDebug = color.New(color.FgCyan)
	colorInfo  = color.New(color.FgBlue, color.Bold)
	colorWarn  = color.New(color.FgYellow, color.Bold)
	colorError = color.New(color.FgRed, color.Bold)
)

func levelColor(v command.Verbosity) *color.Color {
	switch {
	case v <= command.Debug:
		return colorDebug
	case v == command.Info:
		return colorInfo
	case v == command.Warn:
		return colorWarn
	default:
		return colorError
	}
}

// Logger reports command lifecycle events at or above its threshold. Events
// below the threshold are dropped, so a command created at Debug verbosity is
// silent under the default Info threshold.
type Logger struct {
	mu        sync.Mutex
	out       io.Writer
	threshold command.Verbosity
}

// New creates a Logger writing to out, dropping events below threshold.
func New(out io.Writer, threshold command.Verbosity) *Logger {
	return &Logger{out: out, threshold: threshold}
}

// Start reports that a command is about to run, with its rendered string.
func (l *Logger) Start(cmd *command.Command, rendered string) {
	l.logf(cmd.Verbosity(), "[%s] Running %s", cmd.UUID(), rendered)
}

// Output reports a chunk captured from one of the command's streams. Output
// is always a Debug-level event regardless of the command's verbosity.
func (l *Logger) Output(cmd *command.Command, stream, chunk string) {
	l.logf(command.Debug, "[%s] %s: %s", cmd.UUID(), stream, chunk)
}

// Finish reports the command's recorded outcome.
func (l *Logger) Finish(cmd *command.Command) {
	status, ok := cmd.ExitStatus()
	switch {
	case !ok:
		l.logf(cmd.Verbosity(), "[%s] %s still pending", cmd.UUID(), cmd.Name())
	case status == 0:
		l.logf(cmd.Verbosity(), "[%s] %s finished successfully", cmd.UUID(), cmd.Name())
	default:
		l.logf(command.Error, "[%s] %s failed with exit status %d", cmd.UUID(), cmd.Name(), status)
	}
}

func (l *Logger) logf(v command.Verbosity, format string, args ...interface{}) {
	if l == nil || v < l.threshold {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", levelColor(v).Sprintf("%5s", v), fmt.Sprintf(format, args...))
}
