// Package backend executes rendered commands locally or over SSH and records
// their outcome on the command.
package backend

import (
	"context"

	"github.com/johndagostino/sshkit/core/command"
	"github.com/johndagostino/sshkit/core/config"
)

// Backend runs a command and records its outcome.
type Backend interface {
	// Run renders cmd against cfg, executes the resulting string, streams
	// captured output into cmd's accumulators, and records the exit status.
	// When the command exits non-zero and its raise policy is enabled the
	// returned error is the command's *command.FailedError.
	Run(ctx context.Context, cfg *config.Configuration, cmd *command.Command) error
}

// appendWriter streams process output into one of a command's accumulators.
type appendWriter struct {
	cmd    *command.Command
	stream string
	append func(string)
	logf   func(cmd *command.Command, stream, chunk string)
}

func (w *appendWriter) Write(p []byte) (int, error) {
	chunk := string(p)
	w.append(chunk)
	if w.logf != nil {
		w.logf(w.cmd, w.stream, chunk)
	}
	return len(p), nil
}
