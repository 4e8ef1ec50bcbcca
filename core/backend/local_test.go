package backend

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/johndagostino/sshkit/core/command"
	"github.com/johndagostino/sshkit/core/config"
	"github.com/johndagostino/sshkit/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRun(t *testing.T) {
	cmd, err := command.New("echo", "hello")
	require.NoError(t, err)

	local := &Local{}
	require.NoError(t, local.Run(context.Background(), config.Default(), cmd))

	assert.True(t, cmd.Successful())
	assert.Equal(t, "hello\n", cmd.Stdout())
	assert.Empty(t, cmd.Stderr())
}

func TestLocalRunStderr(t *testing.T) {
	cmd, err := command.NewScript("echo oops >&2\nexit 3")
	require.NoError(t, err)

	local := &Local{}
	err = local.Run(context.Background(), config.Default(), cmd)
	require.Error(t, err)

	var failed *command.FailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, 3, failed.ExitStatus)
	assert.Equal(t, "oops\n", failed.Stderr)

	assert.True(t, cmd.Complete())
	assert.True(t, cmd.Failed())
}

func TestLocalRunFailureNoRaise(t *testing.T) {
	noRaise := false
	cmd, err := command.NewWithOptions(command.Options{RaiseOnNonZeroExit: &noRaise}, "false")
	require.NoError(t, err)

	local := &Local{}
	require.NoError(t, local.Run(context.Background(), config.Default(), cmd))

	assert.True(t, cmd.Failed())
	status, ok := cmd.ExitStatus()
	assert.True(t, ok)
	assert.Equal(t, 1, status)
}

func TestLocalRunAppliesEnvironment(t *testing.T) {
	cmd, err := command.NewWithOptions(command.Options{
		Env: command.NewEnvironment("greeting=hi"),
	}, "printenv", "GREETING")
	require.NoError(t, err)

	local := &Local{}
	require.NoError(t, local.Run(context.Background(), config.Default(), cmd))
	assert.Equal(t, "hi\n", cmd.Stdout())
}

func TestLocalRunLogsLifecycle(t *testing.T) {
	var buf bytes.Buffer

	cmd, err := command.New("echo", "hello")
	require.NoError(t, err)

	local := &Local{Log: logger.New(&buf, command.Debug)}
	require.NoError(t, local.Run(context.Background(), config.Default(), cmd))

	out := buf.String()
	assert.Contains(t, out, "Running /usr/bin/env echo hello")
	assert.Contains(t, out, "stdout: hello")
	assert.Contains(t, out, "echo finished successfully")
}

func TestLocalRunBadShell(t *testing.T) {
	cmd, err := command.New("echo", "hello")
	require.NoError(t, err)

	local := &Local{Shell: "/does/not/exist"}
	err = local.Run(context.Background(), config.Default(), cmd)
	require.Error(t, err)

	var failed *command.FailedError
	assert.False(t, errors.As(err, &failed), "startup failures are not command failures")
	assert.False(t, cmd.Complete(), "the command stays pending")
}
