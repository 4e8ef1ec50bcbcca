package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool {
	return &v
}

func TestNew(t *testing.T) {
	cmd, err := New("ls", "-l")
	require.NoError(t, err)

	assert.Equal(t, "ls", cmd.Name())
	assert.NotEmpty(t, cmd.UUID())
	assert.Equal(t, Info, cmd.Verbosity())
	assert.False(t, cmd.Complete())
	assert.False(t, cmd.Successful())
	assert.False(t, cmd.Failed())
}

func TestNewInvalidArguments(t *testing.T) {
	cases := map[string]func() (*Command, error){
		"empty name":       func() (*Command, error) { return New("") },
		"whitespace name":  func() (*Command, error) { return New("   ") },
		"empty script":     func() (*Command, error) { return NewScript("") },
		"blank script":     func() (*Command, error) { return NewScript(" \n\t\n") },
		"no name with arg": func() (*Command, error) { return New("", "-l") },
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd, err := tc()
			assert.Nil(t, cmd)
			assert.ErrorIs(t, err, ErrInvalidArguments)
		})
	}
}

func TestNewUnknownVerbosity(t *testing.T) {
	cmd, err := NewWithOptions(Options{Verbosity: "chatty"}, "ls")
	assert.Nil(t, cmd)
	assert.Error(t, err)
}

func TestVerbosityOptions(t *testing.T) {
	cases := map[string]struct {
		verbosity string
		want      Verbosity
	}{
		"default":       {"", Info},
		"symbolic":      {"debug", Debug},
		"symbolic caps": {"WARN", Warn},
		"numeric":       {"4", Fatal},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd, err := NewWithOptions(Options{Verbosity: tc.verbosity}, "ls")
			require.NoError(t, err)
			assert.Equal(t, tc.want, cmd.Verbosity())
		})
	}
}

func TestName(t *testing.T) {
	argv, err := New("whoami")
	require.NoError(t, err)
	assert.Equal(t, "whoami", argv.Name())

	script, err := NewScript("\n  echo one\n  echo two\n")
	require.NoError(t, err)
	assert.Equal(t, "echo", script.Name())
}

func TestUUIDUnique(t *testing.T) {
	a, err := New("ls")
	require.NoError(t, err)
	b, err := New("ls")
	require.NoError(t, err)
	assert.NotEqual(t, a.UUID(), b.UUID())
}

func TestAppendOutput(t *testing.T) {
	cmd, err := New("ls")
	require.NoError(t, err)

	assert.Empty(t, cmd.Stdout())
	assert.Empty(t, cmd.Stderr())

	cmd.AppendStdout("out1 ")
	cmd.AppendStdout("out2")
	cmd.AppendStderr("err1 ")
	cmd.AppendStderr("err2")

	assert.Equal(t, "out1 out2", cmd.Stdout())
	assert.Equal(t, "err1 err2", cmd.Stderr())
}

func TestSetExitStatusSuccess(t *testing.T) {
	cmd, err := New("ls")
	require.NoError(t, err)

	require.NoError(t, cmd.SetExitStatus(0))

	assert.True(t, cmd.Complete())
	assert.True(t, cmd.Successful())
	assert.False(t, cmd.Failed())

	status, ok := cmd.ExitStatus()
	assert.True(t, ok)
	assert.Equal(t, 0, status)
}

func TestSetExitStatusRaises(t *testing.T) {
	cmd, err := New("ls")
	require.NoError(t, err)

	err = cmd.SetExitStatus(1)
	require.Error(t, err)

	var failed *FailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, "ls", failed.Name)
	assert.Equal(t, 1, failed.ExitStatus)
	assert.Equal(t, "ls stdout: Nothing written\nls stderr: Nothing written\n", err.Error())

	// The status is recorded before the error propagates.
	assert.True(t, cmd.Complete())
	status, ok := cmd.ExitStatus()
	assert.True(t, ok)
	assert.Equal(t, 1, status)
}

func TestSetExitStatusRaisesWithOutput(t *testing.T) {
	cmd, err := New("make")
	require.NoError(t, err)

	cmd.AppendStdout("building")
	cmd.AppendStderr("missing target")

	err = cmd.SetExitStatus(2)
	require.Error(t, err)
	assert.Equal(t, "make stdout: building\nmake stderr: missing target\n", err.Error())
}

func TestSetExitStatusNoRaise(t *testing.T) {
	cmd, err := NewWithOptions(Options{RaiseOnNonZeroExit: boolPtr(false)}, "ls")
	require.NoError(t, err)

	require.NoError(t, cmd.SetExitStatus(1))

	assert.True(t, cmd.Complete())
	assert.False(t, cmd.Successful())
	assert.True(t, cmd.Failed())
}

func TestSetExitStatusWriteOnce(t *testing.T) {
	cmd, err := NewWithOptions(Options{RaiseOnNonZeroExit: boolPtr(false)}, "ls")
	require.NoError(t, err)

	require.NoError(t, cmd.SetExitStatus(1))
	require.NoError(t, cmd.SetExitStatus(0))

	status, ok := cmd.ExitStatus()
	assert.True(t, ok)
	assert.Equal(t, 1, status, "first write wins")
}
