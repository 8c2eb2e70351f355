package adb

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec_Success(t *testing.T) {
	client := newTestClient(t, "sh")

	out, err := client.Exec("-c", "echo hello")
	require.NoError(t, err)
	require.Equal(t, "hello", out)
}

func TestExec_JoinsLinesInOrder(t *testing.T) {
	client := newTestClient(t, "sh")

	out, err := client.Exec("-c", `printf 'a\nb\nc\n'`)
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc", out)
}

func TestExec_NonZeroExit(t *testing.T) {
	client := newTestClient(t, "sh")

	out, err := client.Exec("-c", "echo boom >&2; exit 1")
	require.Error(t, err)
	require.Empty(t, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Equal(t, "boom", exitErr.Stderr)
	assert.Contains(t, exitErr.Cmd, "sh -c")
}

func TestExec_SkipsInvalidUTF8Lines(t *testing.T) {
	client := newTestClient(t, "sh")

	out, err := client.Exec("-c", `printf 'ok\n\377\376\nstill ok\n'`)
	require.NoError(t, err)
	require.Equal(t, "ok\nstill ok", out)
}

func TestPollCommand_NilCallback(t *testing.T) {
	client := newTestClient(t, "sh")

	err := client.PollCommand([]string{"-c", "true"}, 0, nil)
	require.ErrorIs(t, err, ErrNoCallback)
}

func TestPollCommand_TimeoutEventsWhileSilent(t *testing.T) {
	client := newTestClient(t, "sh")

	timeouts := 0
	var lines []string
	err := client.PollCommand([]string{"-c", "sleep 0.3; echo done"}, 50*time.Millisecond, func(ev Event) bool {
		switch ev.Kind {
		case EventTimeout:
			timeouts++
		case EventLine:
			lines = append(lines, ev.Line)
		}
		return false
	})
	require.NoError(t, err)
	require.Greater(t, timeouts, 0)
	require.Equal(t, []string{"done"}, lines)
}

func TestPollCommand_CallbackStopKillsProcess(t *testing.T) {
	client := newTestClient(t, "sh")

	start := time.Now()
	lines := 0
	err := client.PollCommand([]string{"-c", "while true; do echo tick; sleep 0.1; done"}, time.Second, func(ev Event) bool {
		if ev.Kind == EventLine {
			lines++
			return true
		}
		return false
	})
	require.NoError(t, err)
	require.Equal(t, 1, lines)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestPollCommand_StopOnTimeoutKillsProcess(t *testing.T) {
	client := newTestClient(t, "sh")

	start := time.Now()
	err := client.PollCommand([]string{"-c", "sleep 30"}, 50*time.Millisecond, func(ev Event) bool {
		return ev.Kind == EventTimeout
	})
	require.NoError(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestPollCommand_RepeatedTimeoutsWhileProcessSilent(t *testing.T) {
	client := newTestClient(t, "sh")

	timeouts := 0
	err := client.PollCommand([]string{"-c", "sleep 30"}, 30*time.Millisecond, func(ev Event) bool {
		if ev.Kind == EventTimeout {
			timeouts++
		}
		return timeouts >= 3
	})
	require.NoError(t, err)
	require.Equal(t, 3, timeouts)
}

func TestExecToFile_WritesRawOutput(t *testing.T) {
	client := newTestClient(t, "sh")

	var buf bytes.Buffer
	err := client.ExecToFile([]string{"-c", `printf 'report\ndata\n'`}, &buf)
	require.NoError(t, err)
	require.Equal(t, "report\ndata\n", buf.String())
}

func TestExecToFile_NonZeroExit(t *testing.T) {
	client := newTestClient(t, "sh")

	var buf bytes.Buffer
	err := client.ExecToFile([]string{"-c", "echo nope >&2; exit 3"}, &buf)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "nope", exitErr.Stderr)
}

func TestExitError_Message(t *testing.T) {
	err := &ExitError{Code: 1, Cmd: "adb get-state", Stderr: "error: no devices/emulators found"}
	require.Equal(t, "adb get-state: exit status 1: error: no devices/emulators found", err.Error())

	err = &ExitError{Code: 2, Cmd: "adb version"}
	require.Equal(t, "adb version: exit status 2", err.Error())
}
