package adb

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCallback is returned by PollCommand when no callback was
	// supplied. A polled command cannot run without one.
	ErrNoCallback = errors.New("adb: poll command requires a callback")

	// ErrDeviceUnavailable is returned by commands that refuse to run
	// without a reachable device.
	ErrDeviceUnavailable = errors.New("adb: no device available")
)

// ExitError reports a command that ran and exited with a non-zero status.
// Cmd holds the fully formatted command line and Stderr the captured error
// output, trimmed of surrounding whitespace.
type ExitError struct {
	Code   int
	Cmd    string
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: exit status %d", e.Cmd, e.Code)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Cmd, e.Code, e.Stderr)
}
