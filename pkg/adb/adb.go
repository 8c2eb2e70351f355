package adb

import (
	"errors"
	"fmt"
	"os/exec"
)

// DefaultExecutable is the adb binary resolved from PATH when the config
// does not name one.
const DefaultExecutable = "adb"

// DefaultAvailabilityPatterns are the stderr substrings that indicate no
// device or emulator is reachable. The exact wording differs between adb
// releases, so the patterns are configuration rather than constants.
var DefaultAvailabilityPatterns = []string{
	"error: no devices/emulators found",
	"unknown",
}

// GlobalOption contributes leading arguments to every invocation, derived
// from current client state.
type GlobalOption func(*Adb) []string

// SerialOption injects "-s <serial>" when a target device is set.
func SerialOption(a *Adb) []string {
	if a.serial == "" {
		return nil
	}
	return []string{"-s", a.serial}
}

// Config configures a client. The zero value selects the defaults.
type Config struct {
	// Executable is the adb binary to invoke, resolved via PATH unless it
	// is a direct path. Empty means DefaultExecutable.
	Executable string

	// GlobalOptions are applied in order to every invocation. Nil means
	// [SerialOption].
	GlobalOptions []GlobalOption

	// DisableCommandLog suppresses logging of the assembled command line
	// before each invocation.
	DisableCommandLog bool

	// DisableOutputLog suppresses logging of the captured output after a
	// completed Exec.
	DisableOutputLog bool

	// AvailabilityPatterns override DefaultAvailabilityPatterns.
	AvailabilityPatterns []string
}

// Adb invokes the Android Debug Bridge binary as a subprocess. Not safe for
// concurrent use: run one command per client at a time.
type Adb struct {
	exe                  string
	globalOpts           []GlobalOption
	availabilityPatterns []string

	logCommand bool
	logOutput  bool

	serial    string
	connected bool
}

// CreateClient creates a client for the adb binary. A nil config selects
// the defaults. The configured executable must resolve, so a missing adb
// installation surfaces here instead of on the first command.
func CreateClient(config *Config) (*Adb, error) {
	if config == nil {
		config = &Config{}
	}

	exe := config.Executable
	if exe == "" {
		exe = DefaultExecutable
	}
	if _, err := exec.LookPath(exe); err != nil {
		return nil, fmt.Errorf("adb executable %s: %w", exe, err)
	}

	opts := config.GlobalOptions
	if opts == nil {
		opts = []GlobalOption{SerialOption}
	}

	patterns := config.AvailabilityPatterns
	if patterns == nil {
		patterns = DefaultAvailabilityPatterns
	}

	return &Adb{
		exe:                  exe,
		globalOpts:           append([]GlobalOption(nil), opts...),
		availabilityPatterns: append([]string(nil), patterns...),
		logCommand:           !config.DisableCommandLog,
		logOutput:            !config.DisableOutputLog,
	}, nil
}

// S sets the target device serial for the next invocation only. The value
// is cleared once that invocation finishes, unless Connect pinned it.
func (a *Adb) S(serial string) *Adb {
	a.serial = serial
	return a
}

// Connect pins the target device serial for all following invocations,
// until Disconnect.
func (a *Adb) Connect(serial string) error {
	if a.connected {
		return fmt.Errorf("adb: already connected to %s", a.serial)
	}
	a.serial = serial
	a.connected = true
	return nil
}

// Disconnect clears a pinned serial.
func (a *Adb) Disconnect() error {
	if !a.connected {
		return errors.New("adb: not connected")
	}
	a.serial = ""
	a.connected = false
	return nil
}

// Reconnect switches the pinned serial to a new device.
func (a *Adb) Reconnect(serial string) error {
	if a.connected {
		if err := a.Disconnect(); err != nil {
			return err
		}
	}
	return a.Connect(serial)
}

// IsConnected reports whether a serial is pinned.
func (a *Adb) IsConnected() bool {
	return a.connected
}

// EnableCommandLogging toggles logging of assembled command lines.
func (a *Adb) EnableCommandLogging(enabled bool) *Adb {
	a.logCommand = enabled
	return a
}

// EnableOutputLogging toggles logging of captured command output.
func (a *Adb) EnableOutputLogging(enabled bool) *Adb {
	a.logOutput = enabled
	return a
}

// reset clears one-shot invocation state. Runs after every command.
func (a *Adb) reset() {
	if !a.connected {
		a.serial = ""
	}
}

// buildArgs assembles [executable, globalOptions..., args...]. Empty tokens
// are dropped so the final command line carries no stray blanks.
func (a *Adb) buildArgs(args []string) []string {
	argv := []string{a.exe}
	for _, opt := range a.globalOpts {
		argv = append(argv, opt(a)...)
	}
	for _, arg := range args {
		if arg != "" {
			argv = append(argv, arg)
		}
	}
	return argv
}
