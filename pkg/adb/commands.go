package adb

import (
	"errors"
	"os"
	"strings"
	"time"
)

// adb subcommand names.
const (
	cmdShell         = "shell"
	cmdExecOut       = "exec-out"
	cmdLogcat        = "logcat"
	cmdPull          = "pull"
	cmdPush          = "push"
	cmdUninstall     = "uninstall"
	cmdInstall       = "install"
	cmdDevices       = "devices"
	cmdForward       = "forward"
	cmdReverse       = "reverse"
	cmdGetSerialno   = "get-serialno"
	cmdWaitForDevice = "wait-for-device"
	cmdKillServer    = "kill-server"
	cmdStartServer   = "start-server"
	cmdGetState      = "get-state"
	cmdReboot        = "reboot"
	cmdRoot          = "root"
	cmdSync          = "sync"
	cmdEmu           = "emu"
	cmdVersion       = "version"
	cmdBugreport     = "bugreport"
)

// Version reports the adb client version.
func (a *Adb) Version() (string, error) {
	return a.Exec(cmdVersion)
}

// Devices lists attached devices and emulators. opts are passed through,
// e.g. "-l" for the long listing.
func (a *Adb) Devices(opts ...string) (string, error) {
	return a.Exec(append([]string{cmdDevices}, opts...)...)
}

// Shell runs a command on the device through "adb shell" and waits for it
// to finish.
func (a *Adb) Shell(args ...string) (string, error) {
	return a.Exec(append([]string{cmdShell}, args...)...)
}

// ExecOut runs a command through "adb exec-out", which skips the pty and
// delivers raw output.
func (a *Adb) ExecOut(args ...string) (string, error) {
	return a.Exec(append([]string{cmdExecOut}, args...)...)
}

// Logcat dumps device logs and waits for the command to finish. For
// continuous streaming use PollLogcat.
func (a *Adb) Logcat(args ...string) (string, error) {
	return a.Exec(append([]string{cmdLogcat}, args...)...)
}

// PollLogcat streams device logs to fn. Process failures are discarded:
// log streaming is best effort and ends when fn asks to stop or the process
// dies.
func (a *Adb) PollLogcat(timeout time.Duration, fn PollFunc, args ...string) error {
	err := a.PollCommand(append([]string{cmdLogcat}, args...), timeout, fn)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

// PollOut streams the output of a device command to fn, through "adb shell"
// when viaShell is set and through "adb exec-out" otherwise.
func (a *Adb) PollOut(timeout time.Duration, fn PollFunc, viaShell bool, args ...string) error {
	sub := cmdExecOut
	if viaShell {
		sub = cmdShell
	}
	return a.PollCommand(append([]string{sub}, args...), timeout, fn)
}

// Push copies files or directories from the host to the device.
func (a *Adb) Push(src []string, dest string, opts ...string) (string, error) {
	args := append([]string{cmdPush}, src...)
	args = append(args, dest)
	args = append(args, opts...)
	return a.Exec(args...)
}

// Pull copies files or directories from the device to the host.
func (a *Adb) Pull(src []string, dest string, opts ...string) (string, error) {
	args := append([]string{cmdPull}, src...)
	args = append(args, dest)
	args = append(args, opts...)
	return a.Exec(args...)
}

// Install installs an apk from the host, with opts such as "-r" to replace
// an existing app.
func (a *Adb) Install(apk string, opts ...string) (string, error) {
	args := append([]string{cmdInstall}, opts...)
	args = append(args, apk)
	return a.Exec(args...)
}

// Uninstall removes an app by package name.
func (a *Adb) Uninstall(app string, opts ...string) (string, error) {
	args := append([]string{cmdUninstall}, opts...)
	args = append(args, app)
	return a.Exec(args...)
}

// Forward forwards a host socket to a device socket, e.g. "tcp:8000"
// "tcp:9000".
func (a *Adb) Forward(args ...string) (string, error) {
	return a.Exec(append([]string{cmdForward}, args...)...)
}

// Reverse forwards a device socket to a host socket.
func (a *Adb) Reverse(args ...string) (string, error) {
	return a.Exec(append([]string{cmdReverse}, args...)...)
}

// Reboot restarts the device.
func (a *Adb) Reboot() (string, error) {
	return a.Exec(cmdReboot)
}

// Root restarts adbd on the device with root permissions.
func (a *Adb) Root() (string, error) {
	return a.Exec(cmdRoot)
}

// GetSerialno prints the serial number of the target device.
func (a *Adb) GetSerialno() (string, error) {
	return a.Exec(cmdGetSerialno)
}

// GetState prints the connection state of the target device.
func (a *Adb) GetState() (string, error) {
	return a.Exec(cmdGetState)
}

// WaitForDevice blocks until the target device is online.
func (a *Adb) WaitForDevice() (string, error) {
	return a.Exec(cmdWaitForDevice)
}

// Sync flushes device filesystem buffers via "adb shell sync".
func (a *Adb) Sync() (string, error) {
	return a.Exec(cmdShell, cmdSync)
}

// Emu sends a command to the emulator console.
func (a *Adb) Emu(args ...string) (string, error) {
	return a.Exec(append([]string{cmdEmu}, args...)...)
}

// StartServer starts the adb server daemon on the host.
func (a *Adb) StartServer() (string, error) {
	return a.Exec(cmdStartServer)
}

// KillServer stops the adb server daemon on the host.
func (a *Adb) KillServer() (string, error) {
	return a.Exec(cmdKillServer)
}

// Bugreport captures "adb bugreport" output into destFile. It refuses to
// run when no device is available, since bugreport would otherwise wait for
// one indefinitely.
func (a *Adb) Bugreport(destFile string) error {
	// The availability probe is its own invocation; keep a one-shot
	// serial alive for the capture itself.
	serial := a.serial

	available, err := a.IsDeviceAvailable()
	if err != nil {
		return err
	}
	if !available {
		return ErrDeviceUnavailable
	}

	if !a.connected && serial != "" {
		a.S(serial)
	}

	f, err := os.Create(destFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return a.ExecToFile([]string{cmdBugreport}, f)
}

// IsDeviceAvailable checks whether a device or emulator is reachable by
// probing get-serialno and matching stderr against the configured
// availability patterns. Failures that match no pattern are returned as
// errors.
func (a *Adb) IsDeviceAvailable() (bool, error) {
	_, err := a.GetSerialno()
	if err == nil {
		return true, nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		for _, pattern := range a.availabilityPatterns {
			if strings.Contains(exitErr.Stderr, pattern) {
				return false, nil
			}
		}
	}
	return false, err
}
