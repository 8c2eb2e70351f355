package adb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFakeAdb writes an executable shell script standing in for the adb
// binary and returns its path.
func writeFakeAdb(t *testing.T, body string) string {
	t.Helper()

	script := filepath.Join(t.TempDir(), "fakeadb")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body), 0o755))
	return script
}

func TestCommands_ArgvBuilding(t *testing.T) {
	client := newTestClient(t, "echo")

	tests := []struct {
		name string
		call func() (string, error)
		want string
	}{
		{"version", client.Version, "version"},
		{"devices", func() (string, error) { return client.Devices("-l") }, "devices -l"},
		{"shell", func() (string, error) { return client.Shell("ls", "-l") }, "shell ls -l"},
		{"exec-out", func() (string, error) { return client.ExecOut("getevent", "-tlq") }, "exec-out getevent -tlq"},
		{"logcat", func() (string, error) { return client.Logcat("-s", "MyTag") }, "logcat -s MyTag"},
		{"push", func() (string, error) { return client.Push([]string{"a.txt", "b.txt"}, "/sdcard/", "-z", "any") }, "push a.txt b.txt /sdcard/ -z any"},
		{"pull", func() (string, error) { return client.Pull([]string{"/sdcard/a.txt"}, ".") }, "pull /sdcard/a.txt ."},
		{"install", func() (string, error) { return client.Install("app.apk", "-r") }, "install -r app.apk"},
		{"uninstall", func() (string, error) { return client.Uninstall("com.example.app") }, "uninstall com.example.app"},
		{"forward", func() (string, error) { return client.Forward("tcp:8000", "tcp:9000") }, "forward tcp:8000 tcp:9000"},
		{"reverse", func() (string, error) { return client.Reverse("tcp:9000", "tcp:8000") }, "reverse tcp:9000 tcp:8000"},
		{"reboot", client.Reboot, "reboot"},
		{"root", client.Root, "root"},
		{"get-serialno", client.GetSerialno, "get-serialno"},
		{"get-state", client.GetState, "get-state"},
		{"wait-for-device", client.WaitForDevice, "wait-for-device"},
		{"sync", client.Sync, "shell sync"},
		{"emu", func() (string, error) { return client.Emu("kill") }, "emu kill"},
		{"start-server", client.StartServer, "start-server"},
		{"kill-server", client.KillServer, "kill-server"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.call()
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}
}

func TestPollOut_StreamsLines(t *testing.T) {
	client := newTestClient(t, "echo")

	var lines []string
	err := client.PollOut(0, func(ev Event) bool {
		if ev.Kind == EventLine {
			lines = append(lines, ev.Line)
		}
		return false
	}, true, "getevent", "-tlq")
	require.NoError(t, err)
	require.Equal(t, []string{"shell getevent -tlq"}, lines)
}

func TestPollOut_PropagatesFailure(t *testing.T) {
	exe := writeFakeAdb(t, "exit 5\n")
	client := newTestClient(t, exe)

	err := client.PollOut(0, func(Event) bool { return false }, false, "getevent")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 5, exitErr.Code)
}

func TestPollLogcat_DiscardsProcessFailure(t *testing.T) {
	exe := writeFakeAdb(t, "echo 'logcat died' >&2\nexit 2\n")
	client := newTestClient(t, exe)

	err := client.PollLogcat(0, func(Event) bool { return false })
	require.NoError(t, err)
}

func TestIsDeviceAvailable_DeviceAttached(t *testing.T) {
	exe := writeFakeAdb(t, "echo emulator-5554\n")
	client := newTestClient(t, exe)

	available, err := client.IsDeviceAvailable()
	require.NoError(t, err)
	require.True(t, available)
}

func TestIsDeviceAvailable_NoDevicePattern(t *testing.T) {
	exe := writeFakeAdb(t, "echo 'error: no devices/emulators found' >&2\nexit 1\n")
	client := newTestClient(t, exe)

	available, err := client.IsDeviceAvailable()
	require.NoError(t, err)
	require.False(t, available)
}

func TestIsDeviceAvailable_CustomPattern(t *testing.T) {
	exe := writeFakeAdb(t, "echo 'no emulator here' >&2\nexit 1\n")
	client, err := CreateClient(&Config{
		Executable:           exe,
		AvailabilityPatterns: []string{"no emulator here"},
	})
	require.NoError(t, err)

	available, err := client.IsDeviceAvailable()
	require.NoError(t, err)
	require.False(t, available)
}

func TestIsDeviceAvailable_UnrecognizedFailure(t *testing.T) {
	exe := writeFakeAdb(t, "echo 'cannot connect to daemon' >&2\nexit 1\n")
	client := newTestClient(t, exe)

	available, err := client.IsDeviceAvailable()
	require.Error(t, err)
	require.False(t, available)
}

func TestBugreport_WritesFile(t *testing.T) {
	exe := writeFakeAdb(t, `case "$1" in
get-serialno) echo emulator-5554 ;;
bugreport) printf 'dumpsys output\n' ;;
esac
`)
	client := newTestClient(t, exe)

	dest := filepath.Join(t.TempDir(), "report.log")
	require.NoError(t, client.Bugreport(dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "dumpsys output\n", string(data))
}

func TestBugreport_NoDevice(t *testing.T) {
	exe := writeFakeAdb(t, "echo 'error: no devices/emulators found' >&2\nexit 1\n")
	client := newTestClient(t, exe)

	err := client.Bugreport(filepath.Join(t.TempDir(), "report.log"))
	require.ErrorIs(t, err, ErrDeviceUnavailable)
}

func TestBugreport_KeepsOneShotSerial(t *testing.T) {
	dir := t.TempDir()
	argsLog := filepath.Join(dir, "args.log")
	exe := writeFakeAdb(t, `echo "$@" >> "`+argsLog+`"
case "$3" in
get-serialno) echo emulator-5554 ;;
esac
`)
	client := newTestClient(t, exe)

	dest := filepath.Join(dir, "report.log")
	require.NoError(t, client.S("emulator-5554").Bugreport(dest))

	data, err := os.ReadFile(argsLog)
	require.NoError(t, err)
	calls := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, calls, 2)
	require.Equal(t, "-s emulator-5554 get-serialno", calls[0])
	require.Equal(t, "-s emulator-5554 bugreport", calls[1])

	// The one-shot serial is consumed by the capture invocation.
	_, err = client.Exec("devices")
	require.NoError(t, err)

	data, err = os.ReadFile(argsLog)
	require.NoError(t, err)
	calls = strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, calls, 3)
	require.Equal(t, "devices", calls[2])
}
