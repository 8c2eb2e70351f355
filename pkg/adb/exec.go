package adb

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jarijaas/go-adbexec/pkg/nbio"
)

// EventKind tags what a polling callback is being told about.
type EventKind int

const (
	// EventLine carries one decoded line of process output.
	EventLine EventKind = iota
	// EventTimeout means a polling window elapsed with no output.
	EventTimeout
)

// Event is handed to a PollFunc on every loop iteration that produced
// something to report.
type Event struct {
	Kind EventKind
	Line string
}

// PollFunc decides whether to keep polling. Returning true terminates the
// external process and ends the loop without an error.
type PollFunc func(Event) bool

// PollCommand runs the given adb arguments and polls the process's stdout
// line by line. timeout bounds each individual poll; zero or less waits
// forever. fn receives an EventLine for every decoded line and an
// EventTimeout whenever a window elapses; returning true stops the command,
// which counts as caller cancellation, not failure.
//
// A non-zero exit surfaces as *ExitError carrying the captured stderr.
// Lines that are not valid UTF-8 are skipped. On every path the reader and
// the stderr capture file are released and one-shot client state is reset.
func (a *Adb) PollCommand(args []string, timeout time.Duration, fn PollFunc) error {
	if fn == nil {
		return ErrNoCallback
	}

	argv := a.buildArgs(args)
	defer a.reset()

	logger := log.WithField("cmd", shortID())
	if a.logCommand {
		logger.Debugf("-> %s", strings.Join(argv, " "))
	}

	stderr, err := os.CreateTemp("", "adbexec-stderr-*")
	if err != nil {
		return err
	}
	defer func() {
		stderr.Close()
		os.Remove(stderr.Name())
	}()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	reader := nbio.NewReader(stdout)
	defer reader.Close()

	for {
		line, err := reader.ReadLine(timeout)
		switch {
		case errors.Is(err, nbio.ErrTimeout):
			if fn(Event{Kind: EventTimeout}) {
				logger.Debug("stopped by caller on timeout")
				return kill(cmd)
			}
		case errors.Is(err, io.EOF):
			return a.finish(cmd, argv, stderr)
		case err != nil:
			_ = kill(cmd)
			return err
		default:
			if !utf8.Valid(line) {
				continue // skip undecodable lines, keep polling
			}
			if fn(Event{Kind: EventLine, Line: string(line)}) {
				logger.Debug("stopped by caller")
				return kill(cmd)
			}
		}
	}
}

// Exec runs the given adb arguments to completion and captures stdout.
// The returned text is the output lines joined with newlines; a non-zero
// exit comes back as *ExitError.
func (a *Adb) Exec(args ...string) (string, error) {
	var lines []string
	err := a.PollCommand(args, 0, func(ev Event) bool {
		if ev.Kind == EventLine {
			lines = append(lines, ev.Line)
		}
		return false
	})
	if err != nil {
		return "", err
	}

	out := strings.Join(lines, "\n")
	if a.logOutput && out != "" {
		log.Debugf("<- %s", out)
	}
	return out, nil
}

// ExecToFile runs the given adb arguments with stdout connected directly to
// w, for outputs too large or too binary to buffer line by line (bug
// reports). Stderr capture and exit status semantics match PollCommand.
func (a *Adb) ExecToFile(args []string, w io.Writer) error {
	argv := a.buildArgs(args)
	defer a.reset()

	logger := log.WithField("cmd", shortID())
	if a.logCommand {
		logger.Debugf("-> %s", strings.Join(argv, " "))
	}

	stderr, err := os.CreateTemp("", "adbexec-stderr-*")
	if err != nil {
		return err
	}
	defer func() {
		stderr.Close()
		os.Remove(stderr.Name())
	}()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = w
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return err
		}
		return &ExitError{
			Code:   exitErr.ExitCode(),
			Cmd:    strings.Join(argv, " "),
			Stderr: readStderr(stderr),
		}
	}
	return nil
}

// finish reaps the process once its stdout is fully consumed and converts a
// non-zero exit into *ExitError.
func (a *Adb) finish(cmd *exec.Cmd, argv []string, stderr *os.File) error {
	err := cmd.Wait()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{
		Code:   exitErr.ExitCode(),
		Cmd:    strings.Join(argv, " "),
		Stderr: readStderr(stderr),
	}
}

// kill terminates the process after a caller-requested stop. The wait error
// is discarded: a killed process reports a non-zero exit, which is not a
// failure here.
func kill(cmd *exec.Cmd) error {
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	_ = cmd.Wait()
	return nil
}

// readStderr rewinds and drains the capture file. Only called once the
// process is dead, so there is no concurrent writer.
func readStderr(f *os.File) string {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return ""
	}
	return strings.Trim(string(data), " \t\n")
}

func shortID() string {
	return uuid.NewString()[:8]
}
