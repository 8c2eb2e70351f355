package nbio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
	"time"
)

// ErrTimeout is returned by ReadLine when the wait window elapses while the
// producer is still alive. It is distinct from io.EOF, which means the
// stream has been fully consumed.
var ErrTimeout = errors.New("nbio: read timed out")

// queueDepth bounds how far the producer can run ahead of the consumer.
const queueDepth = 64

// Reader reads lines from a stream on a dedicated worker goroutine and lets
// the caller poll for them with a timeout. Lines are delivered strictly in
// order, without their line terminators. Construct with NewReader.
type Reader struct {
	stream io.ReadCloser
	lines  chan []byte
	worker *Worker

	closeOnce sync.Once
	closeErr  error
}

// NewReader wraps stream and immediately starts the worker that pulls lines
// from it. The reader owns the stream; Close releases it.
func NewReader(stream io.ReadCloser) *Reader {
	r := &Reader{
		stream: stream,
		lines:  make(chan []byte, queueDepth),
	}
	r.worker = NewWorker(r.produce, func() {
		// Force a blocked read on the stream to return.
		_ = stream.Close()
	})
	r.worker.Start()
	return r
}

// produce is the worker task: read lines into the channel until the stream
// ends, a read fails, or interruption is requested. Closes the channel on
// the way out, before the worker is marked terminated.
func (r *Reader) produce(quit <-chan struct{}) error {
	defer close(r.lines)

	br := bufio.NewReader(r.stream)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			select {
			case r.lines <- trimEOL(line):
			case <-quit:
				return ErrInterrupted
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// ReadLine returns the next line from the stream. A timeout of zero or less
// means wait forever. Outcomes:
//
//   - (line, nil): a line was available within the window.
//   - (nil, ErrTimeout): the window elapsed and the producer is still alive.
//   - (nil, io.EOF): the stream is fully consumed; every further call keeps
//     returning io.EOF.
func (r *Reader) ReadLine(timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		line, ok := <-r.lines
		if !ok {
			return nil, io.EOF
		}
		return line, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line, ok := <-r.lines:
		if !ok {
			return nil, io.EOF
		}
		return line, nil
	case <-timer.C:
		if r.worker.Alive() {
			return nil, ErrTimeout
		}
		// The producer died while we were waiting, so the channel is
		// closed by now: drain a buffered line or report end of stream.
		line, ok := <-r.lines
		if !ok {
			return nil, io.EOF
		}
		return line, nil
	}
}

// Empty reports whether no lines are currently buffered. Advisory only: the
// producer may enqueue a line at any moment.
func (r *Reader) Empty() bool {
	return len(r.lines) == 0
}

// Close stops the worker and releases the stream. If the worker is still
// alive it is interrupted and joined, so no goroutine outlives Close. Safe
// to call multiple times.
func (r *Reader) Close() error {
	r.closeOnce.Do(func() {
		if r.worker.Alive() {
			r.worker.Interrupt()
		}
		r.worker.Join()
		if err := r.stream.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			r.closeErr = err
		}
	})
	return r.closeErr
}

// trimEOL strips the trailing LF and an optional CR.
func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}
