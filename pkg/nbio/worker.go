package nbio

import (
	"errors"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// ErrInterrupted is returned by a Task that stopped at a cooperative
// checkpoint after Interrupt was called.
var ErrInterrupted = errors.New("nbio: interrupted")

// Task is a blocking function run by a Worker. The quit channel is closed
// when interruption is requested; tasks should select on it wherever they
// can block outside their main blocking call.
type Task func(quit <-chan struct{}) error

// Worker runs a single blocking task on its own goroutine and lets another
// goroutine abort it. Interruption is cooperative: Interrupt closes the quit
// channel and fires the unblock hook, which must force the task's pending
// blocking call to return, typically by closing the stream the task reads.
// If the hook cannot reach the blocking call, interruption takes effect at
// the task's next checkpoint.
type Worker struct {
	task    Task
	unblock func()

	quit chan struct{}
	done chan struct{}

	started       atomic.Bool
	interrupted   atomic.Bool
	interruptOnce sync.Once
}

// NewWorker creates a worker for task. unblock may be nil if the task only
// blocks on operations that already watch the quit channel.
func NewWorker(task Task, unblock func()) *Worker {
	return &Worker{
		task:    task,
		unblock: unblock,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the task on a new goroutine. A worker runs exactly once;
// starting it twice panics.
func (w *Worker) Start() {
	if !w.started.CompareAndSwap(false, true) {
		panic("nbio: worker started twice")
	}
	go w.run()
}

func (w *Worker) run() {
	defer close(w.done)

	err := w.task(w.quit)
	if err == nil {
		return
	}
	select {
	case <-w.quit:
		// The task stopped because interruption was requested.
		w.interrupted.Store(true)
	default:
		log.Tracef("nbio: worker task failed: %v", err)
	}
}

// Alive reports whether the goroutine has been started and has not yet
// terminated.
func (w *Worker) Alive() bool {
	if !w.started.Load() {
		return false
	}
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}

// Interrupt asks the task to stop. It is a no-op once the worker has
// terminated. Calling Interrupt on a worker that was never started panics.
func (w *Worker) Interrupt() {
	w.mustBeStarted("interrupt")
	select {
	case <-w.done:
		return
	default:
	}
	w.interruptOnce.Do(func() {
		close(w.quit)
		if w.unblock != nil {
			w.unblock()
		}
	})
}

// Interrupted reports whether the task stopped because it was interrupted.
// Only meaningful once the worker has terminated.
func (w *Worker) Interrupted() bool {
	return w.interrupted.Load()
}

// Join blocks until the goroutine terminates. Idempotent once terminated.
// Calling Join on a worker that was never started panics.
func (w *Worker) Join() {
	w.mustBeStarted("join")
	<-w.done
}

func (w *Worker) mustBeStarted(op string) {
	if !w.started.Load() {
		panic("nbio: " + op + " on a worker that was never started")
	}
}
