package asyncio

import (
	"sync"
	"sync/atomic"
)

// Handler is a unit of work queued on an Engine.
type Handler func()

// Engine is a thread-safe FIFO work queue with outstanding-work accounting.
// Any number of goroutines may call its drain methods (Run, RunOne, Poll,
// PollOne) concurrently; each such call is itself a "worker" only for the
// duration of that call. An Engine is not copyable — always share it by
// pointer, typically via the Executor handle returned by Executor.
type Engine struct {
	mu   sync.Mutex
	cond sync.Cond

	queue []Handler

	outstanding atomic.Int64
	stopped     atomic.Bool

	cfg engineConfig

	stats stats
}

// NewEngine constructs an idle Engine, ready to accept posted work.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		cfg: resolveEngineOptions(opts),
	}
	e.cond.L = &e.mu
	return e
}

// Executor returns a copyable handle referencing e.
func (e *Engine) Executor() Executor {
	return Executor{engine: e}
}

// Stopped reports whether e has been stopped and has not yet been
// restarted.
func (e *Engine) Stopped() bool {
	return e.stopped.Load()
}

// Stop marks e as stopped and wakes every goroutine currently blocked in
// Run or RunOne. Queued handlers that have not yet started are left in the
// queue; already-running handlers run to completion. Stop may be called
// from any goroutine, including from within a handler.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.stopped.Store(true)
	e.mu.Unlock()
	e.cond.Broadcast()
	e.logDebug("engine stopped")
}

// Restart clears the stopped flag, allowing Run/RunOne/Poll/PollOne to
// drain the queue again. It is the caller's responsibility to ensure no
// goroutine is still inside a drain call when Restart is invoked.
func (e *Engine) Restart() {
	e.stopped.Store(false)
	e.logDebug("engine restarted")
}

// Stats returns a snapshot of e's metrics. The zero value is returned when
// metrics collection was not enabled via WithMetrics.
func (e *Engine) Stats() Stats {
	return e.stats.snapshot(e)
}

// Run drains handlers until the queue is empty and outstanding work is
// zero, or until e is stopped, blocking the calling goroutine between
// handlers instead of busy-waiting. It returns the number of handlers
// executed.
func (e *Engine) Run() int {
	var n int
	for e.runOneBlocking() {
		n++
	}
	return n
}

// RunOne drains at most one handler, blocking the calling goroutine if the
// queue is currently empty and outstanding work is nonzero. It returns 1 if
// a handler ran, 0 otherwise (queue empty with no outstanding work, or e
// stopped).
func (e *Engine) RunOne() int {
	if e.runOneBlocking() {
		return 1
	}
	return 0
}

// Poll drains every handler currently queued, without blocking, and returns
// the number executed. Unlike Run it does not wait for outstanding work
// registered by a WorkGuard to reach zero.
func (e *Engine) Poll() int {
	var n int
	for e.runOneNonBlocking() {
		n++
	}
	return n
}

// PollOne drains at most one already-queued handler without blocking. It
// returns 1 if a handler ran, 0 if the queue was empty.
func (e *Engine) PollOne() int {
	if e.runOneNonBlocking() {
		return 1
	}
	return 0
}

// runOneBlocking implements the single do_one step used by Run/RunOne: wait
// under the engine's condition variable until there is work to run, the
// engine stops, or outstanding work has already reached zero, then pop and
// execute at most one handler outside the lock.
func (e *Engine) runOneBlocking() bool {
	e.mu.Lock()
	for {
		if e.stopped.Load() {
			e.mu.Unlock()
			return false
		}
		if len(e.queue) > 0 {
			break
		}
		if e.outstanding.Load() == 0 {
			e.stopped.Store(true)
			e.mu.Unlock()
			return false
		}
		e.cond.Wait()
	}
	h := e.popLocked()
	e.mu.Unlock()
	e.execute(h)
	e.onWorkFinished()
	return true
}

func (e *Engine) runOneNonBlocking() bool {
	e.mu.Lock()
	if e.stopped.Load() || len(e.queue) == 0 {
		e.mu.Unlock()
		return false
	}
	h := e.popLocked()
	e.mu.Unlock()
	e.execute(h)
	e.onWorkFinished()
	return true
}

func (e *Engine) popLocked() Handler {
	h := e.queue[0]
	e.queue = e.queue[1:]
	e.stats.setQueueDepth(int64(len(e.queue)))
	return h
}

// execute runs h, pushing/popping the goroutine-local context stack around
// it so that RunningInThisThread and Dispatch's inline fast path see this
// goroutine as currently draining e, and applying panic recovery per
// engineConfig.panicRecovery.
func (e *Engine) execute(h Handler) {
	globalCallStack.push(e)
	defer globalCallStack.pop()

	if e.cfg.panicRecovery {
		defer e.recoverPanic()
	}

	e.logTrace("executing handler")
	h()
	e.stats.incTasksExecuted()
}

func (e *Engine) recoverPanic() {
	r := recover()
	if r == nil {
		return
	}
	rp := &RecoveredPanic{Value: r, Stack: capturedStack()}
	e.stats.incTasksPanicked()
	e.logError("recovered handler panic", rp)
}

// enqueue appends h to the tail of the queue and wakes one blocked drainer.
func (e *Engine) enqueue(h Handler) {
	e.mu.Lock()
	e.queue = append(e.queue, h)
	e.stats.setQueueDepth(int64(len(e.queue)))
	e.mu.Unlock()
	e.cond.Signal()
}

// onWorkStarted registers one unit of outstanding work.
func (e *Engine) onWorkStarted() {
	e.outstanding.Add(1)
	e.stats.setOutstanding(e.outstanding.Load())
}

// onWorkFinished releases one unit of outstanding work, clamping at zero
// and logging if a caller's accounting was unbalanced, then wakes every
// blocked drainer so they can observe outstanding work reaching zero.
func (e *Engine) onWorkFinished() {
	v := e.outstanding.Add(-1)
	if v < 0 {
		e.outstanding.Store(0)
		e.stats.setOutstanding(0)
		e.logWarn("outstanding work count underflowed, clamped to zero")
		e.cond.Broadcast()
		return
	}
	e.stats.setOutstanding(v)
	if v == 0 {
		e.stopped.Store(true)
		e.logDebug("outstanding work reached zero, engine stopped")
	}
	e.cond.Broadcast()
}

// runningInThisThread reports whether the calling goroutine is currently
// somewhere inside a drain of e.
func (e *Engine) runningInThisThread() bool {
	return globalCallStack.running(e)
}
