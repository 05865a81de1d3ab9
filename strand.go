package asyncio

import "sync"

// strandTarget is the small capability set a Strand needs from whatever it
// wraps. Both Executor and *Strand satisfy it, so a Strand can be built
// over a plain Executor or over another Strand, composing strand-of-strand
// without either side knowing which it got.
type strandTarget interface {
	Post(Handler)
	Dispatch(Handler)
	OnWorkStarted()
	OnWorkFinished()
	RunningInThisThread() bool
}

// Strand serializes a set of handlers so that at most one of them ever runs
// at a time, without dedicating a worker goroutine to it. At most one
// "drain one queued handler" task is ever outstanding on the underlying
// target per strand; posting while that task is already outstanding just
// appends to the strand's own queue.
type Strand struct {
	target strandTarget

	mu        sync.Mutex
	queue     []Handler
	scheduled bool
}

// NewStrand returns a Strand layered over x.
func NewStrand(x strandTarget) *Strand {
	return &Strand{target: x}
}

// RunningInThisThread reports whether the calling goroutine is currently
// executing a handler dispatched through this strand. This is tracked via
// the same goroutine-local context stack callStack uses for Engine, not a
// shared flag: a shared bool would let an unrelated goroutine observe
// "currently running" and wrongly treat Dispatch as a safe inline call
// while a different goroutine's handler is genuinely executing.
func (s *Strand) RunningInThisThread() bool {
	return globalCallStack.running(s)
}

// Executor exposes s itself as a strandTarget, allowing a second Strand to
// be layered on top of it (strand-of-strand composition). Posting through
// the returned value never migrates work to a different Engine: it only
// ever reaches s's own queue and, transitively, s.target.
func (s *Strand) Executor() strandTarget {
	return s
}

// OnWorkStarted forwards an outstanding-work claim made against s (by an
// outer Strand layered on top of it) straight through to s.target, so the
// claim is ultimately accounted by the underlying Engine.
func (s *Strand) OnWorkStarted() {
	s.target.OnWorkStarted()
}

// OnWorkFinished releases a claim previously registered with
// OnWorkStarted.
func (s *Strand) OnWorkFinished() {
	s.target.OnWorkFinished()
}

// Post appends h to the strand's queue, scheduling a drain task on the
// underlying target if one is not already outstanding. Post never runs h
// inline.
func (s *Strand) Post(h Handler) {
	s.enqueue(h)
}

// Dispatch runs h immediately, on the calling goroutine, if the calling
// goroutine is already executing a handler this strand dispatched;
// otherwise it behaves like Post.
func (s *Strand) Dispatch(h Handler) {
	if s.RunningInThisThread() {
		h()
		return
	}
	s.enqueue(h)
}

func (s *Strand) enqueue(h Handler) {
	s.mu.Lock()
	s.queue = append(s.queue, h)
	needsSchedule := !s.scheduled
	if needsSchedule {
		s.scheduled = true
	}
	s.mu.Unlock()

	if needsSchedule {
		s.target.OnWorkStarted()
		s.target.Post(s.drainTask)
	}
}

// drainTask runs exactly one queued handler, then reschedules itself on
// the target if more work remains, or clears the scheduled flag and
// releases the strand's outstanding-work claim if the queue is now empty.
func (s *Strand) drainTask() {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.scheduled = false
		s.mu.Unlock()
		s.target.OnWorkFinished()
		return
	}
	h := s.queue[0]
	s.queue = s.queue[1:]
	s.mu.Unlock()

	s.run(h)

	s.mu.Lock()
	stillQueued := len(s.queue) > 0
	if !stillQueued {
		s.scheduled = false
	}
	s.mu.Unlock()

	if stillQueued {
		s.target.Post(s.drainTask)
		return
	}
	s.target.OnWorkFinished()
}

// run executes h with s pushed onto the calling goroutine's context stack,
// popping it even if h panics, so a panic recovered further up (by the
// underlying Engine, if it was built with WithPanicRecovery) never leaves a
// stale frame behind for this goroutine.
func (s *Strand) run(h Handler) {
	globalCallStack.push(s)
	defer globalCallStack.pop()
	h()
}
