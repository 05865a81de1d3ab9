package asyncio

// Executor is a small, copyable handle referencing an Engine. It is the
// unit application code passes around instead of the Engine itself; it
// compares equal to another Executor wrapping the same Engine.
type Executor struct {
	engine *Engine
}

// Engine returns the Engine x refers to.
func (x Executor) Engine() *Engine {
	return x.engine
}

// RunningInThisThread reports whether the calling goroutine is currently
// somewhere inside a Run/RunOne/Poll/PollOne call draining x's engine.
func (x Executor) RunningInThisThread() bool {
	return x.engine.runningInThisThread()
}

// CanDispatch reports whether Dispatch would run its handler inline on the
// calling goroutine rather than queuing it.
func (x Executor) CanDispatch() bool {
	return x.RunningInThisThread()
}

// Post queues h to run later on a worker goroutine. Post never runs h
// inline, even when called from within a handler already executing on this
// engine.
func (x Executor) Post(h Handler) {
	x.engine.logTrace("post")
	x.OnWorkStarted()
	x.engine.enqueue(h)
}

// Dispatch runs h immediately, on the calling goroutine, if the calling
// goroutine is already draining this engine; otherwise it behaves exactly
// like Post.
func (x Executor) Dispatch(h Handler) {
	if x.CanDispatch() {
		x.engine.logTrace("dispatch inline")
		h()
		return
	}
	x.Post(h)
}

// OnWorkStarted registers one unit of outstanding work against the engine,
// keeping Run and RunOne from returning while it is outstanding.
func (x Executor) OnWorkStarted() {
	x.engine.onWorkStarted()
}

// OnWorkFinished releases one unit of outstanding work previously
// registered with OnWorkStarted.
func (x Executor) OnWorkFinished() {
	x.engine.onWorkFinished()
}

// Post queues h on whatever target accepts a Handler, satisfying both
// Executor and *Strand without either needing to know about the other.
func Post(x interface{ Post(Handler) }, h Handler) {
	x.Post(h)
}

// Dispatch dispatches h on whatever target accepts a Handler, satisfying
// both Executor and *Strand.
func Dispatch(x interface{ Dispatch(Handler) }, h Handler) {
	x.Dispatch(h)
}
