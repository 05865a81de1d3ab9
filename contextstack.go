package asyncio

import (
	"runtime"
	"sync"
)

// callStack tracks, per goroutine, which execution contexts (an *Engine
// while draining it, a *Strand while running a handler it dispatched) that
// goroutine is currently nested inside. Go has no thread-local storage, so
// the stack is keyed by a goroutine id parsed out of runtime.Stack, the
// same technique eventloop.getGoroutineID uses to compare a caller against
// the single owner goroutine; here it is generalized two ways: to support
// any number of worker goroutines, each with its own independent stack,
// and to hold frames for more than one kind of context.
type callStack struct {
	stacks sync.Map // goroutineID (uint64) -> *[]any
}

var globalCallStack callStack

// goroutineID parses the numeric id out of the "goroutine N [...]" header
// that runtime.Stack always writes first. It never allocates beyond the
// small fixed buffer, since it runs on every dispatch call and around every
// handler execution.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func (c *callStack) frames() *[]any {
	id := goroutineID()
	if v, ok := c.stacks.Load(id); ok {
		return v.(*[]any)
	}
	frames := new([]any)
	actual, _ := c.stacks.LoadOrStore(id, frames)
	return actual.(*[]any)
}

// push records that the calling goroutine has begun executing within ctx
// (an *Engine or a *Strand). Must be paired with a pop, typically via
// defer, around a single handler's execution (Engine.execute for an engine,
// Strand.run for a strand).
func (c *callStack) push(ctx any) {
	frames := c.frames()
	*frames = append(*frames, ctx)
}

// pop removes the innermost frame pushed by the calling goroutine. It does
// not verify the popped frame's identity; callers always push/pop in
// strict LIFO order from a single defer site.
func (c *callStack) pop() {
	id := goroutineID()
	v, ok := c.stacks.Load(id)
	if !ok {
		return
	}
	frames := v.(*[]any)
	n := len(*frames)
	if n == 0 {
		return
	}
	*frames = (*frames)[:n-1]
	if n-1 == 0 {
		c.stacks.Delete(id)
	}
}

// running reports whether the calling goroutine is currently somewhere
// inside ctx — i.e. whether ctx appears anywhere on this goroutine's stack,
// not just at the top. This mirrors running_in_this_thread semantics for
// nested dispatch calls.
func (c *callStack) running(ctx any) bool {
	id := goroutineID()
	v, ok := c.stacks.Load(id)
	if !ok {
		return false
	}
	frames := v.(*[]any)
	for _, f := range *frames {
		if f == ctx {
			return true
		}
	}
	return false
}
