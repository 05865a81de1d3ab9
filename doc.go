// Package asyncio provides a minimal asynchronous execution core: a
// thread-safe work queue multiplexed over application-supplied goroutines,
// outstanding-work accounting so those goroutines block until genuinely
// idle, and a strand serializer that lets otherwise-concurrent handlers run
// mutually exclusively without blocking a worker goroutine.
//
// # Architecture
//
// An [Engine] owns a FIFO queue of [Handler] values plus an outstanding-work
// counter and a stopped flag. Application code calls [Engine.Run],
// [Engine.RunOne], [Engine.Poll], or [Engine.PollOne] from any number of
// goroutines to drain the queue; there is no single "the loop goroutine" —
// any goroutine that calls a drain method becomes a worker for as long as
// that call is in progress.
//
// An [Executor] is a small, copyable handle referencing an [Engine]; it is
// the unit passed around by higher-level code instead of the engine itself.
// A [WorkGuard] holds one unit of outstanding work, keeping [Engine.Run] and
// [Engine.RunOne] from returning until it is released. A [Strand] layers
// single-handler-at-a-time semantics over an [Executor] (or another
// [Strand]) without dedicating a goroutine to it: at most one "drain one
// item" task is ever scheduled on the underlying engine per strand.
//
// # Thread safety
//
// [Engine], [Executor], [WorkGuard], and [Strand] are all safe for
// concurrent use by multiple goroutines. [Executor.Post] and
// [Executor.Dispatch] may be called from within a running [Handler],
// including one executing on a different [Engine] or on a [Strand].
// [Executor.Dispatch] runs its handler
// inline, synchronously, only when the calling goroutine is already
// draining that same engine; the goroutine-local context stack in
// contextstack.go is what makes that detection possible, since Go has no
// native thread-local storage.
//
// # Usage
//
//	eng := asyncio.NewEngine()
//	eng.Executor().Post(func() {
//		fmt.Println("hello from a worker")
//	})
//	eng.Run() // blocks until the queue drains and outstanding work hits zero
//
// # Execution model
//
// [Engine.Run] and [Engine.RunOne] block on a condition variable while the
// queue is empty and outstanding work is nonzero, woken by [Executor.Post], by
// the outstanding-work counter reaching zero, and by [Engine.Stop].
// [Engine.Poll] and [Engine.PollOne] never block.
//
// # Non-goals
//
// No network sockets, files, or timers; no coroutine/awaitable surface; no
// priority queues, work-stealing, or fair scheduling; no propagation of a
// panicking handler's state to other handlers; no migration of queued work
// between engines.
package asyncio
