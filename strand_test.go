package asyncio

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStrandSerializesConcurrentPosts(t *testing.T) {
	eng := NewEngine()
	s := NewStrand(eng.Executor())

	const contenders = 100
	var inside atomic.Int32
	var maxObserved atomic.Int32
	var order []int
	var mu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(contenders)
	for i := 0; i < contenders; i++ {
		i := i
		go func() {
			defer wg.Done()
			s.Post(func() {
				n := inside.Add(1)
				for {
					cur := maxObserved.Load()
					if n <= cur || maxObserved.CompareAndSwap(cur, n) {
						break
					}
				}
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				inside.Add(-1)
			})
		}()
	}
	wg.Wait()

	runDone := make(chan struct{})
	go func() {
		eng.Run()
		close(runDone)
	}()
	select {
	case <-runDone:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not finish draining the strand's work")
	}

	if got := maxObserved.Load(); got != 1 {
		t.Fatalf("max concurrent handlers inside the strand = %d, want 1", got)
	}
	mu.Lock()
	n := len(order)
	mu.Unlock()
	if n != contenders {
		t.Fatalf("ran %d handlers, want %d", n, contenders)
	}
}

func TestStrandDispatchRunsInlineWhenAlreadyOnStrand(t *testing.T) {
	eng := NewEngine()
	s := NewStrand(eng.Executor())

	var outerRan, innerRan bool
	var innerWasInline bool

	s.Post(func() {
		outerRan = true
		s.Dispatch(func() {
			innerRan = true
		})
		innerWasInline = innerRan // inline only if inner already ran when Dispatch returned
	})

	eng.Run()

	if !outerRan || !innerRan {
		t.Fatal("expected both outer and inner handlers to run")
	}
	if !innerWasInline {
		t.Fatal("Dispatch from within the strand did not run inline")
	}
}

func TestStrandOfStrandComposition(t *testing.T) {
	eng := NewEngine()
	inner := NewStrand(eng.Executor())
	outer := NewStrand(inner.Executor())

	var ran atomic.Bool
	outer.Post(func() { ran.Store(true) })
	eng.Run()

	if !ran.Load() {
		t.Fatal("handler posted to a strand-of-strand never ran")
	}
}
