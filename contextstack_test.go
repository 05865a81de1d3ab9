package asyncio

import (
	"sync"
	"testing"
)

func TestGoroutineIDDiffersAcrossGoroutines(t *testing.T) {
	var a, b uint64
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); a = goroutineID() }()
	go func() { defer wg.Done(); b = goroutineID() }()
	wg.Wait()
	if a == 0 || b == 0 {
		t.Fatal("goroutineID() returned 0")
	}
	if a == b {
		t.Fatal("two distinct goroutines reported the same id")
	}
}

func TestCallStackPushPopNesting(t *testing.T) {
	var cs callStack
	e1 := &Engine{}
	e2 := &Engine{}

	if cs.running(e1) {
		t.Fatal("running(e1) = true before any push")
	}

	cs.push(e1)
	if !cs.running(e1) {
		t.Fatal("running(e1) = false after push(e1)")
	}
	if cs.running(e2) {
		t.Fatal("running(e2) = true, e2 was never pushed")
	}

	cs.push(e2)
	if !cs.running(e1) || !cs.running(e2) {
		t.Fatal("nested push should keep both frames visible to running()")
	}

	cs.pop()
	if cs.running(e2) {
		t.Fatal("running(e2) = true after its frame was popped")
	}
	if !cs.running(e1) {
		t.Fatal("running(e1) = false after popping only the inner frame")
	}

	cs.pop()
	if cs.running(e1) {
		t.Fatal("running(e1) = true after popping the last frame")
	}
}

func TestCallStackIsolatedPerGoroutine(t *testing.T) {
	var cs callStack
	e := &Engine{}
	cs.push(e)
	defer cs.pop()

	var seenByOther bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		seenByOther = cs.running(e)
	}()
	wg.Wait()

	if seenByOther {
		t.Fatal("a frame pushed on one goroutine leaked into another's stack")
	}
	if !cs.running(e) {
		t.Fatal("running(e) = false on the goroutine that pushed it")
	}
}
