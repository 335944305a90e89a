package runtime

import (
	goruntime "runtime"
	"sync/atomic"
	"testing"
)

func TestGrowableArrayGrowToFastPath(t *testing.T) {
	arr := NewGrowableArray[int](false)
	arr.GrowTo(4)
	for i := 0; i < 4; i++ {
		arr.Set(i, i+1)
	}
	before := cap(arr.items)

	arr.Truncate(2)
	arr.GrowTo(4) // must reuse capacity rather than reallocate
	if cap(arr.items) != before {
		t.Fatalf("GrowTo reallocated when capacity already covered the request")
	}
	if arr.Get(0) != 1 || arr.Get(1) != 2 {
		t.Fatalf("GrowTo fast path corrupted existing elements")
	}
}

func TestMemoryManagerBudgetExhaustion(t *testing.T) {
	sys := NewDefaultSystem()
	var exhausted int32
	sys.MemExhausted = func(*Interpreter) {
		atomic.AddInt32(&exhausted, 1)
		panic("memory exhausted")
	}

	i := &Interpreter{}
	i.SetSystem(sys)
	i.Init(sys.DefaultCompat)
	i.Memory.SetLimit(2)

	func() {
		defer func() { recover() }()
		Alloc[int](i)
		Alloc[int](i)
		Alloc[int](i) // exceeds the limit of 2
	}()

	if atomic.LoadInt32(&exhausted) != 1 {
		t.Fatalf("expected MemExhausted to fire exactly once, fired %d times", exhausted)
	}
}

type finalizerChainNode struct {
	next *finalizerChainNode
}

func TestFinalizerChainRunsAfterRootCleared(t *testing.T) {
	i := New()

	var finalized int64
	var root *finalizerChainNode
	for n := 0; n < 100; n++ {
		node := AllocFinalize(i, func(*finalizerChainNode) {
			atomic.AddInt64(&finalized, 1)
		})
		node.next = root
		root = node
	}

	Collect(i)
	FinalizerBarrier()
	if atomic.LoadInt64(&finalized) != 0 {
		t.Fatalf("collection finalized %d objects while the root chain was still reachable", finalized)
	}
	goruntime.KeepAlive(root)

	// The collector finalizes a chain one link per pass, so collect
	// repeatedly until the whole chain is gone.
	root = nil
	for pass := 0; pass < 1000 && atomic.LoadInt64(&finalized) < 100; pass++ {
		Collect(i)
		FinalizerBarrier()
	}
	if got := atomic.LoadInt64(&finalized); got != 100 {
		t.Fatalf("expected all 100 chained objects finalized after clearing the root, got %d", got)
	}
}

type cyclicPairNode struct {
	peer *cyclicPairNode
}

func TestCyclicPairBothFinalizeEventually(t *testing.T) {
	i := New()

	var aDone, bDone int32
	a := AllocFinalize(i, func(*cyclicPairNode) { atomic.StoreInt32(&aDone, 1) })
	b := AllocFinalize(i, func(*cyclicPairNode) { atomic.StoreInt32(&bDone, 1) })
	a.peer = b
	b.peer = a
	a, b = nil, nil

	Collect(i)
	FinalizerBarrier()

	if atomic.LoadInt32(&aDone) == 0 || atomic.LoadInt32(&bDone) == 0 {
		t.Fatalf("expected both members of a finalizer cycle to eventually finalize, order unspecified")
	}
}
