package runtime

import (
	goruntime "runtime"
	"sync"
	"time"
)

// GrowableArray is the generic growable-array helper from §4.1: a base
// pointer, a length counter and an allocated-capacity counter, with a
// grow_to operation that elides the allocator call when the current
// allocation already covers the requested length. Using Go generics
// here keeps the single "string-only" flag the original carries (it
// otherwise only discriminates which allocator channel to reallocate
// through) without a byte-slab reimplementation of what a typed Go
// slice already gives for free.
type GrowableArray[T any] struct {
	items      []T
	length     int
	stringOnly bool
}

// NewGrowableArray creates an empty growable array. stringOnly records
// the channel it was allocated from, matching §4.1's "string-only"
// flag; it does not change behavior here (Go's GC already distinguishes
// pointer-free backing arrays), it documents caller intent.
func NewGrowableArray[T any](stringOnly bool) *GrowableArray[T] {
	return &GrowableArray[T]{stringOnly: stringOnly}
}

// Len returns the current length counter.
func (g *GrowableArray[T]) Len() int { return g.length }

// GrowTo ensures the array addresses at least n elements, updating the
// length counter to n. When the backing slice's capacity already covers
// n, no reallocation happens (the fast path called out in §4.1).
func (g *GrowableArray[T]) GrowTo(n int) {
	if n <= cap(g.items) {
		g.items = g.items[:n]
		g.length = n
		return
	}
	next := make([]T, n)
	copy(next, g.items)
	g.items = next
	g.length = n
}

// Truncate shrinks the length counter to n without releasing capacity.
func (g *GrowableArray[T]) Truncate(n int) {
	if n < 0 || n > len(g.items) {
		return
	}
	g.items = g.items[:n]
	g.length = n
}

// Get returns the element at idx.
func (g *GrowableArray[T]) Get(idx int) T { return g.items[idx] }

// Set stores v at idx.
func (g *GrowableArray[T]) Set(idx int, v T) { g.items[idx] = v }

// MemoryManager tracks allocation pressure for one interpreter and
// enforces the host's optional allocation budget (§4.1 "Errors:
// allocation failure triggers the memory exhausted hook, which does not
// return"). Actual block lifetime and reachability are delegated to the
// host Go runtime's own collector — see Collect below and DESIGN.md for
// why this substrate does not reimplement a mark-and-sweep tracer.
type MemoryManager struct {
	mu        sync.Mutex
	allocated int64
	limit     int64 // 0 = unlimited
}

// NewMemoryManager creates an unlimited memory manager.
func NewMemoryManager() *MemoryManager { return &MemoryManager{} }

// SetLimit caps the number of tracked allocations; 0 removes the cap.
// This exists so hosts (and this substrate's own tests) can exercise
// the mem_exhausted contract deterministically without actually
// starving the process.
func (m *MemoryManager) SetLimit(n int64) {
	m.mu.Lock()
	m.limit = n
	m.mu.Unlock()
}

// Allocated returns the number of allocations charged against m so far.
func (m *MemoryManager) Allocated() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocated
}

func (m *MemoryManager) checkBudget(i *Interpreter) {
	m.mu.Lock()
	exhausted := m.limit > 0 && m.allocated >= m.limit
	if !exhausted {
		m.allocated++
	}
	m.mu.Unlock()
	if exhausted {
		i.System().MemExhausted(i)
		panic("seeruntime: mem_exhausted hook returned control, contract violation (§7.3)")
	}
}

// Finalizer is invoked exactly once, from collector context, once its
// block becomes unreachable (§4.1).
type Finalizer[T any] func(*T)

// Alloc is the generic allocation channel (§4.1 alloc): zero-filled
// storage that may contain object references and is therefore scanned
// by whatever collector is in play — which, in this translation, is
// simply the host Go collector, since the returned pointer is an
// ordinary Go pointer.
func Alloc[T any](i *Interpreter) *T {
	i.Memory.checkBudget(i)
	return new(T)
}

// AllocString is the string-only allocation channel (§4.1 alloc_string):
// the returned buffer is guaranteed to hold no references, so a
// collector may place it in a pool it does not scan. Go's allocator
// already partitions pointer-free allocations this way; the entry point
// exists to preserve the channel distinction at call sites.
func AllocString(i *Interpreter, n int) []uint16 {
	i.Memory.checkBudget(i)
	return make([]uint16, n)
}

// AllocFinalize is the finalizable allocation channel (§4.1
// alloc_finalize). fin runs exactly once when the returned block is
// unreachable from every root that Go's own collector (i.e. the
// process's regular GC roots) can see — which includes anything
// reachable from an Interpreter or its TryContext stack, the roots
// named in §3's Lifecycle clause, as long as ordinary Go references are
// used to link the object graph. Go's collector does not finalize
// finalizable blocks that form a reference cycle: fin does not run for
// a block in such a cycle. Along a chain of finalizable blocks, one
// block is finalized per collection.
func AllocFinalize[T any](i *Interpreter, fin Finalizer[T]) *T {
	i.Memory.checkBudget(i)
	p := new(T)
	goruntime.SetFinalizer(p, func(p *T) { fin(p) })
	return p
}

// Free is the advisory free hint (§4.1 free): "advisory hint only". Go
// manages actual deallocation, so this is a deliberate no-op kept for
// API-contract fidelity with hosts migrating call sites.
func Free(*Interpreter, any) {}

// Collect forces a collection pass (§4.1 collect). If the interpreter's
// system table supplies a Collect hook, that hook runs instead (hosts
// embedding their own GC-aware runtime can intercept this); otherwise
// this simply asks the host Go runtime for a GC cycle. Reachability from
// documented roots and at-most-once finalization come from the host
// collector, so no separate algorithm is implemented here (spec §1
// Non-goals; §9 "Collector contract"). The host collector never runs
// the finalizers of finalizable blocks that form a cycle (see
// AllocFinalize).
func Collect(i *Interpreter) {
	if hook := i.System().Collect; hook != nil {
		hook(i)
		return
	}
	goruntime.GC()
}

// FinalizerBarrier blocks (briefly, with a bounded number of GC passes)
// until every finalizer queued before the call has run. Go runs
// finalizers asynchronously on a dedicated goroutine, so "collection
// finalizes all N objects" (§8 scenario 4) is otherwise not observable
// synchronously in a test; this uses the standard canary-finalizer
// pattern to provide that barrier. A chain of finalizable blocks loses
// one link per collection, so finalizing a whole chain takes repeated
// Collect/FinalizerBarrier rounds.
func FinalizerBarrier() {
	done := make(chan struct{})
	canary := new(int)
	goruntime.SetFinalizer(canary, func(*int) { close(done) })
	canary = nil //nolint:staticcheck // must drop the only live reference before GC
	for attempt := 0; attempt < 20; attempt++ {
		goruntime.GC()
		select {
		case <-done:
			return
		case <-time.After(5 * time.Millisecond):
		}
	}
}
