package runtime

import (
	"fmt"
	"sync"
	"time"
)

// FamilyInitFunc populates a built-in family's prototype/constructor
// after C6's Init has allocated it. The substrate ships no content for
// these (§1 "built-in library object contents ... out of scope"); a
// host or an out-of-scope builtins package registers these on the
// System table before creating interpreters.
type FamilyInitFunc func(i *Interpreter)

// System is the process-wide table of hooks described in §4.8: the
// allocator, abort path, collector, periodic callback, security-domain
// transit hook, bytecode-backend code allocator, default regex engine
// and the defaults snapshotted by every new interpreter.
type System struct {
	// MemExhausted is invoked when an allocation exceeds a configured
	// budget (§4.1); it must not return. The default aborts the process.
	MemExhausted func(i *Interpreter)

	// Abort backs the SEE_ASSERT-equivalent convenience helper (§4.9)
	// and internal invariant violations (§7.5); it must not return.
	Abort func(format string, args ...any)

	// Collect, when non-nil, overrides Collect's default of asking the
	// host Go runtime for a GC cycle (§4.1, §9 "Collector contract").
	Collect func(i *Interpreter)

	// Periodic is polled by long-running script loops so a host can
	// observe progress or implement cancellation (§5 "Suspension
	// points"). Returning false requests the calling loop stop.
	Periodic func(i *Interpreter) bool

	// SecurityTransit is invoked by the call dispatcher (§4.7 step 3)
	// whenever a call crosses from one security domain to another.
	SecurityTransit func(i *Interpreter, from, to any)

	// CodeAlloc is the (out-of-scope) bytecode backend's allocator hook;
	// kept as an extension point only, per §4.8.
	CodeAlloc func(size int) []byte

	// DefaultRegexEngine supplies the regex-engine handle new
	// interpreters snapshot at Init (§4.8); binding a real engine is
	// out of scope (§1 Non-goals).
	DefaultRegexEngine func() any

	// DefaultCompat is the compatibility-flag bitset new interpreters
	// start from.
	DefaultCompat CompatFlags

	// DefaultRecursionLimit is the recursion budget new interpreters
	// snapshot at Init; -1 means unlimited.
	DefaultRecursionLimit int

	// DefaultLocale is the locale string new interpreters snapshot.
	DefaultLocale string

	// RandomSeed supplies the per-interpreter seed at Init; the default
	// derives one from the wall clock.
	RandomSeed func() int64

	// FamilyInit holds the per-built-in-family population hooks run
	// during C6's Init step 5, keyed by family name ("Array", "Math",
	// "Function", …).
	FamilyInit map[string]FamilyInitFunc

	// Debug, when true, makes the convenience surface's error-throw
	// helpers capture the Go file:line of the throw site (§4.9 "a debug
	// build captures file and line of the throw site; release builds
	// omit these").
	Debug bool
}

func defaultMemExhausted(i *Interpreter) {
	panic(fmt.Sprintf("seeruntime: memory exhausted in interpreter %p", i))
}

func defaultAbort(format string, args ...any) {
	panic("seeruntime: assertion failed: " + fmt.Sprintf(format, args...))
}

func defaultRandomSeed() int64 { return time.Now().UnixNano() }

func defaultRegexEngine() any { return nil }

// NewDefaultSystem returns a System with every hook set to a reasonable
// default: unlimited recursion, no security-domain tracking, and
// mem_exhausted/Abort hooks that panic (the idiomatic Go analogue of
// "must not return" — a build that wants to fatally exit the process
// instead can install System.Abort = func(...) { os.Exit(2) }).
func NewDefaultSystem() *System {
	return &System{
		MemExhausted:          defaultMemExhausted,
		Abort:                 defaultAbort,
		DefaultRegexEngine:    defaultRegexEngine,
		DefaultCompat:         CompatFlags(0),
		DefaultRecursionLimit: -1,
		DefaultLocale:         "",
		RandomSeed:            defaultRandomSeed,
		FamilyInit:            make(map[string]FamilyInitFunc),
	}
}

var (
	systemMu     sync.RWMutex
	currentSys   = NewDefaultSystem()
)

// CurrentSystem returns the process-wide system table new interpreters
// snapshot defaults from. Safe to call concurrently with SetSystem,
// per §5's "access to the process-wide system table is read-only after
// startup" requirement — callers are expected to finish SetSystem calls
// before constructing interpreters from other goroutines.
func CurrentSystem() *System {
	systemMu.RLock()
	defer systemMu.RUnlock()
	return currentSys
}

// SetSystem replaces the process-wide system table. Hosts call this
// before creating interpreters (§4.8 "Hosts may replace these before
// creating interpreters").
func SetSystem(s *System) {
	systemMu.Lock()
	currentSys = s
	systemMu.Unlock()
}
