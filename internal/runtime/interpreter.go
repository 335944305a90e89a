package runtime

import (
	"math/rand"

	"github.com/adamnemecek/see-mirror-sub001/internal/seeerr"
	"github.com/adamnemecek/see-mirror-sub001/internal/seetoken"
)

// Builtins holds the canonical constructor/prototype object for each
// built-in family named in §3, in the fixed dependency order §4.6 §3
// allocates them. The family *contents* (Array.prototype methods, Math
// functions, …) are out of scope for this substrate; FamilyInitializer
// hooks on the System table let a host (or an out-of-scope built-in
// library package) populate them after allocation.
type Builtins struct {
	Array     *Object
	Boolean   *Object
	Date      *Object
	Error     *Object
	Function  *Object
	Global    *Object
	Math      *Object
	Number    *Object
	Object    *Object
	RegExp    *Object
	String    *Object
	ErrorKind map[ErrorFamily]*Object // prototypes for Error, EvalError, RangeError, …
}

// builtinOrder is the fixed initialization order from §4.6 step 3.
var builtinOrder = []string{
	"Array", "Boolean", "Date", "Error", "Function",
	"Global", "Math", "Number", "Object", "RegExp", "String",
}

// Interpreter is the per-instance root described in §3 "Interpreter":
// it holds the built-in prototypes, the current try/traceback state,
// compatibility flags, recursion budget, security-domain cursor, trace
// hook, locale, regex handle, intern table and an opaque host-data slot.
type Interpreter struct {
	Builtins Builtins

	Compat          CompatFlags
	RandomSeed      int64
	Rand            *rand.Rand
	Trace           TraceFunc
	Locale          string
	RecursionBudget int // -1 = unlimited
	SecurityDomain  any
	RegexEngine     any
	HostData        any

	Memory *MemoryManager

	tryContext    *TryContext
	throwLocation *seetoken.Position
	traceback     seeerr.StackTrace
	callStack     []string

	interns *internTable
	system  *System

	initialized bool
}

// TraceFunc is invoked at implementation-defined points during
// execution (e.g. once per statement) so a host can observe progress or
// poll for cancellation via the system table's periodic hook; it is
// deliberately untyped beyond that, since the event vocabulary is owned
// by the (out-of-scope) bytecode/tree-walking backend.
type TraceFunc func(i *Interpreter, event string)

// New allocates an interpreter and runs Init with the system table's
// current defaults, including its DefaultCompat compatibility flags.
func New() *Interpreter {
	i := &Interpreter{}
	i.Init(i.System().DefaultCompat)
	return i
}

// Init (re)prepares interp for use, following the five-step order of
// §4.6: it may be called repeatedly to reset an interpreter.
func (i *Interpreter) Init(flags CompatFlags) {
	// Step 1: zero try-context, try-location, traceback.
	i.tryContext = nil
	i.throwLocation = nil
	i.traceback = nil
	i.callStack = nil

	// Step 2: compat flags, random seed, trace, locale, recursion limit,
	// security domain (nil), regex engine — snapshotted from the system
	// table's defaults at the moment of Init, per §4.8.
	sys := i.System()
	i.Compat = flags
	i.RandomSeed = sys.RandomSeed()
	i.Rand = rand.New(rand.NewSource(i.RandomSeed))
	i.Trace = nil
	i.Locale = sys.DefaultLocale
	i.RecursionBudget = sys.DefaultRecursionLimit
	i.SecurityDomain = nil
	i.RegexEngine = sys.DefaultRegexEngine()
	i.Memory = NewMemoryManager()

	// Step 3: allocate storage for every built-in family, fixed order.
	i.Builtins = Builtins{ErrorKind: make(map[ErrorFamily]*Object)}
	objectProto := NewPlainObject(nil, "Object")
	i.Builtins.Object = objectProto
	for _, family := range builtinOrder {
		if family == "Object" {
			continue // already allocated as the root prototype above
		}
		proto := NewPlainObject(objectProto, family)
		switch family {
		case "Array":
			i.Builtins.Array = proto
		case "Boolean":
			i.Builtins.Boolean = proto
		case "Date":
			i.Builtins.Date = proto
		case "Error":
			i.Builtins.Error = proto
		case "Function":
			i.Builtins.Function = proto
		case "Global":
			i.Builtins.Global = proto
		case "Math":
			i.Builtins.Math = proto
		case "Number":
			i.Builtins.Number = proto
		case "RegExp":
			i.Builtins.RegExp = proto
		case "String":
			i.Builtins.String = proto
		}
	}
	for _, family := range []ErrorFamily{ErrError, ErrEvalError, ErrRangeError, ErrReferenceError, ErrSyntaxError, ErrTypeError, ErrURIError} {
		proto := NewPlainObject(i.Builtins.Error, string(family))
		if family != ErrError {
			proto.Prototype = i.Builtins.Error
		}
		i.Builtins.ErrorKind[family] = proto
	}

	// Step 4: create the per-interpreter intern table.
	i.interns = newInternTable()

	// Step 5: run each family's init phase, Function last (it is the
	// one that would trigger parser use in a full implementation).
	for _, family := range builtinOrder {
		if family == "Function" {
			continue // deferred to below, after every other family has run
		}
		if hook := sys.FamilyInit[family]; hook != nil {
			hook(i)
		}
	}
	if hook := sys.FamilyInit["Function"]; hook != nil {
		hook(i)
	}

	i.initialized = true
}

// IsInitialized reports whether Init has run at least once.
func (i *Interpreter) IsInitialized() bool { return i.initialized }

// System returns the system table this interpreter was created under.
// Interpreters created via New or zero-valued and then Init'ed without
// an explicit SetSystem call use CurrentSystem() at Init time.
func (i *Interpreter) System() *System {
	if i.system == nil {
		i.system = CurrentSystem()
	}
	return i.system
}

// SetSystem pins interp to a specific system table rather than
// whatever CurrentSystem() returns, useful for tests that need a
// private set of hooks. Must be called before Init for the table to
// take effect during initialization.
func (i *Interpreter) SetSystem(s *System) { i.system = s }

// Traceback returns the current traceback snapshot.
func (i *Interpreter) Traceback() seeerr.StackTrace { return i.traceback }

// ThrowLocation returns the position most recently passed to Throw, or
// nil if nothing has been thrown since the last Init.
func (i *Interpreter) ThrowLocation() *seetoken.Position { return i.throwLocation }

// PushFrame records name onto the call-name stack used to label
// traceback frames; C7's dispatcher calls this around every
// call/construct.
func (i *Interpreter) PushFrame(name string) { i.callStack = append(i.callStack, name) }

// PopFrame removes the most recently pushed call name.
func (i *Interpreter) PopFrame() {
	if n := len(i.callStack); n > 0 {
		i.callStack = i.callStack[:n-1]
	}
}

// CallStack returns a copy of the current call-name stack, oldest first.
func (i *Interpreter) CallStack() []string {
	out := make([]string, len(i.callStack))
	copy(out, i.callStack)
	return out
}
