// Package see is the embedder-facing API described in spec §6: a thin
// wrapper over internal/runtime that exposes interpreter construction,
// try-scope host-code execution, native-function callables, property
// publication, and state save/restore, without pulling in any
// source-grammar or bytecode concerns (out of scope for this substrate).
package see

import (
	"fmt"
	"io"

	"github.com/adamnemecek/see-mirror-sub001/internal/runtime"
)

// Engine wraps one runtime.Interpreter with the embedder conveniences
// named in §6's "Embedder API (abstract)" list.
type Engine struct {
	interp *runtime.Interpreter
	output io.Writer
}

// Option configures an Engine before its interpreter is initialized.
type Option func(*Engine)

// WithSystem pins the interpreter to sys rather than runtime.CurrentSystem().
// It must be supplied to New, since SetSystem only takes effect before Init.
func WithSystem(sys *runtime.System) Option {
	return func(e *Engine) { e.interp.SetSystem(sys) }
}

// WithOutput sets the writer Output returns.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.output = w }
}

// New constructs and initializes an interpreter with the given
// compatibility flags (§6 "construct / reset an interpreter, optionally
// with compatibility flags").
func New(flags runtime.CompatFlags, opts ...Option) *Engine {
	e := &Engine{interp: &runtime.Interpreter{}}
	for _, opt := range opts {
		opt(e)
	}
	e.interp.Init(flags)
	return e
}

// Reset re-initializes the underlying interpreter in place, discarding
// all script-visible state (§4.6).
func (e *Engine) Reset(flags runtime.CompatFlags) {
	e.interp.Init(flags)
}

// Interpreter exposes the wrapped runtime.Interpreter for callers that
// need direct substrate access beyond this convenience layer.
func (e *Engine) Interpreter() *runtime.Interpreter { return e.interp }

// Global returns the interpreter's Global object, the namespace a host
// publishes names into.
func (e *Engine) Global() *runtime.Object { return e.interp.Builtins.Global }

// SetOutput redirects script-visible output, mirroring the teacher's
// injected-io.Writer convention rather than a global logger.
func (e *Engine) SetOutput(w io.Writer) { e.output = w }

// Output returns the writer set by SetOutput/WithOutput, or io.Discard
// when none has been set.
func (e *Engine) Output() io.Writer {
	if e.output == nil {
		return io.Discard
	}
	return e.output
}

// SourceFromUTF8 decodes a host-supplied UTF-8 buffer into the
// substrate's UTF-16 string representation (§6 "create an input source
// from a UTF-8 buffer").
func (e *Engine) SourceFromUTF8(buf []byte) (*runtime.String, error) {
	return runtime.NewStringFromUTF8(buf)
}

// Evaluate calls program against the global scope (§6 "evaluate a
// program against the global scope, yielding a value"). Since source
// grammar and a bytecode/tree-walking backend are out of scope for this
// substrate, a "program" is any callable object a host has already
// built — typically via NewFunction, or by an out-of-scope compiler
// frontend that targets this package directly.
func (e *Engine) Evaluate(program *runtime.Object) (result runtime.Value, caught *runtime.ExceptionValue, err error) {
	var value runtime.Value
	thrown, hasCaught, _ := e.interp.Try(func() {
		value = e.interp.Call(program, runtime.Obj(e.Global()), nil)
	})
	if hasCaught {
		exc, _ := runtime.ExceptionFromValue(thrown)
		return runtime.Value{}, exc, fmt.Errorf("see: uncaught exception: %s", thrown.Inspect())
	}
	return value, nil, nil
}

// TryCatch enters a try scope, runs fn, and reports whatever it threw
// (§6 "enter a try scope, execute host code that may throw, inspect the
// caught value").
func (e *Engine) TryCatch(fn func() runtime.Value) (result runtime.Value, caught *runtime.ExceptionValue, threw bool) {
	var value runtime.Value
	thrown, hasCaught, _ := e.interp.Try(func() {
		value = fn()
	})
	if !hasCaught {
		return value, nil, false
	}
	exc, _ := runtime.ExceptionFromValue(thrown)
	return runtime.Value{}, exc, true
}

// NewFunction builds a callable object from a native Go function (§6
// "build a callable object from a native function").
func (e *Engine) NewFunction(name string, arity int, fn runtime.NativeFunc) *runtime.Object {
	return runtime.NewNativeFunction(e.interp, name, arity, fn)
}

// Publish installs name on target with explicit attributes (§6
// "publish a name into an object's property table with explicit
// attributes").
func (e *Engine) Publish(target *runtime.Object, name string, v runtime.Value, attr runtime.Attr) {
	target.Put(e.interp, e.interp.InternASCII(name), v, attr)
}

// SaveState snapshots try/throw/traceback state ahead of a thread
// handoff (§4.5, §6 "save/restore interpreter state across thread
// handoff").
func (e *Engine) SaveState() runtime.SavedState {
	return e.interp.SaveState()
}

// RestoreState restores state captured by a prior SaveState.
func (e *Engine) RestoreState(s runtime.SavedState) {
	e.interp.RestoreState(s)
}
