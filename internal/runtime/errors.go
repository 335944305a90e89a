package runtime

import (
	"fmt"
	goruntime "runtime"

	"github.com/adamnemecek/see-mirror-sub001/internal/seeerr"
	"github.com/adamnemecek/see-mirror-sub001/internal/seetoken"
)

// ErrorFamily names one of the built-in Error families from §6.
type ErrorFamily string

const (
	ErrError          ErrorFamily = "Error"
	ErrEvalError      ErrorFamily = "EvalError"
	ErrRangeError     ErrorFamily = "RangeError"
	ErrReferenceError ErrorFamily = "ReferenceError"
	ErrSyntaxError    ErrorFamily = "SyntaxError"
	ErrTypeError      ErrorFamily = "TypeError"
	ErrURIError       ErrorFamily = "URIError"
)

// ExceptionValue is the host-visible shape of a thrown script exception
// (§7 kind 1): the family, formatted message, throw-site position, the
// traceback captured at the point of raise, and (in debug builds) the
// Go source location of the throw helper call, kept only for the
// substrate's own diagnostics — it is never script-visible.
type ExceptionValue struct {
	Family    ErrorFamily
	Message   string
	Position  *seetoken.Position
	Trace     seeerr.StackTrace
	DebugSite string
}

// Inspect renders "Family: message", matching the teacher's
// ExceptionValue.Inspect shape.
func (e *ExceptionValue) Inspect() string {
	if e == nil {
		return "<nil exception>"
	}
	return fmt.Sprintf("%s: %s", e.Family, e.Message)
}

// newExceptionObject wraps exc in an Object whose prototype is the
// matching built-in Error-family prototype, with a "message" and
// "name" own property, so script-level try/except can inspect a
// thrown exception like any other object (§6 "Error hierarchy").
func (i *Interpreter) newExceptionObject(exc *ExceptionValue) *Object {
	proto := i.Builtins.ErrorKind[exc.Family]
	if proto == nil {
		proto = i.Builtins.Error
	}
	o := NewPlainObject(proto, string(exc.Family))
	o.Body = exc
	o.Put(i, i.InternASCII("message"), Str(i.InternASCII(exc.Message)), AttrDontEnum)
	o.Put(i, i.InternASCII("name"), Str(i.InternASCII(string(exc.Family))), AttrDontEnum)
	return o
}

// ExceptionFromValue extracts the ExceptionValue a thrown Value carries,
// if it was produced by ThrowError/ThrowErrorAt; arbitrary script-thrown
// values (§6 "throw" may raise any Value) simply return ok=false.
func ExceptionFromValue(v Value) (exc *ExceptionValue, ok bool) {
	if !v.IsObject() {
		return nil, false
	}
	exc, ok = v.AsObject().Body.(*ExceptionValue)
	return exc, ok
}

// ThrowError constructs an instance of the named Error family with a
// formatted message and throws it (§4.9); it never returns, matching
// the C original's noreturn error-throw helpers.
func (i *Interpreter) ThrowError(family ErrorFamily, format string, args ...any) {
	i.ThrowErrorAt(nil, family, format, args...)
}

// ThrowErrorAt is ThrowError with an explicit throw-site position.
func (i *Interpreter) ThrowErrorAt(pos *seetoken.Position, family ErrorFamily, format string, args ...any) {
	exc := &ExceptionValue{
		Family:   family,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
		Trace:    i.traceback,
	}
	if i.System().Debug {
		if _, file, line, ok := goruntime.Caller(2); ok {
			exc.DebugSite = fmt.Sprintf("%s:%d", file, line)
		}
	}
	i.Throw(Obj(i.newExceptionObject(exc)), pos)
}

// Assert is the SEE_ASSERT-equivalent of §4.9: when cond is false it
// invokes the system Abort hook with a file:line diagnostic. Unlike the
// C original's compile-time elision in release builds, this substrate
// checks System().Debug at runtime and is a no-op when it is false —
// the closest idiomatic-Go analogue to "elided in release builds"
// without a second build of the package.
func (i *Interpreter) Assert(cond bool, format string, args ...any) {
	if cond || !i.System().Debug {
		return
	}
	_, file, line, _ := goruntime.Caller(1)
	i.System().Abort("%s:%d: assertion failed: %s", file, line, fmt.Sprintf(format, args...))
}
