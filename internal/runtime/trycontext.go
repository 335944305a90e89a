package runtime

import (
	"github.com/adamnemecek/see-mirror-sub001/internal/seeerr"
	"github.com/adamnemecek/see-mirror-sub001/internal/seetoken"
)

// TryContext is one frame of the non-local-exit stack described in §4.5:
// a saved environment sufficient to resume after a non-local exit, a
// caught-value slot, a link to the prior context, and linkage to the
// traceback. The "saved environment" in this Go translation is simply
// "the Go call stack between EnterTry and the matching defer", which
// panic/recover already unwinds correctly — see Design Notes §9's
// permission to use "whichever mechanism the target language makes
// idiomatic" in place of setjmp/longjmp.
type TryContext struct {
	prev      *TryContext
	caught    Value
	hasCaught bool
	traceback seeerr.StackTrace
}

// tryMarker is the panic payload used to unwind to the innermost
// TryContext. Any other panic value represents a host contract
// violation or internal invariant violation (§7 kinds 4–5) and is left
// to propagate as an ordinary Go panic.
type tryMarker struct{}

// EnterTry pushes a new try context that records the current traceback.
// The throw location is not saved in the context: a Throw inside the
// scope overwrites it, and leaving the scope does not restore it.
func (i *Interpreter) EnterTry() *TryContext {
	ctx := &TryContext{prev: i.tryContext, traceback: i.traceback}
	i.tryContext = ctx
	return ctx
}

// LeaveTry pops ctx, which must be the current innermost context.
func (i *Interpreter) LeaveTry(ctx *TryContext) {
	if i.tryContext != ctx {
		panic("seeruntime: try-context stack corrupted (LeaveTry called out of order)")
	}
	i.tryContext = ctx.prev
}

// Throw stores value into the innermost try context's caught-value
// slot, records pos into the traceback, and performs the non-local
// jump back to the point that entered that context (§4.5).
func (i *Interpreter) Throw(value Value, pos *seetoken.Position) {
	i.throwLocation = pos
	frame := seeerr.StackFrame{Position: pos, Name: i.currentCallName()}
	i.traceback = i.traceback.Push(frame)
	if ctx := i.tryContext; ctx != nil {
		ctx.caught = value
		ctx.hasCaught = true
		ctx.traceback = i.traceback
	}
	panic(tryMarker{})
}

// Rethrow is the "default-catch helper" of §4.5: it re-raises a
// still-pending exception into the enclosing context, preserving value
// and traceback rather than recomputing a new throw site.
func (i *Interpreter) Rethrow(value Value, trace seeerr.StackTrace) {
	i.traceback = trace
	if ctx := i.tryContext; ctx != nil {
		ctx.caught = value
		ctx.hasCaught = true
		ctx.traceback = trace
	}
	panic(tryMarker{})
}

// Try runs fn under a fresh try context. If fn throws (via Throw or
// Rethrow), Try recovers the tryMarker panic and returns the caught
// value; any other panic (a host contract violation, §7.4/§7.5)
// propagates unchanged. On normal or exceptional return the try
// context is always popped before Try returns, matching §4.5's
// "leaving a try scope normally pops the context" plus the implicit
// requirement that an abnormal exit pops it too.
func (i *Interpreter) Try(fn func()) (caught Value, hasCaught bool, trace seeerr.StackTrace) {
	ctx := i.EnterTry()
	defer func() {
		i.LeaveTry(ctx)
		if r := recover(); r != nil {
			if _, ok := r.(tryMarker); ok {
				caught, hasCaught, trace = ctx.caught, ctx.hasCaught, ctx.traceback
				return
			}
			panic(r)
		}
	}()
	fn()
	return Undefined(), false, nil
}

// SavedState is the handle produced by SaveState (§4.5): the three
// fields an embedder must swap atomically when multiplexing
// interpreters across threads or fibers.
type SavedState struct {
	tryContext    *TryContext
	throwLocation *seetoken.Position
	traceback     seeerr.StackTrace
}

// SaveState captures interp's try-context, try-location and traceback.
func (i *Interpreter) SaveState() SavedState {
	return SavedState{tryContext: i.tryContext, throwLocation: i.throwLocation, traceback: i.traceback}
}

// RestoreState replaces interp's try-context, try-location and
// traceback from a previously captured handle, atomically from the
// host's perspective (§4.5).
func (i *Interpreter) RestoreState(s SavedState) {
	i.tryContext = s.tryContext
	i.throwLocation = s.throwLocation
	i.traceback = s.traceback
}

func (i *Interpreter) currentCallName() string {
	if n := len(i.callStack); n > 0 {
		return i.callStack[n-1]
	}
	return "<script>"
}
