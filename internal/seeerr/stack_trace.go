// Package seeerr holds the traceback (§ C5 "Traceback entry") and
// diagnostic-formatting helpers shared by the runtime substrate. It is
// adapted from the teacher's internal/errors package: same StackFrame/
// StackTrace shape, generalized from "compiler error with source
// context" to "script exception raised at a source location".
package seeerr

import (
	"fmt"
	"strings"

	"github.com/adamnemecek/see-mirror-sub001/internal/seetoken"
)

// CallKind distinguishes why a frame was pushed onto the traceback, per
// spec §3 "Traceback entry: a linked list of (source location,
// call-kind) pairs".
type CallKind int

const (
	// CallFunction marks an ordinary function/method invocation.
	CallFunction CallKind = iota
	// CallConstruct marks a `new`-style construction.
	CallConstruct
	// CallNative marks a call into a host-native callable (C9 adapter).
	CallNative
)

func (k CallKind) String() string {
	switch k {
	case CallConstruct:
		return "construct"
	case CallNative:
		return "native"
	default:
		return "call"
	}
}

// StackFrame is one traceback entry: a (source location, call-kind) pair
// together with the human-readable name of the thing being called.
type StackFrame struct {
	Position *seetoken.Position
	Name     string
	Kind     CallKind
}

// String formats a single frame as "Name [line: N, column: M]", matching
// the teacher's format, with the call kind appended when it isn't a
// plain call.
func (f StackFrame) String() string {
	loc := f.Name
	if f.Position != nil && f.Position.IsValid() {
		loc = fmt.Sprintf("%s [line: %d, column: %d]", f.Name, f.Position.Line, f.Position.Column)
	}
	if f.Kind != CallFunction {
		loc = fmt.Sprintf("%s (%s)", loc, f.Kind)
	}
	return loc
}

// StackTrace is a traceback: a linked list of frames, oldest (bottom of
// call stack) first, matching spec §3's "Traceback entry" definition.
type StackTrace []StackFrame

// String renders the trace most-recent-frame-first, one per line.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Push returns a new trace with frame appended as the newest entry.
// StackTrace values are treated as immutable snapshots so that a
// try-context (§4.5) can cheaply retain the traceback at throw time
// without aliasing a mutable slice still being appended to elsewhere.
func (st StackTrace) Push(frame StackFrame) StackTrace {
	next := make(StackTrace, len(st)+1)
	copy(next, st)
	next[len(st)] = frame
	return next
}

// Top returns the most recently pushed frame, or nil if the trace is empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	f := st[len(st)-1]
	return &f
}

// Depth returns the number of frames in the trace.
func (st StackTrace) Depth() int {
	return len(st)
}
