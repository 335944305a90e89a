package runtime

// DispatchKind distinguishes a call from a construct for the dispatcher.
type DispatchKind int

const (
	DispatchCall DispatchKind = iota
	DispatchConstruct
)

func (k DispatchKind) String() string {
	if k == DispatchConstruct {
		return "construct"
	}
	return "call"
}

// objectSecDomain reads target's security domain, if it publishes one.
func objectSecDomain(i *Interpreter, target *Object) (domain any, has bool) {
	return target.SecDomain(i)
}

// Invoke is the single dispatcher (§4.7) every object call and every
// object construct performed on behalf of script goes through. It:
//
//  1. Throws a recursion-limit Error when the budget is already zero.
//  2. Saves the recursion budget and current security domain.
//  3. Invokes the system transit hook when the target carries a
//     security domain different from the current one.
//  4. Calls the target's Call or Construct hook.
//  5. Restores the saved budget and security domain on every exit path
//     (normal return or a propagating script exception), so a thrown
//     exception never leaks a reduced budget.
//
// The original's setjmp-based "opens a try scope" step (§4.7 step 4) is
// subsumed by Go's defer: the restoration below runs during panic
// unwinding exactly as it would on a normal return, so no separate
// recover is needed here — only script-level try/except (TryContext,
// §4.5) actually catches the exception.
//
// Per the Open Question in spec §9, call and construct are deliberately
// made uniform here: both throw when the budget is already zero, and
// both decrement by exactly one for the duration of the call, rather
// than preserving the source's subtle discrepancy between the two paths.
func (i *Interpreter) Invoke(kind DispatchKind, target *Object, this Value, argv []Value) Value {
	if i.RecursionBudget == 0 {
		i.ThrowError(ErrError, "recursion limit reached")
		panic("unreachable")
	}

	savedBudget := i.RecursionBudget
	savedDomain := i.SecurityDomain
	if i.RecursionBudget > 0 {
		i.RecursionBudget--
	}
	defer func() {
		i.RecursionBudget = savedBudget
		i.SecurityDomain = savedDomain
	}()

	if dom, has := objectSecDomain(i, target); has && dom != i.SecurityDomain {
		if hook := i.System().SecurityTransit; hook != nil {
			hook(i, i.SecurityDomain, dom)
		}
		i.SecurityDomain = dom
	}

	i.PushFrame(target.Class)
	defer i.PopFrame()

	switch kind {
	case DispatchConstruct:
		return target.Construct(i, this, argv)
	default:
		return target.Call(i, this, argv)
	}
}

// Call is shorthand for Invoke(DispatchCall, ...).
func (i *Interpreter) Call(target *Object, this Value, argv []Value) Value {
	return i.Invoke(DispatchCall, target, this, argv)
}

// Construct is shorthand for Invoke(DispatchConstruct, ...).
func (i *Interpreter) Construct(target *Object, this Value, argv []Value) Value {
	return i.Invoke(DispatchConstruct, target, this, argv)
}
