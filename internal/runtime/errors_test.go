package runtime

import (
	"strings"
	"testing"

	"github.com/adamnemecek/see-mirror-sub001/internal/seetoken"
)

func TestThrowErrorProducesInspectableException(t *testing.T) {
	i := New()
	pos := &seetoken.Position{Line: 3, Column: 7}

	caught, hasCaught, _ := i.Try(func() {
		i.ThrowErrorAt(pos, ErrRangeError, "index %d out of bounds", 12)
	})
	if !hasCaught {
		t.Fatalf("expected ThrowErrorAt to be caught")
	}

	exc, ok := ExceptionFromValue(caught)
	if !ok {
		t.Fatalf("caught value did not carry an ExceptionValue")
	}
	if exc.Family != ErrRangeError {
		t.Fatalf("expected family RangeError, got %s", exc.Family)
	}
	if exc.Message != "index 12 out of bounds" {
		t.Fatalf("unexpected message %q", exc.Message)
	}
	if exc.Position != pos {
		t.Fatalf("throw-site position was not preserved")
	}
	if !strings.Contains(exc.Inspect(), "RangeError") {
		t.Fatalf("Inspect() should mention the family, got %q", exc.Inspect())
	}

	obj := caught.AsObject()
	if CmpASCII(obj.Get(i, i.InternASCII("message")).AsString(), "index 12 out of bounds") != 0 {
		t.Fatalf("thrown object's message property does not match")
	}
}

func TestThrownObjectPrototypeIsErrorFamily(t *testing.T) {
	i := New()
	caught, _, _ := i.Try(func() {
		i.ThrowError(ErrTypeError, "boom")
	})
	obj := caught.AsObject()
	if obj.Prototype != i.Builtins.ErrorKind[ErrTypeError] {
		t.Fatalf("thrown object's prototype should be the TypeError prototype")
	}
}

func TestExceptionFromValueRejectsNonExceptions(t *testing.T) {
	if _, ok := ExceptionFromValue(Number(5)); ok {
		t.Fatalf("a plain number must not be mistaken for an exception")
	}
	if _, ok := ExceptionFromValue(Obj(NewPlainObject(nil, "Plain"))); ok {
		t.Fatalf("an ordinary object with no ExceptionValue body must not be mistaken for an exception")
	}
}

func TestAssertNoOpsWithoutDebug(t *testing.T) {
	sys := NewDefaultSystem()
	aborted := false
	sys.Abort = func(format string, args ...any) { aborted = true }
	sys.Debug = false

	i := &Interpreter{}
	i.SetSystem(sys)
	i.Init(sys.DefaultCompat)

	i.Assert(false, "should not fire")
	if aborted {
		t.Fatalf("Assert must be a no-op when Debug is false")
	}
}

func TestAssertAbortsWhenDebugAndConditionFalse(t *testing.T) {
	sys := NewDefaultSystem()
	var message string
	sys.Abort = func(format string, args ...any) { message = format }
	sys.Debug = true

	i := &Interpreter{}
	i.SetSystem(sys)
	i.Init(sys.DefaultCompat)

	i.Assert(1+1 == 3, "arithmetic broke")
	if message == "" {
		t.Fatalf("Assert should have invoked Abort when Debug is true and the condition is false")
	}
}
