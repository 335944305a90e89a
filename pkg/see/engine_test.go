package see

import (
	"bytes"
	"io"
	"testing"

	"github.com/adamnemecek/see-mirror-sub001/internal/runtime"
)

func TestNewConstructsAReadyEngine(t *testing.T) {
	e := New(0)
	if e.Interpreter() == nil || !e.Interpreter().IsInitialized() {
		t.Fatalf("expected New to return a fully initialized interpreter")
	}
	if e.Global() == nil {
		t.Fatalf("expected a non-nil Global object")
	}
}

func TestOutputDefaultsToDiscardThenHonorsWithOutput(t *testing.T) {
	e := New(0)
	if e.Output() != io.Discard {
		t.Fatalf("Output() must default to io.Discard when no writer is set")
	}

	var buf bytes.Buffer
	e2 := New(0, WithOutput(&buf))
	e2.SetOutput(&buf)
	if e2.Output() != &buf {
		t.Fatalf("expected Output() to return the writer set via WithOutput/SetOutput")
	}
}

func TestWithSystemPinsTheGivenSystem(t *testing.T) {
	sys := runtime.NewDefaultSystem()
	sys.DefaultLocale = "ja_JP"
	e := New(0, WithSystem(sys))
	if got := e.Interpreter().Locale; got != "ja_JP" {
		t.Fatalf("expected interpreter to pick up the pinned system's locale, got %q", got)
	}
}

func TestEvaluateReturnsCallResultOnSuccess(t *testing.T) {
	e := New(0)
	program := e.NewFunction("program", 0, func(i *runtime.Interpreter, this runtime.Value, argv []runtime.Value) runtime.Value {
		return runtime.Number(42)
	})

	result, caught, err := e.Evaluate(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caught != nil {
		t.Fatalf("expected no caught exception, got %v", caught.Inspect())
	}
	if result.AsNumber() != 42 {
		t.Fatalf("expected result 42, got %v", result.AsNumber())
	}
}

func TestEvaluateReportsUncaughtException(t *testing.T) {
	e := New(0)
	program := e.NewFunction("program", 0, func(i *runtime.Interpreter, this runtime.Value, argv []runtime.Value) runtime.Value {
		i.ThrowError(runtime.ErrTypeError, "boom")
		return runtime.Undefined()
	})

	_, caught, err := e.Evaluate(program)
	if err == nil {
		t.Fatalf("expected an error for an uncaught exception")
	}
	if caught == nil || caught.Family != runtime.ErrTypeError {
		t.Fatalf("expected a TypeError exception, got %v", caught)
	}
}

func TestTryCatchReportsThrow(t *testing.T) {
	e := New(0)
	result, caught, threw := e.TryCatch(func() runtime.Value {
		e.Interpreter().ThrowError(runtime.ErrRangeError, "out of range")
		return runtime.Undefined()
	})
	if !threw {
		t.Fatalf("expected TryCatch to report a throw")
	}
	if caught == nil || caught.Family != runtime.ErrRangeError {
		t.Fatalf("expected a RangeError exception, got %v", caught)
	}
	if !result.IsUndefined() {
		t.Fatalf("expected a zero result on throw")
	}
}

func TestTryCatchReturnsResultOnCleanExit(t *testing.T) {
	e := New(0)
	result, caught, threw := e.TryCatch(func() runtime.Value {
		return runtime.Number(7)
	})
	if threw || caught != nil {
		t.Fatalf("expected a clean exit, got caught=%v threw=%v", caught, threw)
	}
	if result.AsNumber() != 7 {
		t.Fatalf("expected result 7, got %v", result.AsNumber())
	}
}

func TestPublishInstallsReadableProperty(t *testing.T) {
	e := New(0)
	e.Publish(e.Global(), "answer", runtime.Number(42), runtime.AttrDontEnum)

	got := e.Global().Get(e.Interpreter(), e.Interpreter().InternASCII("answer"))
	if got.AsNumber() != 42 {
		t.Fatalf("expected published value 42, got %v", got.AsNumber())
	}
}

func TestSaveRestoreStateRoundTrips(t *testing.T) {
	e := New(0)
	saved := e.SaveState()
	before := e.Interpreter().Traceback().Depth()
	_, _, _ = e.TryCatch(func() runtime.Value {
		e.Interpreter().ThrowError(runtime.ErrTypeError, "transient")
		return runtime.Undefined()
	})
	if e.Interpreter().Traceback().Depth() == before {
		t.Fatalf("expected the throw to extend the traceback")
	}
	e.RestoreState(saved)
	if got := e.Interpreter().Traceback().Depth(); got != before {
		t.Fatalf("expected RestoreState to restore traceback depth %d, got %d", before, got)
	}
}

func TestSourceFromUTF8DecodesBuffer(t *testing.T) {
	e := New(0)
	s, err := e.SourceFromUTF8([]byte("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.GoString() != "hello" {
		t.Fatalf("expected round-tripped string %q, got %q", "hello", s.GoString())
	}
}
