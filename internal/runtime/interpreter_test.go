package runtime

import "testing"

func TestInitAllocatesEveryBuiltinFamily(t *testing.T) {
	i := New()
	if !i.IsInitialized() {
		t.Fatalf("expected IsInitialized() to report true after New")
	}

	families := []*Object{
		i.Builtins.Array, i.Builtins.Boolean, i.Builtins.Date, i.Builtins.Error,
		i.Builtins.Function, i.Builtins.Global, i.Builtins.Math, i.Builtins.Number,
		i.Builtins.Object, i.Builtins.RegExp, i.Builtins.String,
	}
	for idx, f := range families {
		if f == nil {
			t.Fatalf("builtin family at index %d was not allocated", idx)
		}
	}
	for family := range i.Builtins.ErrorKind {
		if i.Builtins.ErrorKind[family] == nil {
			t.Fatalf("error-kind prototype for %s was not allocated", family)
		}
	}
}

func TestInitPrototypesChainToObjectExceptObjectItself(t *testing.T) {
	i := New()
	if i.Builtins.Object.Prototype != nil {
		t.Fatalf("Object.prototype should have no prototype of its own")
	}
	if i.Builtins.Array.Prototype != i.Builtins.Object {
		t.Fatalf("Array.prototype should chain to Object.prototype")
	}
}

func TestInitIsIdempotentlyRepeatable(t *testing.T) {
	i := New()
	first := i.Builtins.Array
	i.Init(i.Compat)
	if i.Builtins.Array == first {
		t.Fatalf("a second Init should allocate fresh builtin objects, not reuse the prior ones")
	}
	if !i.IsInitialized() {
		t.Fatalf("expected IsInitialized() to remain true after a second Init")
	}
}

func TestCallStackPushPop(t *testing.T) {
	i := New()
	i.PushFrame("outer")
	i.PushFrame("inner")
	if got := i.CallStack(); len(got) != 2 || got[0] != "outer" || got[1] != "inner" {
		t.Fatalf("unexpected call stack %v", got)
	}
	i.PopFrame()
	if got := i.CallStack(); len(got) != 1 || got[0] != "outer" {
		t.Fatalf("unexpected call stack after pop %v", got)
	}
}

func TestFamilyInitHooksRunFunctionLast(t *testing.T) {
	sys := NewDefaultSystem()
	var order []string
	sys.FamilyInit = map[string]FamilyInitFunc{
		"Object":   func(i *Interpreter) { order = append(order, "Object") },
		"Array":    func(i *Interpreter) { order = append(order, "Array") },
		"Function": func(i *Interpreter) { order = append(order, "Function") },
	}

	i := &Interpreter{}
	i.SetSystem(sys)
	i.Init(sys.DefaultCompat)

	if len(order) == 0 || order[len(order)-1] != "Function" {
		t.Fatalf("expected Function's family-init hook to run last, got order %v", order)
	}
	if got := countOccurrences(order, "Function"); got != 1 {
		t.Fatalf("expected Function's family-init hook to run exactly once, ran %d times (order %v)", got, order)
	}
}

func countOccurrences(items []string, want string) int {
	n := 0
	for _, item := range items {
		if item == want {
			n++
		}
	}
	return n
}
