package runtime

import "testing"

func TestParseCompatFlagsScenario(t *testing.T) {
	current := FlagErrata | CompatFlags(0).WithJSLevel(JS12)

	got, err := ParseCompatFlags("= js14 sgmlcom no_errata", current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := FlagSGMLCom | CompatFlags(0).WithJSLevel(JS14)
	if got != want {
		t.Fatalf("got %#x, want %#x (%s vs %s)", uint32(got), uint32(want), got, want)
	}
	if got.Has(FlagErrata) {
		t.Fatalf("errata should have been cleared by no_errata")
	}
	if got.JSLevel() != JS14 {
		t.Fatalf("expected JS1.4, got %v", got.JSLevel())
	}
}

func TestParseCompatFlagsWithoutLeadingEqualsStartsFromZero(t *testing.T) {
	got, err := ParseCompatFlags("sgmlcom", FlagErrata)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Has(FlagErrata) {
		t.Fatalf("omitting the leading '=' must discard the current bitset")
	}
	if !got.Has(FlagSGMLCom) {
		t.Fatalf("expected sgmlcom set")
	}
}

func TestParseCompatFlagsUnknownNameErrors(t *testing.T) {
	if _, err := ParseCompatFlags("not_a_real_flag", 0); err == nil {
		t.Fatalf("expected an error for an unknown flag name")
	}
}

func TestCompatFlagsStringAlwaysStartsWithEquals(t *testing.T) {
	if s := CompatFlags(0).String(); s != "=" {
		t.Fatalf("zero-value textualization = %q, want %q", s, "=")
	}
	s := (FlagErrata | FlagSGMLCom).String()
	if s[0] != '=' {
		t.Fatalf("textualization %q does not start with '='", s)
	}
}

func TestCompatFlagsJSFamilyMutuallyExclusive(t *testing.T) {
	f := CompatFlags(0).WithJSLevel(JS13)
	if f.JSLevel() != JS13 {
		t.Fatalf("expected JS1.3, got %v", f.JSLevel())
	}
	f = f.WithJSLevel(JS15)
	if f.JSLevel() != JS15 {
		t.Fatalf("expected JS1.5 after replacement, got %v", f.JSLevel())
	}
}
