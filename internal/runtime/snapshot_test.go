package runtime

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/adamnemecek/see-mirror-sub001/internal/seeerr"
	"github.com/adamnemecek/see-mirror-sub001/internal/seetoken"
)

// TestValueInspectSnapshot snapshots Value.Inspect() across every kind,
// mirroring the teacher's fixture_test.go use of go-snaps for formatted
// output assertions.
func TestValueInspectSnapshot(t *testing.T) {
	i := New()
	values := []Value{
		Undefined(),
		Null(),
		Bool(true),
		Bool(false),
		Number(31),
		Number(-0.5),
		Str(i.InternASCII("hello")),
		Obj(NewPlainObject(nil, "Widget")),
	}

	var rendered string
	for _, v := range values {
		rendered += v.Inspect() + "\n"
	}
	snaps.MatchSnapshot(t, "value_inspect", rendered)
}

// TestCompatFlagsTextualizationSnapshot snapshots a handful of bitset
// textualizations (§6 "a textualization always begins with '='").
func TestCompatFlagsTextualizationSnapshot(t *testing.T) {
	flags := []CompatFlags{
		0,
		FlagErrata,
		FlagSGMLCom | Flag262_3b,
		CompatFlags(0).WithJSLevel(JS14),
		FlagErrata | FlagUTFUnsafe | CompatFlags(0).WithJSLevel(JS15),
	}

	var rendered string
	for _, f := range flags {
		rendered += f.String() + "\n"
	}
	snaps.MatchSnapshot(t, "compat_flags_textualization", rendered)
}

// TestStackTraceFormattingSnapshot snapshots a multi-frame traceback.
func TestStackTraceFormattingSnapshot(t *testing.T) {
	trace := seeerr.StackTrace{
		{Name: "main", Position: &seetoken.Position{Line: 1, Column: 1}},
		{Name: "helper", Position: &seetoken.Position{Line: 5, Column: 3}, Kind: seeerr.CallFunction},
		{Name: "Widget", Position: &seetoken.Position{Line: 12, Column: 9}, Kind: seeerr.CallConstruct},
	}
	snaps.MatchSnapshot(t, "stack_trace", trace.String())
}
