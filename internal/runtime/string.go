package runtime

import (
	"sync"
	"unicode/utf16"

	"golang.org/x/sync/singleflight"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// String is the immutable UTF-16 string described in spec §3: a length,
// a code-unit buffer, an optional owning interpreter (nil when globally
// interned) and an interned flag. Two interned strings are equal iff
// they are the same *String.
type String struct {
	units    []uint16
	interp   *Interpreter
	interned bool
}

// NewString copies units into a fresh, non-interned String.
func NewString(units []uint16) *String {
	cp := make([]uint16, len(units))
	copy(cp, units)
	return &String{units: cp}
}

// NewStringFromASCII builds a non-interned String from an ASCII byte
// string, matching the C API's habit of taking `const char *` literals
// for well-known property/identifier names.
func NewStringFromASCII(ascii string) *String {
	units := make([]uint16, len(ascii))
	for i := 0; i < len(ascii); i++ {
		units[i] = uint16(ascii[i])
	}
	return &String{units: units}
}

// NewStringFromUTF8 decodes a host-supplied UTF-8 buffer into a String,
// honoring a leading BOM the way the teacher's detectAndDecodeFile does
// for its own source-file loader. This is the substrate's "create an
// input source from a UTF-8 buffer" embedder-API primitive (spec §6);
// what is later done with the resulting String (lexing, parsing) is out
// of scope.
func NewStringFromUTF8(buf []byte) (*String, error) {
	decoder := xunicode.UTF8BOM.NewDecoder()
	utf8Bytes, _, err := transform.Bytes(decoder, buf)
	if err != nil {
		return nil, err
	}
	b := newStringBuilder(len(utf8Bytes))
	for _, r := range string(utf8Bytes) {
		if r1, r2 := utf16.EncodeRune(r); r1 != 0xFFFD || r2 != 0xFFFD {
			b.appendUnit(uint16(r1))
			b.appendUnit(uint16(r2))
		} else {
			b.appendUnit(uint16(r))
		}
	}
	return &String{units: b.units()}, nil
}

// stringBuilder accumulates UTF-16 code units using the substrate's
// growable-array utility (§4.1), rather than a plain append loop, so
// that the memory manager's grow_to fast path gets real exercise.
type stringBuilder struct {
	arr *GrowableArray[uint16]
	n   int
}

func newStringBuilder(hint int) *stringBuilder {
	b := &stringBuilder{arr: NewGrowableArray[uint16](true)}
	b.arr.GrowTo(hint)
	b.arr.Truncate(0)
	return b
}

func (b *stringBuilder) appendUnit(u uint16) {
	b.arr.GrowTo(b.n + 1)
	b.arr.Set(b.n, u)
	b.n++
}

func (b *stringBuilder) units() []uint16 {
	out := make([]uint16, b.n)
	for i := 0; i < b.n; i++ {
		out[i] = b.arr.Get(i)
	}
	return out
}

// Len returns the number of UTF-16 code units.
func (s *String) Len() int { return len(s.units) }

// Units returns the code-unit buffer. Callers must not mutate it;
// String is immutable by contract (§3).
func (s *String) Units() []uint16 { return s.units }

// Interpreter returns the owning interpreter, or nil if globally interned.
func (s *String) Interpreter() *Interpreter { return s.interp }

// IsInterned reports whether s currently lives in an intern table.
func (s *String) IsInterned() bool { return s.interned }

// GoString decodes s to a Go string for diagnostics/host interop. This
// is a convenience, not part of the interning identity contract.
func (s *String) GoString() string { return string(utf16.Decode(s.units)) }

// key returns a byte-stable identity key for table storage, built
// directly off the code units so it never depends on whether the units
// happen to decode to valid UTF-16 (unpaired surrogates are legal
// payloads here, same as in the source language).
func (s *String) key() string {
	buf := make([]byte, len(s.units)*2)
	for i, u := range s.units {
		buf[2*i] = byte(u >> 8)
		buf[2*i+1] = byte(u)
	}
	return string(buf)
}

// internTable is the per-scope table described in §4.3: a mutex-guarded
// map keyed by code-unit identity. The global table additionally
// coalesces concurrent first-time inserts of the same content via
// singleflight, since §5 requires the global table's mutation to be
// serialized across interpreters/threads.
type internTable struct {
	mu    sync.Mutex
	table map[string]*String
	group singleflight.Group
}

func newInternTable() *internTable {
	return &internTable{table: make(map[string]*String)}
}

var globalInterns = newInternTable()

// InternGlobal interns ascii into the process-wide scope (§4.3
// intern_global). The returned String's owning interpreter is always
// nil.
func InternGlobal(ascii string) *String {
	k := NewStringFromASCII(ascii).key()
	v, _, _ := globalInterns.group.Do(k, func() (any, error) {
		globalInterns.mu.Lock()
		defer globalInterns.mu.Unlock()
		if existing, ok := globalInterns.table[k]; ok {
			return existing, nil
		}
		fresh := NewStringFromASCII(ascii)
		fresh.interned = true
		globalInterns.table[k] = fresh
		return fresh, nil
	})
	return v.(*String)
}

// InternASCII interns an ASCII literal into interp's per-interpreter
// scope (§4.3 intern_ascii).
func (i *Interpreter) InternASCII(ascii string) *String {
	return i.Intern(NewStringFromASCII(ascii))
}

// Intern canonicalizes s within interp's scope, per the algorithm in
// §4.3: already-global or already-this-interpreter strings are
// returned unchanged; otherwise the code units are looked up (and, on
// miss, copied) into interp's table.
func (i *Interpreter) Intern(s *String) *String {
	if s.interned && s.interp == nil {
		return s
	}
	if s.interned && s.interp == i {
		return s
	}
	k := s.key()
	i.interns.mu.Lock()
	defer i.interns.mu.Unlock()
	if existing, ok := i.interns.table[k]; ok {
		return existing
	}
	fresh := NewString(s.units)
	fresh.interp = i
	fresh.interned = true
	i.interns.table[k] = fresh
	return fresh
}

// Dup produces a distinct, non-interned copy of s (§4.3 dup). The
// result never equals s by reference, even though Cmp(Dup(i,s), s) == 0.
func (i *Interpreter) Dup(s *String) *String {
	_ = i
	return NewString(s.units)
}

// Cmp lexicographically compares a and b over their code units,
// returning -1, 0 or +1 (§4.3 cmp).
func Cmp(a, b *String) int { return cmpUnits(a.units, b.units) }

// CmpASCII compares a against the ASCII bytes of cstr using the same
// lexicographic ordering as Cmp, so that
// CmpASCII(InternASCII(i,a), b) == Cmp(InternASCII(i,a), InternASCII(i,b))
// holds for all ASCII a, b (§8 testable property).
func CmpASCII(a *String, cstr string) int {
	bu := make([]uint16, len(cstr))
	for i := 0; i < len(cstr); i++ {
		bu[i] = uint16(cstr[i])
	}
	return cmpUnits(a.units, bu)
}

func cmpUnits(a, b []uint16) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
