package runtime

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the discriminant of a Value (§3 "Value"). It is observable by
// embedders and by the substrate's own dispatch logic.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is the tagged union described in spec §3: Undefined, Null,
// Boolean, Number, String or Object. It is a small value type copied by
// value, as the spec requires ("Values are copied by value; object and
// string payloads are borrowed references into the managed heap").
//
// A sum-type/interface representation was considered (and is what the
// teacher repo uses for its per-family Value types) but the spec is
// explicit in §3 and §9 that a single discriminated struct is the
// intended shape, with NaN-boxing left as an invisible optimization —
// so this substrate keeps one Value type rather than an interface with
// five implementations.
type Value struct {
	kind Kind
	b    bool
	n    float64
	str  *String
	obj  *Object
}

// Undefined constructs the Undefined value.
func Undefined() Value { return Value{kind: KindUndefined} }

// Null constructs the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool constructs a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Number constructs a Number value. NaN and ±Inf are valid payloads.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Str constructs a String value wrapping s. s may be nil only to
// represent "no string", which callers should not rely on; prefer
// Undefined/Null for absence.
func Str(s *String) Value { return Value{kind: KindString, str: s} }

// Obj constructs an Object value wrapping o.
func Obj(o *Object) Value { return Value{kind: KindObject, obj: o} }

// Kind returns the discriminant.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsBoolean() bool   { return v.kind == KindBoolean }
func (v Value) IsNumber() bool    { return v.kind == KindNumber }
func (v Value) IsString() bool    { return v.kind == KindString }
func (v Value) IsObject() bool    { return v.kind == KindObject }

// AsBool extracts the Boolean payload. The caller must already know the
// discriminant is KindBoolean (§4.2: "extract the payload once the
// discriminant is known"); calling this on another kind panics, the
// substrate's stand-in for a SEE_ASSERT-style contract violation (§7.4).
func (v Value) AsBool() bool {
	if v.kind != KindBoolean {
		panic(fmt.Sprintf("seeruntime: AsBool on a %s value", v.kind))
	}
	return v.b
}

// AsNumber extracts the Number payload.
func (v Value) AsNumber() float64 {
	if v.kind != KindNumber {
		panic(fmt.Sprintf("seeruntime: AsNumber on a %s value", v.kind))
	}
	return v.n
}

// AsString extracts the String payload.
func (v Value) AsString() *String {
	if v.kind != KindString {
		panic(fmt.Sprintf("seeruntime: AsString on a %s value", v.kind))
	}
	return v.str
}

// AsObject extracts the Object payload.
func (v Value) AsObject() *Object {
	if v.kind != KindObject {
		panic(fmt.Sprintf("seeruntime: AsObject on a %s value", v.kind))
	}
	return v.obj
}

// SetUndefined overwrites v in place, mirroring the SEE_SET_UNDEFINED-
// style in-place setters the original C substrate exposes alongside its
// constructors (§4.2 "setters").
func (v *Value) SetUndefined() { *v = Undefined() }
func (v *Value) SetNull()      { *v = Null() }
func (v *Value) SetBoolean(b bool) { *v = Bool(b) }
func (v *Value) SetNumber(n float64) { *v = Number(n) }
func (v *Value) SetString(s *String) { *v = Str(s) }
func (v *Value) SetObject(o *Object) { *v = Obj(o) }

// Inspect renders a debug-oriented representation of v, used by tests
// and by host tooling; it is not a source-language ToString.
func (v Value) Inspect() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return strconv.Quote(v.str.GoString())
	case KindObject:
		return v.obj.Inspect()
	default:
		return "<invalid value>"
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}
