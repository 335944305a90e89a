package runtime

import (
	"fmt"
	"strings"
)

// CompatFlags is the compatibility-flag bitset from spec §6: four
// independent bits plus a mutually exclusive JS-family subfield.
type CompatFlags uint32

const (
	// Flag262_3b corresponds to the "262_3b" independent bit.
	Flag262_3b CompatFlags = 1 << 0
	// FlagSGMLCom corresponds to the "sgmlcom" independent bit.
	FlagSGMLCom CompatFlags = 1 << 1
	// FlagUTFUnsafe corresponds to the "utf_unsafe" independent bit.
	FlagUTFUnsafe CompatFlags = 1 << 2
	// FlagErrata corresponds to the "errata" independent bit.
	FlagErrata CompatFlags = 1 << 3

	jsFamilyShift             = 8
	jsFamilyMask  CompatFlags = 0x7 << jsFamilyShift
)

// JSLevel is the mutually-exclusive JS-family subfield value.
type JSLevel int

const (
	JSNone JSLevel = iota
	JS11
	JS12
	JS13
	JS14
	JS15
)

var jsLevelNames = map[JSLevel]string{
	JS11: "js11", JS12: "js12", JS13: "js13", JS14: "js14", JS15: "js15",
}

var jsLevelByName = map[string]JSLevel{
	"js11": JS11, "js12": JS12, "js13": JS13, "js14": JS14, "js15": JS15,
}

var independentFlagNames = []struct {
	name string
	bit  CompatFlags
}{
	{"262_3b", Flag262_3b},
	{"sgmlcom", FlagSGMLCom},
	{"utf_unsafe", FlagUTFUnsafe},
	{"errata", FlagErrata},
}

// JSLevel extracts the mutually exclusive JS-family subfield.
func (f CompatFlags) JSLevel() JSLevel {
	return JSLevel((f & jsFamilyMask) >> jsFamilyShift)
}

// WithJSLevel returns f with its JS-family subfield replaced by level,
// leaving the four independent bits untouched.
func (f CompatFlags) WithJSLevel(level JSLevel) CompatFlags {
	return (f &^ jsFamilyMask) | (CompatFlags(level) << jsFamilyShift)
}

// Has reports whether every bit in mask is set.
func (f CompatFlags) Has(mask CompatFlags) bool { return f&mask == mask }

// String textualizes f. A textualization always begins with "=" (§6).
func (f CompatFlags) String() string {
	parts := make([]string, 0, 6)
	for _, entry := range independentFlagNames {
		if f&entry.bit != 0 {
			parts = append(parts, entry.name)
		}
	}
	if lvl := f.JSLevel(); lvl != JSNone {
		parts = append(parts, jsLevelNames[lvl])
	}
	if len(parts) == 0 {
		return "="
	}
	return "= " + strings.Join(parts, " ")
}

// ParseCompatFlags parses a textual compatibility-flag string (§6): a
// sequence of whitespace-separated flag names, each optionally prefixed
// "no_", with an optional leading "=" token meaning "start from
// current rather than zero". Unknown names abort the parse with an
// error (the Go analogue of "produce a warning and abort the parse").
func ParseCompatFlags(text string, current CompatFlags) (CompatFlags, error) {
	fields := strings.Fields(text)
	result := CompatFlags(0)
	if len(fields) > 0 && fields[0] == "=" {
		result = current
		fields = fields[1:]
	}
	for _, field := range fields {
		negate := strings.HasPrefix(field, "no_")
		name := field
		if negate {
			name = field[len("no_"):]
		}
		if level, ok := jsLevelByName[name]; ok {
			if negate {
				result = result.WithJSLevel(JSNone)
			} else {
				result = result.WithJSLevel(level)
			}
			continue
		}
		found := false
		for _, entry := range independentFlagNames {
			if entry.name != name {
				continue
			}
			found = true
			if negate {
				result &^= entry.bit
			} else {
				result |= entry.bit
			}
			break
		}
		if !found {
			return 0, fmt.Errorf("seeruntime: unknown compatibility flag %q", field)
		}
	}
	return result, nil
}
