package runtime

// NativeFunc is the shape of a host function adapted into a first-class
// callable object by NewNativeFunction (§4.9).
type NativeFunc func(i *Interpreter, this Value, argv []Value) Value

// NewNativeFunction turns fn into an object that responds to Call and
// to Get("length") with arity, per §4.9's "native-callable adapter".
func NewNativeFunction(i *Interpreter, name string, arity int, fn NativeFunc) *Object {
	o := NewObject(i.Builtins.Function, "Function")
	vt := PlainVTable()
	baseGet := vt.Get
	lengthKey := NewStringFromASCII("length")
	vt.Get = func(i *Interpreter, o *Object, propName *String) Value {
		if Cmp(propName, lengthKey) == 0 {
			return Number(float64(arity))
		}
		return baseGet(i, o, propName)
	}
	vt.Call = func(i *Interpreter, o *Object, this Value, argv []Value) Value {
		return fn(i, this, argv)
	}
	o.VTable = vt
	o.Put(i, i.InternASCII("name"), Str(i.InternASCII(name)), AttrReadOnly|AttrDontEnum|AttrDontDelete)
	return o
}

// ArgSpec is one conversion letter understood by ParseArgs/CallArgs.
type ArgSpec byte

const (
	ArgNumber ArgSpec = 'n' // float64
	ArgString ArgSpec = 's' // *String
	ArgBool   ArgSpec = 'b' // bool
	ArgObject ArgSpec = 'o' // *Object
	ArgValue  ArgSpec = 'v' // Value, accepted as-is
)

// ParseArgs decodes argv against format, a string of ArgSpec letters,
// writing each argument's Value into the matching *out slot (§4.9).
// Missing trailing arguments bind to Undefined rather than failing; a
// present argument whose Kind does not match its ArgSpec throws
// TypeError, since the source-language-level coercions (ToNumber,
// ToString, …) that would otherwise apply are layered above this
// substrate (§4.2) and are out of scope here.
func (i *Interpreter) ParseArgs(argv []Value, format string, out ...*Value) {
	if len(out) != len(format) {
		i.System().Abort("seeruntime: ParseArgs format/out length mismatch (%d vs %d)", len(format), len(out))
		return
	}
	for idx := 0; idx < len(format); idx++ {
		var v Value
		if idx < len(argv) {
			v = argv[idx]
		} else {
			v = Undefined()
		}
		if !v.IsUndefined() {
			switch ArgSpec(format[idx]) {
			case ArgNumber:
				if !v.IsNumber() {
					i.ThrowError(ErrTypeError, "argument %d: expected number, got %s", idx+1, v.Kind())
				}
			case ArgString:
				if !v.IsString() {
					i.ThrowError(ErrTypeError, "argument %d: expected string, got %s", idx+1, v.Kind())
				}
			case ArgBool:
				if !v.IsBoolean() {
					i.ThrowError(ErrTypeError, "argument %d: expected boolean, got %s", idx+1, v.Kind())
				}
			case ArgObject:
				if !v.IsObject() {
					i.ThrowError(ErrTypeError, "argument %d: expected object, got %s", idx+1, v.Kind())
				}
			case ArgValue:
				// accepted unconditionally
			default:
				i.System().Abort("seeruntime: ParseArgs unknown format verb %q", format[idx])
			}
		}
		*out[idx] = v
	}
}

// CallArgs encodes a variadic argument pack into Values according to
// format and invokes fn through the dispatcher (§4.9).
func (i *Interpreter) CallArgs(fn *Object, this Value, format string, args ...any) Value {
	if len(args) != len(format) {
		i.System().Abort("seeruntime: CallArgs format/args length mismatch (%d vs %d)", len(format), len(args))
	}
	argv := make([]Value, len(args))
	for idx := 0; idx < len(format); idx++ {
		switch ArgSpec(format[idx]) {
		case ArgNumber:
			argv[idx] = Number(args[idx].(float64))
		case ArgString:
			argv[idx] = Str(args[idx].(*String))
		case ArgBool:
			argv[idx] = Bool(args[idx].(bool))
		case ArgObject:
			argv[idx] = Obj(args[idx].(*Object))
		case ArgValue:
			argv[idx] = args[idx].(Value)
		default:
			i.System().Abort("seeruntime: CallArgs unknown format verb %q", format[idx])
		}
	}
	return i.Call(fn, this, argv)
}
