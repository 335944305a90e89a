package runtime

import (
	"fmt"
)

// Attr is the property-attribute bitset from §4.4: ReadOnly, DontEnum,
// DontDelete, Internal.
type Attr uint8

const (
	AttrNone Attr = 0
	// AttrReadOnly rejects Put (CanPut reports false, Put is a no-op).
	AttrReadOnly Attr = 1 << iota
	// AttrDontEnum hides the property from Enumerator.
	AttrDontEnum
	// AttrDontDelete rejects Delete (it reports false rather than removing).
	AttrDontDelete
	// AttrInternal marks implementation-private storage. The plain
	// property-bag hooks store the bit but do not act on it: such a
	// property is still returned by Get, and is listed by Enumerator
	// unless AttrDontEnum is also set.
	AttrInternal
)

type property struct {
	value Value
	attr  Attr
}

// PropertyEnumerator walks the enumerable own properties of an object,
// per §4.4's enumerator() hook.
type PropertyEnumerator interface {
	// Next returns the next property name, or ok=false when exhausted.
	Next() (name *String, ok bool)
}

type sliceEnumerator struct {
	names []*String
	pos   int
}

func (e *sliceEnumerator) Next() (*String, bool) {
	if e.pos >= len(e.names) {
		return nil, false
	}
	n := e.names[e.pos]
	e.pos++
	return n, true
}

// VTable is the capability vtable described in §4.4. Every hook is
// optional; a nil hook is substituted by the default behavior in the
// table that accompanies §4.4, implemented in the dispatch methods
// below. A single Go struct of function fields (rather than a Go
// interface per capability) mirrors the original's "vtable of function
// pointers expresses the capability set per object family", while
// keeping the common built-in shape (ordinary property-bag access)
// available as PlainVTable for families that only need to override a
// handful of hooks.
type VTable struct {
	Get          func(i *Interpreter, o *Object, name *String) Value
	Put          func(i *Interpreter, o *Object, name *String, v Value, attr Attr)
	CanPut       func(i *Interpreter, o *Object, name *String) bool
	HasProperty  func(i *Interpreter, o *Object, name *String) bool
	Delete       func(i *Interpreter, o *Object, name *String) bool
	DefaultValue func(i *Interpreter, o *Object, hint Kind) Value
	Construct    func(i *Interpreter, o *Object, this Value, argv []Value) Value
	Call         func(i *Interpreter, o *Object, this Value, argv []Value) Value
	HasInstance  func(i *Interpreter, o *Object, v Value) bool
	Enumerator   func(i *Interpreter, o *Object) PropertyEnumerator
	GetSecDomain func(i *Interpreter, o *Object) (domain any, has bool)
}

// Object is the polymorphic object of §3: a vtable, an optional
// prototype, a class name and implementation-defined body storage. The
// default body storage here is a property map, which is what every
// built-in "ordinary" object family needs; families with genuinely
// opaque bodies (e.g. a bound native resource) stash it in Body instead
// and supply their own vtable hooks that ignore props entirely.
type Object struct {
	VTable    *VTable
	Prototype *Object
	Class     string
	Body      any

	props    map[string]*property
	keys     []string  // insertion order (key()-hashed), for deterministic enumeration
	keyNames []*String // parallel to keys, the original String for each key
}

// NewObject creates a bare object with no vtable: every capability uses
// the §4.4 default (Get→Undefined, Put→no-op, and so on). This is the
// "escape hatch for host-defined objects" the design notes (§9) call
// for — a host can start from this and attach only the hooks it needs.
func NewObject(proto *Object, class string) *Object {
	return &Object{Prototype: proto, Class: class}
}

// NewPlainObject creates an object backed by the ordinary property-bag
// vtable (PlainVTable): get/put/canput/hasproperty/delete/defaultvalue
// all operate on the object's own property map and fall back to the
// prototype chain on lookup miss, matching the glossary's "prototype
// chain: ... consulted for property lookup when a property is absent
// on the receiver". It has no Call/Construct/HasInstance of its own, so
// those still take the §4.4 defaults (TypeError / fallback instanceof)
// unless the caller attaches them.
func NewPlainObject(proto *Object, class string) *Object {
	o := NewObject(proto, class)
	o.VTable = PlainVTable()
	return o
}

// PlainVTable returns a fresh vtable implementing ordinary property-bag
// semantics over an Object's own storage. Families that need Call,
// Construct or HasInstance copy this and add those hooks.
func PlainVTable() *VTable {
	return &VTable{
		Get:          plainGet,
		Put:          plainPut,
		CanPut:       plainCanPut,
		HasProperty:  plainHasProperty,
		Delete:       plainDelete,
		DefaultValue: plainDefaultValue,
		Enumerator:   plainEnumerator,
	}
}

func (o *Object) ensureProps() {
	if o.props == nil {
		o.props = make(map[string]*property)
	}
}

func plainGet(i *Interpreter, o *Object, name *String) Value {
	k := name.key()
	if p, ok := o.props[k]; ok {
		return p.value
	}
	if o.Prototype != nil {
		return o.Prototype.Get(i, name)
	}
	return Undefined()
}

func plainPut(i *Interpreter, o *Object, name *String, v Value, attr Attr) {
	if !o.CanPut(i, name) {
		return
	}
	o.ensureProps()
	k := name.key()
	if existing, ok := o.props[k]; ok {
		existing.value = v
		return
	}
	o.props[k] = &property{value: v, attr: attr}
	o.keys = append(o.keys, k)
	o.keyNames = append(o.keyNames, name)
}

func plainCanPut(i *Interpreter, o *Object, name *String) bool {
	if p, ok := o.props[name.key()]; ok {
		return p.attr&AttrReadOnly == 0
	}
	if o.Prototype != nil {
		return o.Prototype.CanPut(i, name)
	}
	return true
}

func plainHasProperty(i *Interpreter, o *Object, name *String) bool {
	if _, ok := o.props[name.key()]; ok {
		return true
	}
	if o.Prototype != nil {
		return o.Prototype.HasProperty(i, name)
	}
	return false
}

func plainDelete(i *Interpreter, o *Object, name *String) bool {
	k := name.key()
	p, ok := o.props[k]
	if !ok {
		return true
	}
	if p.attr&AttrDontDelete != 0 {
		return false
	}
	delete(o.props, k)
	for idx, existing := range o.keys {
		if existing == k {
			o.keys = append(o.keys[:idx], o.keys[idx+1:]...)
			o.keyNames = append(o.keyNames[:idx], o.keyNames[idx+1:]...)
			break
		}
	}
	return true
}

func plainDefaultValue(i *Interpreter, o *Object, hint Kind) Value {
	order := []string{"valueOf", "toString"}
	if hint == KindString {
		order = []string{"toString", "valueOf"}
	}
	for _, name := range order {
		m := o.Get(i, i.InternASCII(name))
		if !m.IsObject() {
			continue
		}
		if m.AsObject().VTable == nil || m.AsObject().VTable.Call == nil {
			continue
		}
		result := m.AsObject().Call(i, Obj(o), nil)
		if !result.IsObject() {
			return result
		}
	}
	return Undefined()
}

func plainEnumerator(i *Interpreter, o *Object) PropertyEnumerator {
	names := make([]*String, 0, len(o.keys))
	for idx, k := range o.keys {
		if o.props[k].attr&AttrDontEnum != 0 {
			continue
		}
		names = append(names, o.keyNames[idx])
	}
	return &sliceEnumerator{names: names}
}

// Get dispatches the get(name) capability (§4.4), defaulting to Undefined.
func (o *Object) Get(i *Interpreter, name *String) Value {
	if o.VTable != nil && o.VTable.Get != nil {
		return o.VTable.Get(i, o, name)
	}
	return Undefined()
}

// Put dispatches put(name, value, attrs), defaulting to a no-op.
func (o *Object) Put(i *Interpreter, name *String, v Value, attr Attr) {
	if o.VTable != nil && o.VTable.Put != nil {
		o.VTable.Put(i, o, name, v, attr)
	}
}

// CanPut dispatches canput(name), defaulting to false.
func (o *Object) CanPut(i *Interpreter, name *String) bool {
	if o.VTable != nil && o.VTable.CanPut != nil {
		return o.VTable.CanPut(i, o, name)
	}
	return false
}

// HasProperty dispatches hasproperty(name), defaulting to false.
func (o *Object) HasProperty(i *Interpreter, name *String) bool {
	if o.VTable != nil && o.VTable.HasProperty != nil {
		return o.VTable.HasProperty(i, o, name)
	}
	return false
}

// Delete dispatches delete(name), defaulting to true ("nothing to delete").
func (o *Object) Delete(i *Interpreter, name *String) bool {
	if o.VTable != nil && o.VTable.Delete != nil {
		return o.VTable.Delete(i, o, name)
	}
	return true
}

// DefaultValue dispatches defaultvalue(hint), defaulting to Undefined.
func (o *Object) DefaultValue(i *Interpreter, hint Kind) Value {
	if o.VTable != nil && o.VTable.DefaultValue != nil {
		return o.VTable.DefaultValue(i, o, hint)
	}
	return Undefined()
}

// Construct dispatches construct(this, argv), defaulting to a thrown TypeError.
func (o *Object) Construct(i *Interpreter, this Value, argv []Value) Value {
	if o.VTable != nil && o.VTable.Construct != nil {
		return o.VTable.Construct(i, o, this, argv)
	}
	i.ThrowError(ErrTypeError, "%s is not a constructor", o.Class)
	panic("unreachable")
}

// Call dispatches call(this, argv), defaulting to a thrown TypeError.
func (o *Object) Call(i *Interpreter, this Value, argv []Value) Value {
	if o.VTable != nil && o.VTable.Call != nil {
		return o.VTable.Call(i, o, this, argv)
	}
	i.ThrowError(ErrTypeError, "%s is not callable", o.Class)
	panic("unreachable")
}

// Enumerator dispatches enumerator(), defaulting to no iterator.
func (o *Object) Enumerator(i *Interpreter) PropertyEnumerator {
	if o.VTable != nil && o.VTable.Enumerator != nil {
		return o.VTable.Enumerator(i, o)
	}
	return nil
}

// SecDomain dispatches get_sec_domain(); has is false when the hook is
// absent, meaning "inherit from caller" (§4.4).
func (o *Object) SecDomain(i *Interpreter) (domain any, has bool) {
	if o.VTable != nil && o.VTable.GetSecDomain != nil {
		return o.VTable.GetSecDomain(i, o)
	}
	return nil, false
}

// Inspect renders a short debug form, used by Value.Inspect and tests.
func (o *Object) Inspect() string {
	if o == nil {
		return "<nil object>"
	}
	return fmt.Sprintf("[object %s]", o.Class)
}

// InstanceOf implements the §4.4 instanceof semantics: delegate to the
// constructor's HasInstance hook if it has one; otherwise, at JS
// compatibility >= 1.4, require both operands to be objects and walk
// value's prototype chain looking for ctor's "prototype" property;
// below that compatibility level, fail with TypeError.
func InstanceOf(i *Interpreter, value Value, ctor *Object) bool {
	if ctor.VTable != nil && ctor.VTable.HasInstance != nil {
		return ctor.VTable.HasInstance(i, ctor, value)
	}
	if i.Compat.JSLevel() < JS14 {
		i.ThrowError(ErrTypeError, "no [[HasInstance]]")
		panic("unreachable")
	}
	if !value.IsObject() {
		return false
	}
	protoVal := ctor.Get(i, i.InternASCII("prototype"))
	if !protoVal.IsObject() {
		i.ThrowError(ErrTypeError, "prototype is not an object")
		panic("unreachable")
	}
	target := protoVal.AsObject()
	for p := value.AsObject().Prototype; p != nil; p = p.Prototype {
		if p == target {
			return true
		}
	}
	return false
}
