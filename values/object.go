package values

import (
	"sync/atomic"

	"github.com/vorin-lang/vorin/symbols"
)

var instanceIDSeq int64

// Object is the runtime representation of TypeObject. Properties/Methods
// keep the teacher's original shape so the builtin function library and its
// extensions (spl, mysqli, pdo, ...) can build one directly as a composite
// literal; Class/InstanceID are the additions the VM core needs for
// late-static-binding lookups and var_dump's `object(Name)#id` header.
type Object struct {
	ClassName  string
	Properties map[string]*Value
	Methods    map[string]interface{}
	Destructed bool

	Class      symbols.Symbol
	InstanceID int64
	Internal   interface{} // opaque native payload for host-defined classes

	propOrder []string
	dynamic   map[string]bool
	refs      int32
}

// ObjectInstance is an alias for Object: the core packages (compiler, vm,
// registry) spell it this way since "instance" reads better next to
// "ClassDescriptor", while the builtin library keeps calling it Object.
type ObjectInstance = Object

func NewObjectInstance(class symbols.Symbol, className string) *Object {
	return &Object{
		Class:      class,
		ClassName:  className,
		InstanceID: atomic.AddInt64(&instanceIDSeq, 1),
		Properties: make(map[string]*Value),
		dynamic:    make(map[string]bool),
		refs:       1,
	}
}

func (o *Object) Retain() *Object {
	o.refs++
	return o
}

func (o *Object) Release() {
	if o.refs > 0 {
		o.refs--
	}
}

func (o *Object) ensureOrder() []string {
	if len(o.propOrder) == len(o.Properties) {
		ok := true
		for _, n := range o.propOrder {
			if _, exists := o.Properties[n]; !exists {
				ok = false
				break
			}
		}
		if ok {
			return o.propOrder
		}
	}
	out := make([]string, 0, len(o.Properties))
	for n := range o.Properties {
		out = append(out, n)
	}
	return out
}

// PropertyNames returns property names, in declaration/insertion order where
// every property was set via SetProperty, falling back to map order for
// objects whose Properties map was populated directly (the common case in
// the builtin function library, which predates property-order tracking).
func (o *Object) PropertyNames() []string {
	order := o.ensureOrder()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

func (o *Object) HasProperty(name string) bool {
	if o.Properties == nil {
		return false
	}
	_, ok := o.Properties[name]
	return ok
}

func (o *Object) GetProperty(name string) (*Value, bool) {
	if o.Properties == nil {
		return nil, false
	}
	v, ok := o.Properties[name]
	return v, ok
}

func (o *Object) IsDynamicProperty(name string) bool { return o.dynamic[name] }

// SetProperty sets a property's value, registering it in declaration order
// the first time it is seen. dynamic marks properties added outside the
// class's declared property list, which var_dump renders without a
// visibility annotation.
func (o *Object) SetProperty(name string, value *Value, dynamic bool) {
	if o.Properties == nil {
		o.Properties = make(map[string]*Value)
	}
	if _, exists := o.Properties[name]; !exists {
		o.propOrder = append(o.propOrder, name)
		if dynamic {
			if o.dynamic == nil {
				o.dynamic = make(map[string]bool)
			}
			o.dynamic[name] = true
		}
	}
	o.Properties[name] = value
}

func (o *Object) UnsetProperty(name string) {
	if !o.HasProperty(name) {
		return
	}
	delete(o.Properties, name)
	for i, n := range o.propOrder {
		if n == name {
			o.propOrder = append(o.propOrder[:i], o.propOrder[i+1:]...)
			break
		}
	}
	delete(o.dynamic, name)
}

func (o *Object) PropertyCount() int { return len(o.Properties) }

// Each walks properties in (best-effort) declaration/insertion order.
func (o *Object) Each(fn func(name string, value *Value)) {
	for _, name := range o.ensureOrder() {
		fn(name, o.Properties[name])
	}
}

// Clone performs a shallow structural copy used by `clone $obj`: properties
// copy by value/COW-share, then the class's __clone hook runs in the caller
// if declared.
func (o *Object) Clone() *Object {
	c := NewObjectInstance(o.Class, o.ClassName)
	o.Each(func(name string, v *Value) {
		c.SetProperty(name, v, o.dynamic[name])
	})
	return c
}
