package observe

import (
	"github.com/dmitrymomot/bindkit/core/signal"
)

// Notifier is the change-notification capability a watched object may expose.
// The signal carries the canonical name of the property that changed.
// Objects without this capability are still valid observation targets;
// they simply never trigger automatic re-evaluation.
type Notifier interface {
	// PropertyChanged returns the signal fired after one of the object's
	// properties changes. The payload is the property name.
	PropertyChanged() *signal.Signal[string]
}

// Property identifies a single named property on a specific live object.
// It replaces the property-access expressions of reflection-based binding
// layers: the caller states the target and the name directly, which keeps
// observation unambiguous and free of runtime expression parsing.
type Property struct {
	target any
	name   string
}

// Prop builds a property descriptor.
// Fails when the target is nil or the name is empty: a descriptor must
// directly address one named property on one live instance.
//
// Example:
//
//	p, err := observe.Prop(form, "Email")
func Prop(target any, name string) (Property, error) {
	if target == nil {
		return Property{}, ErrNilTarget
	}
	if name == "" {
		return Property{}, ErrEmptyPropertyName
	}
	return Property{target: target, name: name}, nil
}

// MustProp is like Prop but panics on an invalid descriptor.
// Use it for descriptors that are known valid at compile time.
func MustProp(target any, name string) Property {
	p, err := Prop(target, name)
	if err != nil {
		panic("observe: " + err.Error())
	}
	return p
}

// Target returns the observed object.
func (p Property) Target() any {
	return p.target
}

// Name returns the canonical property name.
func (p Property) Name() string {
	return p.name
}

// Condition is a property whose current value drives a boolean decision,
// typically a command's can-execute predicate. The getter reads the live
// value; the property half tells the observer what to watch.
type Condition struct {
	prop Property
	get  func() bool
}

// Cond builds a condition descriptor over target's named property.
// Fails with the same descriptor errors as Prop, plus ErrNilGetter when
// no accessor is supplied.
//
// Example:
//
//	c, err := observe.Cond(form, "Dirty", func() bool { return form.Dirty })
func Cond(target any, name string, get func() bool) (Condition, error) {
	prop, err := Prop(target, name)
	if err != nil {
		return Condition{}, err
	}
	if get == nil {
		return Condition{}, ErrNilGetter
	}
	return Condition{prop: prop, get: get}, nil
}

// MustCond is like Cond but panics on an invalid descriptor.
func MustCond(target any, name string, get func() bool) Condition {
	c, err := Cond(target, name, get)
	if err != nil {
		panic("observe: " + err.Error())
	}
	return c
}

// Property returns the observed property half of the condition.
func (c Condition) Property() Property {
	return c.prop
}

// Value reads the condition's current boolean value.
func (c Condition) Value() bool {
	return c.get()
}
