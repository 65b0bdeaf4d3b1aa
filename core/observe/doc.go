// Package observe wires commands to the viewmodel state that drives their
// enablement, without either side depending on a UI toolkit.
//
// # Descriptors Instead of Expressions
//
// Reflection-based binding layers parse property-access expressions at
// runtime to find out what to watch. This package replaces that with an
// explicit descriptor: the caller supplies the target object and the
// canonical property name directly.
//
//	p, err := observe.Prop(form, "Email")
//	c, err := observe.Cond(form, "Dirty", func() bool { return form.Dirty })
//
// Descriptor validation replaces the error class expression parsing used to
// produce: a nil target or an empty name fails fast, because observation must address
// exactly one named property on exactly one live instance.
//
// # Change Notification
//
// A watched object opts into automatic re-evaluation by implementing
// Notifier: exposing a PropertyChanged signal keyed by property name.
//
//	type Form struct {
//	    changed *signal.Signal[string]
//	    Email   string
//	}
//
//	func (f *Form) PropertyChanged() *signal.Signal[string] { return f.changed }
//
//	func (f *Form) SetEmail(v string) {
//	    f.Email = v
//	    f.changed.Notify("Email")
//	}
//
// Objects that do not implement Notifier are still valid targets; observing
// them registers the name but installs nothing, and no re-evaluation occurs.
// This is deliberate: some bound objects are immutable for the command's
// purposes.
//
// # One Subscription Per Target
//
// Observer installs at most one PropertyChanged subscription per distinct
// notifier, regardless of how many properties are observed on it. A shared
// handler filters notifications by exact name match and invokes the owner's
// callback once per matching notification. Duplicate observation of the same
// property name through one observer is an error.
package observe
