// Package command provides a UI-toolkit-independent command abstraction for
// model-view-viewmodel applications: a view binds to an action and its
// enablement without the viewmodel importing any toolkit type.
//
// # Core Concepts
//
// A Command couples three things: "can this run" (CanExecute), "run it"
// (Execute), and a change notification for the former (CanExecuteChanged).
// Invokers — buttons, key bindings, schedulers — query CanExecute to decide
// whether triggering is allowed and re-query whenever the signal fires.
//
// The package provides:
//
//   - DelegateCommand: a leaf command backed by caller-supplied functions
//   - DelegateCommandFor[T]: the same with a typed parameter
//   - CompositeCommand: a command aggregating other commands
//   - Property observation via core/observe for automatic re-evaluation
//   - The optional ActiveAware capability for multi-view scenarios
//
// # Quick Start
//
//	form := NewLoginForm() // implements observe.Notifier
//
//	login, err := command.NewDelegateCommand(
//	    func(ctx context.Context, _ any) error { return form.Submit(ctx) },
//	)
//	if err != nil {
//	    return err
//	}
//	err = login.ObserveCanExecute(observe.MustCond(form, "Valid", func() bool {
//	    return form.Valid
//	}))
//
// Whenever the form announces a change to "Valid", the command fires its
// enablement-changed signal and bound invokers re-query CanExecute.
//
// # Property Observation
//
// ObserveProperty registers a named property of a viewmodel; a matching
// change notification fires the enablement-changed signal once per
// notification. The command does not decide whether the value actually
// changed — it only broadcasts that a re-query is warranted. Observing the
// same property name twice on one command is a usage error.
//
// ObserveCanExecute goes one step further: it replaces the predicate with a
// condition accessor and observes the property driving it, so enablement
// and its invalidation stay in lockstep. It may be used once per command.
//
// For state the observation mechanism cannot see, RaiseCanExecuteChanged
// forces a re-query broadcast.
//
// # Composite Commands
//
// CompositeCommand treats a group of commands as one. CanExecute is a
// strict AND over eligible members (false when no member is eligible);
// Execute fans out sequentially in registration order. Both work over a
// point-in-time snapshot of the registry, so members may be registered and
// unregistered concurrently with an in-flight query or fan-out — including
// from within a member's own callbacks.
//
// The fan-out is best effort, not transactional: a failing member does not
// stop the remaining snapshotted members, and every member error comes back
// aggregated via errors.Join.
//
// With WithActivityMonitoring, members exposing ActiveAware participate in
// aggregate operations only while active. A background view can deactivate
// its commands instead of unregistering them.
//
// Composites satisfy Command themselves, so they nest:
//
//	all := command.NewCompositeCommand()
//	_ = all.Register(saveGroup) // another composite
//	_ = all.Register(closeCmd)
//
// # Error Handling
//
// Every error in this package is fail-fast, synchronous, and surfaced to
// the immediate caller; these represent programmer mistakes, not transient
// conditions. Construction errors (nil delegates, a parameter type that
// cannot represent nil) appear at construction. Usage errors (nil, self, or
// duplicate registration; duplicate property observation) appear at call
// time and leave all state unchanged.
//
// # Concurrency
//
// Signals deliver synchronously on the goroutine of the triggering
// mutation, in subscription order, with no queueing or batching. The
// composite's registry lock is scoped tightly around mutation or snapshot
// copying and is never held during member calls or signal delivery, so
// re-entrant registration from a member's CanExecute is safe. Member
// Execute/CanExecute are assumed fast and synchronous from the composite's
// point of view; long-running work is the member's own concern (see
// pkg/async for a future-based adapter).
package command
