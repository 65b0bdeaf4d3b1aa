package command

import (
	"context"

	"github.com/dmitrymomot/bindkit/core/signal"
)

// Command is the bindable contract between an invoker (a button, a key
// binding, a scheduler) and the action it triggers. Anything implementing
// it can be registered into a CompositeCommand, including another
// CompositeCommand.
type Command interface {
	// CanExecute reports whether the command may run with the given
	// parameter. It must be pure and cheap: invokers re-query it
	// reactively at arbitrary times.
	CanExecute(param any) bool

	// Execute runs the command with the given parameter.
	Execute(ctx context.Context, param any) error

	// CanExecuteChanged returns the signal fired whenever the result of
	// CanExecute may have changed and invokers should re-query.
	CanExecuteChanged() *signal.Signal[struct{}]
}

// ActiveAware is the optional capability for commands participating in
// multi-view scenarios: a command can mark itself eligible or ineligible
// for aggregate execution independently of its enablement. Composites in
// activity-monitoring mode probe for it once at registration.
type ActiveAware interface {
	// IsActive reports whether the command currently takes part in
	// aggregate operations.
	IsActive() bool

	// SetActive updates the active flag. Unchanged values are a no-op;
	// changes fire ActiveChanged with the new value.
	SetActive(active bool)

	// ActiveChanged returns the signal fired after the active flag flips.
	ActiveChanged() *signal.Signal[bool]
}
