package command

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/bindkit/core/observe"
	"github.com/dmitrymomot/bindkit/core/signal"
)

// DelegateCommand is a leaf command backed by caller-supplied functions:
// an execute delegate and an optional can-execute predicate. It can watch
// named viewmodel properties and re-broadcast its enablement whenever one
// of them changes.
//
// Example:
//
//	save, err := command.NewDelegateCommand(
//	    func(ctx context.Context, _ any) error { return form.Save(ctx) },
//	    command.WithCanExecute(func(any) bool { return form.Dirty }),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := save.ObserveProperty(observe.MustProp(form, "Dirty")); err != nil {
//	    return err
//	}
type DelegateCommand struct {
	execute           func(context.Context, any) error
	canExecuteChanged *signal.Signal[struct{}]
	activeChanged     *signal.Signal[bool]
	observer          *observe.Observer
	logger            *slog.Logger

	mu                 sync.Mutex
	canExecute         func(any) bool
	active             bool
	observedCanExecute bool
}

var (
	_ Command     = (*DelegateCommand)(nil)
	_ ActiveAware = (*DelegateCommand)(nil)
)

// Option configures a DelegateCommand.
type Option func(*config)

type config struct {
	canExecute    func(any) bool
	canExecuteSet bool
	logger        *slog.Logger
}

// WithCanExecute sets the can-execute predicate.
// Passing nil is a configuration error; omit the option entirely for the
// always-true default.
func WithCanExecute(fn func(param any) bool) Option {
	return func(c *config) {
		c.canExecute = fn
		c.canExecuteSet = true
	}
}

// WithLogger sets the logger for the command.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewDelegateCommand creates a command from an execute function.
// Configuration errors surface here, not at call time: a nil execute
// function or an explicitly nil predicate makes the command unusable.
// The active flag starts false; composites in activity-monitoring mode
// ignore the command until SetActive(true).
func NewDelegateCommand(execute func(ctx context.Context, param any) error, opts ...Option) (*DelegateCommand, error) {
	if execute == nil {
		return nil, ErrNilExecuteFunc
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.canExecuteSet && cfg.canExecute == nil {
		return nil, ErrNilCanExecuteFunc
	}

	canExecute := cfg.canExecute
	if canExecute == nil {
		canExecute = func(any) bool { return true }
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &DelegateCommand{
		execute:           execute,
		canExecute:        canExecute,
		canExecuteChanged: signal.New[struct{}](),
		activeChanged:     signal.New[bool](),
		logger:            logger,
	}
	d.observer = observe.NewObserver(func(name string) {
		d.logger.Debug("observed property changed", slog.String("property", name))
		d.RaiseCanExecuteChanged()
	})

	return d, nil
}

// CanExecute invokes the predicate. Pure, no side effects.
func (d *DelegateCommand) CanExecute(param any) bool {
	d.mu.Lock()
	predicate := d.canExecute
	d.mu.Unlock()

	return predicate(param)
}

// Execute invokes the execute delegate. It does not gate on CanExecute;
// invokers are expected to have queried it.
func (d *DelegateCommand) Execute(ctx context.Context, param any) error {
	return d.execute(ctx, param)
}

// CanExecuteChanged returns the enablement-changed signal.
func (d *DelegateCommand) CanExecuteChanged() *signal.Signal[struct{}] {
	return d.canExecuteChanged
}

// RaiseCanExecuteChanged fires the enablement-changed signal unconditionally.
// Use it when relevant state changed outside the observed-property mechanism.
func (d *DelegateCommand) RaiseCanExecuteChanged() {
	d.canExecuteChanged.Notify(struct{}{})
}

// ObserveProperty registers the property in the command's observed set and
// wires its change notification. A matching notification fires the
// enablement-changed signal once; whether the enablement actually changed
// is for consumers to re-query. Observing the same property name twice
// fails with observe.ErrDuplicateProperty.
func (d *DelegateCommand) ObserveProperty(p observe.Property) error {
	return d.observer.Observe(p)
}

// ObserveCanExecute replaces the can-execute predicate with the condition's
// accessor and observes its property, so changes to the value driving
// enablement trigger a re-query automatically. Only one condition may be
// observed per command; a second call fails with ErrCanExecuteAlreadyObserved.
func (d *DelegateCommand) ObserveCanExecute(c observe.Condition) error {
	d.mu.Lock()
	if d.observedCanExecute {
		d.mu.Unlock()
		return ErrCanExecuteAlreadyObserved
	}
	d.observedCanExecute = true
	d.mu.Unlock()

	if err := d.observer.Observe(c.Property()); err != nil {
		d.mu.Lock()
		d.observedCanExecute = false
		d.mu.Unlock()
		return err
	}

	d.mu.Lock()
	d.canExecute = func(any) bool { return c.Value() }
	d.mu.Unlock()

	return nil
}

// IsActive reports the current active flag.
func (d *DelegateCommand) IsActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// SetActive updates the active flag. No-op when unchanged; otherwise the
// active-changed signal fires with the new value.
func (d *DelegateCommand) SetActive(active bool) {
	d.mu.Lock()
	if d.active == active {
		d.mu.Unlock()
		return
	}
	d.active = active
	d.mu.Unlock()

	d.activeChanged.Notify(active)
}

// ActiveChanged returns the active-changed signal.
func (d *DelegateCommand) ActiveChanged() *signal.Signal[bool] {
	return d.activeChanged
}

// Close releases the property-observation subscriptions the command made.
func (d *DelegateCommand) Close() {
	d.observer.Close()
}
