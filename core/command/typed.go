package command

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// DelegateCommandFor is a DelegateCommand whose parameter is typed.
// It satisfies the untyped Command contract (composites and invokers pass
// any), converting the parameter on the way in: nil flows through as the
// typed nil, and a wrong dynamic type disables the command rather than
// silently coercing.
//
// The parameter type must be able to represent an absent value (pointer,
// interface, map, slice, channel, or function). A plain value type is
// rejected at construction: invokers pass nil during initial binding, and
// coercing nil to a zero value would be indistinguishable from a real
// zero. Use *int rather than int.
type DelegateCommandFor[T any] struct {
	*DelegateCommand
}

var (
	_ Command     = (*DelegateCommandFor[any])(nil)
	_ ActiveAware = (*DelegateCommandFor[any])(nil)
)

// OptionFor configures a DelegateCommandFor.
type OptionFor[T any] func(*configFor[T])

type configFor[T any] struct {
	canExecute    func(T) bool
	canExecuteSet bool
	logger        *slog.Logger
}

// WithCanExecuteFor sets the typed can-execute predicate.
// Passing nil is a configuration error; omit the option entirely for the
// always-true default.
func WithCanExecuteFor[T any](fn func(param T) bool) OptionFor[T] {
	return func(c *configFor[T]) {
		c.canExecute = fn
		c.canExecuteSet = true
	}
}

// WithLoggerFor sets the logger for the command.
func WithLoggerFor[T any](logger *slog.Logger) OptionFor[T] {
	return func(c *configFor[T]) {
		c.logger = logger
	}
}

// NewDelegateCommandFor creates a typed command from an execute function.
//
// Example:
//
//	open, err := command.NewDelegateCommandFor(
//	    func(ctx context.Context, doc *Document) error { return editor.Open(ctx, doc) },
//	    command.WithCanExecuteFor(func(doc *Document) bool { return doc != nil }),
//	)
func NewDelegateCommandFor[T any](execute func(ctx context.Context, param T) error, opts ...OptionFor[T]) (*DelegateCommandFor[T], error) {
	if execute == nil {
		return nil, ErrNilExecuteFunc
	}
	if !nilableKind(reflect.TypeOf((*T)(nil)).Elem().Kind()) {
		return nil, fmt.Errorf("%w: %s", ErrNonNilableParameter, reflect.TypeOf((*T)(nil)).Elem())
	}

	var cfg configFor[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.canExecuteSet && cfg.canExecute == nil {
		return nil, ErrNilCanExecuteFunc
	}

	predicate := cfg.canExecute
	if predicate == nil {
		predicate = func(T) bool { return true }
	}

	baseOpts := []Option{
		WithCanExecute(func(param any) bool {
			typed, err := convertParam[T](param)
			if err != nil {
				return false
			}
			return predicate(typed)
		}),
	}
	if cfg.logger != nil {
		baseOpts = append(baseOpts, WithLogger(cfg.logger))
	}

	base, err := NewDelegateCommand(func(ctx context.Context, param any) error {
		typed, err := convertParam[T](param)
		if err != nil {
			return err
		}
		return execute(ctx, typed)
	}, baseOpts...)
	if err != nil {
		return nil, err
	}

	return &DelegateCommandFor[T]{DelegateCommand: base}, nil
}

// CanExecuteTyped is CanExecute without the conversion round-trip.
func (d *DelegateCommandFor[T]) CanExecuteTyped(param T) bool {
	return d.CanExecute(param)
}

// ExecuteTyped is Execute without the conversion round-trip.
func (d *DelegateCommandFor[T]) ExecuteTyped(ctx context.Context, param T) error {
	return d.Execute(ctx, param)
}

// nilableKind reports whether values of the kind can be nil.
func nilableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map,
		reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// convertParam converts an untyped command parameter to T.
// nil becomes the typed nil; any other dynamic type must assert to T.
func convertParam[T any](param any) (T, error) {
	var zero T
	if param == nil {
		return zero, nil
	}
	typed, ok := param.(T)
	if !ok {
		return zero, fmt.Errorf("%w: expected %s, got %T", ErrParameterType, reflect.TypeOf((*T)(nil)).Elem(), param)
	}
	return typed, nil
}
