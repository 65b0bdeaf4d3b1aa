package observe

import "errors"

var (
	// ErrNilTarget is returned when a property descriptor is built without a target object.
	ErrNilTarget = errors.New("observation target cannot be nil")

	// ErrEmptyPropertyName is returned when a property descriptor carries an empty name.
	ErrEmptyPropertyName = errors.New("property name cannot be empty")

	// ErrNilGetter is returned when a condition descriptor is built without an accessor.
	ErrNilGetter = errors.New("condition getter cannot be nil")

	// ErrDuplicateProperty is returned when the same property name is observed twice
	// through one observer.
	ErrDuplicateProperty = errors.New("property is already observed")
)
