package command

import "errors"

var (
	// ErrNilExecuteFunc is returned when a command is constructed without an execute function.
	ErrNilExecuteFunc = errors.New("execute function cannot be nil")

	// ErrNilCanExecuteFunc is returned when a nil can-execute predicate is passed explicitly.
	// Omitting the option entirely defaults the predicate to always-true.
	ErrNilCanExecuteFunc = errors.New("can-execute predicate cannot be nil")

	// ErrNonNilableParameter is returned when a typed command is constructed with a
	// parameter type that cannot represent an absent value. Use a pointer instead
	// (*int, not int): a nil parameter must stay distinguishable from a real zero.
	ErrNonNilableParameter = errors.New("command parameter type cannot represent nil")

	// ErrParameterType is returned when a typed command receives a parameter of the
	// wrong dynamic type.
	ErrParameterType = errors.New("invalid command parameter type")

	// ErrCanExecuteAlreadyObserved is returned when ObserveCanExecute is called more
	// than once on the same command.
	ErrCanExecuteAlreadyObserved = errors.New("can-execute condition is already observed")

	// ErrNilCommand is returned when nil is passed to Register or Unregister.
	ErrNilCommand = errors.New("command cannot be nil")

	// ErrSelfRegistration is returned when a composite is registered into itself.
	ErrSelfRegistration = errors.New("composite cannot register itself")

	// ErrAlreadyRegistered is returned when the same command instance is registered twice.
	ErrAlreadyRegistered = errors.New("command is already registered")
)
