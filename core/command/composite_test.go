package command_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bindkit/core/command"
	"github.com/dmitrymomot/bindkit/core/signal"
)

// stubCommand is a minimal external Command implementation without the
// ActiveAware capability.
type stubCommand struct {
	can     func() bool
	run     func() error
	changed *signal.Signal[struct{}]
}

func newStubCommand(can func() bool, run func() error) *stubCommand {
	return &stubCommand{can: can, run: run, changed: signal.New[struct{}]()}
}

func (s *stubCommand) CanExecute(any) bool {
	return s.can()
}

func (s *stubCommand) Execute(context.Context, any) error {
	return s.run()
}

func (s *stubCommand) CanExecuteChanged() *signal.Signal[struct{}] {
	return s.changed
}

func mustDelegate(t *testing.T, run func() error) *command.DelegateCommand {
	t.Helper()
	cmd, err := command.NewDelegateCommand(func(context.Context, any) error { return run() })
	require.NoError(t, err)
	return cmd
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil command", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		assert.ErrorIs(t, composite.Register(nil), command.ErrNilCommand)
	})

	t.Run("rejects self registration", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		assert.ErrorIs(t, composite.Register(composite), command.ErrSelfRegistration)
		assert.Empty(t, composite.Members())
	})

	t.Run("rejects duplicate and leaves membership unchanged", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		cmd := mustDelegate(t, func() error { return nil })

		require.NoError(t, composite.Register(cmd))
		assert.ErrorIs(t, composite.Register(cmd), command.ErrAlreadyRegistered)
		assert.Len(t, composite.Members(), 1)
	})

	t.Run("fires enablement exactly once on success, zero on failure", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		fired := countEnablement(composite)
		cmd := mustDelegate(t, func() error { return nil })

		require.NoError(t, composite.Register(cmd))
		assert.Equal(t, 1, *fired)

		require.Error(t, composite.Register(cmd))
		assert.Equal(t, 1, *fired)

		require.Error(t, composite.Register(nil))
		assert.Equal(t, 1, *fired)
	})

	t.Run("allows nesting another composite", func(t *testing.T) {
		t.Parallel()

		inner := command.NewCompositeCommand()
		require.NoError(t, inner.Register(mustDelegate(t, func() error { return nil })))

		outer := command.NewCompositeCommand()
		require.NoError(t, outer.Register(inner))

		assert.True(t, outer.CanExecute(nil))
	})
}

func TestUnregister(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil command", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		assert.ErrorIs(t, composite.Unregister(nil), command.ErrNilCommand)
	})

	t.Run("absent command is a silent no-op", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		fired := countEnablement(composite)

		require.NoError(t, composite.Unregister(mustDelegate(t, func() error { return nil })))
		assert.Equal(t, 0, *fired)
	})

	t.Run("removes and fires exactly once", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		cmd := mustDelegate(t, func() error { return nil })
		require.NoError(t, composite.Register(cmd))

		fired := countEnablement(composite)
		require.NoError(t, composite.Unregister(cmd))

		assert.Equal(t, 1, *fired)
		assert.Empty(t, composite.Members())
	})

	t.Run("detaches member subscriptions", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		cmd := mustDelegate(t, func() error { return nil })
		require.NoError(t, composite.Register(cmd))
		require.NoError(t, composite.Unregister(cmd))

		fired := countEnablement(composite)
		cmd.RaiseCanExecuteChanged()
		assert.Equal(t, 0, *fired)
	})

	t.Run("preserves registration order of the rest", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		first := mustDelegate(t, func() error { return nil })
		second := mustDelegate(t, func() error { return nil })
		third := mustDelegate(t, func() error { return nil })

		require.NoError(t, composite.Register(first))
		require.NoError(t, composite.Register(second))
		require.NoError(t, composite.Register(third))
		require.NoError(t, composite.Unregister(second))

		members := composite.Members()
		require.Len(t, members, 2)
		assert.Same(t, first, members[0])
		assert.Same(t, third, members[1])
	})
}

func TestCompositeCanExecute(t *testing.T) {
	t.Parallel()

	t.Run("empty composite is false", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		assert.False(t, composite.CanExecute(nil))
	})

	t.Run("all members true is true", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		require.NoError(t, composite.Register(newStubCommand(func() bool { return true }, func() error { return nil })))
		require.NoError(t, composite.Register(newStubCommand(func() bool { return true }, func() error { return nil })))

		assert.True(t, composite.CanExecute(nil))
	})

	t.Run("one false member makes it false", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		require.NoError(t, composite.Register(newStubCommand(func() bool { return true }, func() error { return nil })))
		require.NoError(t, composite.Register(newStubCommand(func() bool { return false }, func() error { return nil })))

		assert.False(t, composite.CanExecute(nil))
	})

	t.Run("short-circuits on first disqualifying member", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		queried := false
		require.NoError(t, composite.Register(newStubCommand(func() bool { return false }, func() error { return nil })))
		require.NoError(t, composite.Register(newStubCommand(func() bool { queried = true; return true }, func() error { return nil })))

		assert.False(t, composite.CanExecute(nil))
		assert.False(t, queried)
	})

	t.Run("re-entrant unregister from a member query is safe", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		victim := newStubCommand(func() bool { return true }, func() error { return nil })

		trigger := newStubCommand(nil, func() error { return nil })
		trigger.can = func() bool {
			_ = composite.Unregister(victim)
			return true
		}

		require.NoError(t, composite.Register(trigger))
		require.NoError(t, composite.Register(victim))

		// Snapshot at call start still includes the victim.
		assert.True(t, composite.CanExecute(nil))
		assert.Len(t, composite.Members(), 1)
	})
}

func TestCompositeExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes each member exactly once in registration order", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		var order []int
		for i := 1; i <= 3; i++ {
			i := i
			require.NoError(t, composite.Register(mustDelegate(t, func() error {
				order = append(order, i)
				return nil
			})))
		}

		require.NoError(t, composite.Execute(context.Background(), nil))
		assert.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("continues past failures and aggregates errors", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		errFirst := errors.New("first failed")
		executedLast := false

		require.NoError(t, composite.Register(mustDelegate(t, func() error { return errFirst })))
		require.NoError(t, composite.Register(mustDelegate(t, func() error { executedLast = true; return nil })))

		err := composite.Execute(context.Background(), nil)
		assert.ErrorIs(t, err, errFirst)
		assert.True(t, executedLast)
	})

	t.Run("snapshot is immune to concurrent unregistration", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		var executed []string

		var last *command.DelegateCommand
		first := mustDelegate(t, func() error {
			executed = append(executed, "first")
			_ = composite.Unregister(last)
			return nil
		})
		last = mustDelegate(t, func() error {
			executed = append(executed, "last")
			return nil
		})

		require.NoError(t, composite.Register(first))
		require.NoError(t, composite.Register(last))

		// The already-taken snapshot still runs the unregistered member.
		require.NoError(t, composite.Execute(context.Background(), nil))
		assert.Equal(t, []string{"first", "last"}, executed)
		assert.Len(t, composite.Members(), 1)
	})
}

func TestActivityMonitoring(t *testing.T) {
	t.Parallel()

	t.Run("inactive member is excluded from both operations", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand(command.WithActivityMonitoring())

		executed := false
		active := mustDelegate(t, func() error { executed = true; return nil })
		active.SetActive(true)

		inactiveExecuted := false
		inactive, err := command.NewDelegateCommand(
			func(context.Context, any) error { inactiveExecuted = true; return nil },
			command.WithCanExecute(func(any) bool { return true }),
		)
		require.NoError(t, err)

		require.NoError(t, composite.Register(active))
		require.NoError(t, composite.Register(inactive))

		assert.True(t, composite.CanExecute(nil))
		require.NoError(t, composite.Execute(context.Background(), nil))
		assert.True(t, executed)
		assert.False(t, inactiveExecuted)
	})

	t.Run("fully inactive composite cannot execute", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand(command.WithActivityMonitoring())
		require.NoError(t, composite.Register(mustDelegate(t, func() error { return nil })))

		assert.False(t, composite.CanExecute(nil))
	})

	t.Run("members without the capability stay eligible", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand(command.WithActivityMonitoring())
		require.NoError(t, composite.Register(newStubCommand(func() bool { return true }, func() error { return nil })))

		assert.True(t, composite.CanExecute(nil))
	})

	t.Run("activity change re-fires composite enablement", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand(command.WithActivityMonitoring())
		member := mustDelegate(t, func() error { return nil })
		require.NoError(t, composite.Register(member))

		fired := countEnablement(composite)
		member.SetActive(true)
		assert.Equal(t, 1, *fired)
	})

	t.Run("default mode ignores activity", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		member := mustDelegate(t, func() error { return nil })
		require.NoError(t, composite.Register(member))

		// Member inactive, still eligible without monitoring.
		assert.True(t, composite.CanExecute(nil))

		fired := countEnablement(composite)
		member.SetActive(true)
		assert.Equal(t, 0, *fired)
	})
}

func TestEnablementForwarding(t *testing.T) {
	t.Parallel()

	t.Run("member signal re-fires composite signal", func(t *testing.T) {
		t.Parallel()

		composite := command.NewCompositeCommand()
		member := mustDelegate(t, func() error { return nil })
		require.NoError(t, composite.Register(member))

		fired := countEnablement(composite)
		member.RaiseCanExecuteChanged()
		member.RaiseCanExecuteChanged()
		assert.Equal(t, 2, *fired)
	})

	t.Run("forwards through nested composites", func(t *testing.T) {
		t.Parallel()

		inner := command.NewCompositeCommand()
		member := mustDelegate(t, func() error { return nil })
		require.NoError(t, inner.Register(member))

		outer := command.NewCompositeCommand()
		require.NoError(t, outer.Register(inner))

		fired := countEnablement(outer)
		member.RaiseCanExecuteChanged()
		assert.Equal(t, 1, *fired)
	})
}

func TestRegisterUnregisterSequences(t *testing.T) {
	t.Parallel()

	composite := command.NewCompositeCommand()
	commands := make([]*command.DelegateCommand, 6)
	for i := range commands {
		commands[i] = mustDelegate(t, func() error { return nil })
		require.NoError(t, composite.Register(commands[i]))
	}

	require.NoError(t, composite.Unregister(commands[1]))
	require.NoError(t, composite.Unregister(commands[4]))

	members := composite.Members()
	require.Len(t, members, 4)
	assert.Same(t, commands[0], members[0])
	assert.Same(t, commands[2], members[1])
	assert.Same(t, commands[3], members[2])
	assert.Same(t, commands[5], members[3])
}

func TestConcurrentMembership(t *testing.T) {
	t.Parallel()

	composite := command.NewCompositeCommand()

	const goroutines = 8
	const perGoroutine = 25

	// Disjoint command sets per goroutine: evens stay, odds get removed.
	kept := make(map[command.Command]bool)
	var keptMu sync.Mutex

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				cmd, err := command.NewDelegateCommand(func(context.Context, any) error { return nil })
				if err != nil {
					t.Error(err)
					return
				}
				if err := composite.Register(cmd); err != nil {
					t.Errorf("register: %v", err)
					return
				}
				if i%2 == 1 {
					if err := composite.Unregister(cmd); err != nil {
						t.Errorf("unregister: %v", err)
					}
					continue
				}
				keptMu.Lock()
				kept[cmd] = true
				keptMu.Unlock()
			}
		}(g)
	}
	wg.Wait()

	members := composite.Members()
	require.Len(t, members, len(kept), "no lost updates, no duplicates")

	seen := make(map[command.Command]bool, len(members))
	for i, m := range members {
		assert.False(t, seen[m], fmt.Sprintf("duplicate entry at %d", i))
		seen[m] = true
		assert.True(t, kept[m], "unexpected member survived")
	}
}
