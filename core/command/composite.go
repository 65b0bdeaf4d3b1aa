package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/dmitrymomot/bindkit/core/signal"
)

// CompositeCommand aggregates member commands and exposes the Command
// contract itself, so a group of commands can be bound, queried, and
// nested like any single command. Enablement is a strict AND over
// eligible members; execution is a sequential best-effort fan-out in
// registration order.
//
// The member registry tolerates registration and unregistration running
// concurrently with an in-flight query or fan-out: every operation works
// over a point-in-time snapshot, and the registry lock is never held
// during member calls or signal delivery.
//
// Example:
//
//	saveAll := command.NewCompositeCommand(command.WithActivityMonitoring())
//	if err := saveAll.Register(saveLeft); err != nil {
//	    return err
//	}
//	if err := saveAll.Register(saveRight); err != nil {
//	    return err
//	}
//	if saveAll.CanExecute(nil) {
//	    err := saveAll.Execute(ctx, nil)
//	}
type CompositeCommand struct {
	canExecuteChanged *signal.Signal[struct{}]
	monitorActivity   bool
	logger            *slog.Logger

	mu      sync.Mutex
	members []*member
	present mapset.Set[Command]
}

var _ Command = (*CompositeCommand)(nil)

// member pairs a registered command with the subscriptions the composite
// installed on it. activeAware is probed once at registration and stays
// nil outside activity-monitoring mode.
type member struct {
	cmd           Command
	activeAware   ActiveAware
	enablementSub signal.Subscription
	activeSub     signal.Subscription
}

// CompositeOption configures a CompositeCommand.
type CompositeOption func(*CompositeCommand)

// WithActivityMonitoring makes the composite honor the ActiveAware
// capability of its members: inactive members are excluded from both
// enablement aggregation and execution fan-out. Set once at construction.
func WithActivityMonitoring() CompositeOption {
	return func(c *CompositeCommand) {
		c.monitorActivity = true
	}
}

// WithCompositeLogger sets the logger for the composite.
// If not set, slog.Default() is used.
func WithCompositeLogger(logger *slog.Logger) CompositeOption {
	return func(c *CompositeCommand) {
		c.logger = logger
	}
}

// NewCompositeCommand creates an empty composite.
// An empty composite cannot execute: CanExecute is false until at least
// one eligible member reports true.
func NewCompositeCommand(opts ...CompositeOption) *CompositeCommand {
	c := &CompositeCommand{
		canExecuteChanged: signal.New[struct{}](),
		logger:            slog.Default(),
		present:           mapset.NewThreadUnsafeSet[Command](),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Register appends cmd to the member registry.
// Fails with ErrNilCommand, ErrSelfRegistration, or ErrAlreadyRegistered;
// all checks precede mutation, so a failed call leaves the registry and
// the composite's signal untouched. On success the composite subscribes
// to the member's enablement-changed signal (and, in activity-monitoring
// mode, to its active-changed signal when the member is ActiveAware) and
// fires its own enablement-changed signal exactly once: membership alone
// can change aggregate enablement.
func (c *CompositeCommand) Register(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if cc, ok := cmd.(*CompositeCommand); ok && cc == c {
		return ErrSelfRegistration
	}

	m := &member{cmd: cmd}
	if c.monitorActivity {
		if aware, ok := cmd.(ActiveAware); ok {
			m.activeAware = aware
		}
	}

	// Subscriptions attach before insertion so a member visible in the
	// registry always has them; a concurrent duplicate loses the race
	// below and detaches again.
	m.enablementSub = cmd.CanExecuteChanged().Subscribe(func(struct{}) {
		c.canExecuteChanged.Notify(struct{}{})
	})
	if m.activeAware != nil {
		m.activeSub = m.activeAware.ActiveChanged().Subscribe(func(bool) {
			c.canExecuteChanged.Notify(struct{}{})
		})
	}

	c.mu.Lock()
	if c.present.Contains(cmd) {
		c.mu.Unlock()
		c.detach(m)
		return ErrAlreadyRegistered
	}
	c.present.Add(cmd)
	c.members = append(c.members, m)
	total := len(c.members)
	c.mu.Unlock()

	c.logger.Debug("command registered", slog.Int("members", total))
	c.canExecuteChanged.Notify(struct{}{})

	return nil
}

// Unregister removes cmd from the member registry and detaches the
// subscriptions made at registration. Fails with ErrNilCommand; a command
// that is not registered is a no-op, not an error, and fires nothing.
func (c *CompositeCommand) Unregister(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}

	c.mu.Lock()
	if !c.present.Contains(cmd) {
		c.mu.Unlock()
		return nil
	}
	c.present.Remove(cmd)

	var removed *member
	for i, m := range c.members {
		if m.cmd == cmd {
			removed = m
			c.members = append(c.members[:i], c.members[i+1:]...)
			break
		}
	}
	total := len(c.members)
	c.mu.Unlock()

	c.detach(removed)

	c.logger.Debug("command unregistered", slog.Int("members", total))
	c.canExecuteChanged.Notify(struct{}{})

	return nil
}

// CanExecute reports whether every eligible member can execute, over a
// snapshot taken at call start. Short-circuits to false on the first
// disqualifying member. Zero eligible members means false: an empty or
// fully inactive composite cannot execute.
func (c *CompositeCommand) CanExecute(param any) bool {
	eligible := 0
	for _, m := range c.snapshot() {
		if !c.shouldExecute(m) {
			continue
		}
		eligible++
		if !m.cmd.CanExecute(param) {
			return false
		}
	}
	return eligible > 0
}

// Execute runs every eligible member exactly once, sequentially, in
// registration order, over a snapshot taken at call start. The fan-out is
// best effort: a member failure does not stop the remaining snapshotted
// members, and all member errors are returned aggregated via errors.Join.
func (c *CompositeCommand) Execute(ctx context.Context, param any) error {
	snapshot := c.snapshot()

	var errs []error
	executed := 0
	for i, m := range snapshot {
		if !c.shouldExecute(m) {
			continue
		}
		executed++
		if err := m.cmd.Execute(ctx, param); err != nil {
			errs = append(errs, fmt.Errorf("member %d failed: %w", i, err))
		}
	}

	c.logger.Debug("composite executed",
		slog.Int("eligible", executed),
		slog.Int("members", len(snapshot)),
		slog.Int("failures", len(errs)),
	)

	return errors.Join(errs...)
}

// CanExecuteChanged returns the composite's enablement-changed signal.
// It re-fires whenever a member fires its own, on membership changes, and
// (in activity-monitoring mode) on member activity changes. Aggregate
// enablement is never cached; observers re-query CanExecute on demand.
func (c *CompositeCommand) CanExecuteChanged() *signal.Signal[struct{}] {
	return c.canExecuteChanged
}

// Members returns a point-in-time snapshot of the registered commands in
// registration order.
func (c *CompositeCommand) Members() []Command {
	snapshot := c.snapshot()
	out := make([]Command, len(snapshot))
	for i, m := range snapshot {
		out[i] = m.cmd
	}
	return out
}

// snapshot copies the registry under the lock. Lock hold time is bounded
// by the copy; member calls never run under it.
func (c *CompositeCommand) snapshot() []*member {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]*member, len(c.members))
	copy(snapshot, c.members)
	return snapshot
}

// shouldExecute reports member eligibility: always true in default mode;
// in activity-monitoring mode, the member's active flag when it is
// ActiveAware, true otherwise.
func (c *CompositeCommand) shouldExecute(m *member) bool {
	if !c.monitorActivity || m.activeAware == nil {
		return true
	}
	return m.activeAware.IsActive()
}

// detach removes the subscriptions the composite installed on a member.
func (c *CompositeCommand) detach(m *member) {
	if m == nil {
		return
	}
	m.cmd.CanExecuteChanged().Unsubscribe(m.enablementSub)
	if m.activeAware != nil {
		m.activeAware.ActiveChanged().Unsubscribe(m.activeSub)
	}
}
