package observe

import (
	"fmt"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/dmitrymomot/bindkit/core/signal"
)

// Observer multiplexes property-change notifications for a single owner,
// typically one command instance. No matter how many properties are
// observed through it, it installs at most one PropertyChanged subscription
// per distinct notifier target; a shared handler filters incoming names
// against the set observed on that target.
//
// Targets that do not implement Notifier are accepted: their names are
// registered (and still guarded against duplicates) but no subscription is
// installed and no automatic re-evaluation occurs.
type Observer struct {
	mu       sync.Mutex
	onChange func(name string)
	names    mapset.Set[string]
	targets  map[Notifier]*targetSubscription
}

// targetSubscription tracks the single subscription made on one notifier
// and the property names it must filter for.
type targetSubscription struct {
	sub   signal.Subscription
	names mapset.Set[string]
}

// NewObserver creates an observer that invokes onChange with the property
// name whenever a matching change notification arrives.
// Panics if onChange is nil: an observer without a callback is useless.
func NewObserver(onChange func(name string)) *Observer {
	if onChange == nil {
		panic("observe: onChange callback cannot be nil")
	}
	return &Observer{
		onChange: onChange,
		names:    mapset.NewThreadUnsafeSet[string](),
		targets:  make(map[Notifier]*targetSubscription),
	}
}

// Observe registers the property in the observed set and, when the target
// implements Notifier, wires the change-notification handler.
// Observing the same property name twice fails with ErrDuplicateProperty
// and leaves the observed set unchanged.
func (o *Observer) Observe(p Property) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.names.Contains(p.Name()) {
		return fmt.Errorf("%w: %s", ErrDuplicateProperty, p.Name())
	}
	o.names.Add(p.Name())

	notifier, ok := p.Target().(Notifier)
	if !ok {
		// Immutable target for observation purposes: name extraction only.
		return nil
	}

	ts, exists := o.targets[notifier]
	if !exists {
		ts = &targetSubscription{names: mapset.NewThreadUnsafeSet[string]()}
		ts.sub = notifier.PropertyChanged().Subscribe(func(name string) {
			o.dispatch(ts, name)
		})
		o.targets[notifier] = ts
	}
	ts.names.Add(p.Name())

	return nil
}

// Observes reports whether the property name is registered.
func (o *Observer) Observes(name string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.names.Contains(name)
}

// Names returns a sorted copy of the observed property names.
func (o *Observer) Names() []string {
	o.mu.Lock()
	names := o.names.ToSlice()
	o.mu.Unlock()

	sort.Strings(names)
	return names
}

// Close detaches every subscription the observer installed and clears its
// state. Idempotent.
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for notifier, ts := range o.targets {
		notifier.PropertyChanged().Unsubscribe(ts.sub)
	}
	o.targets = make(map[Notifier]*targetSubscription)
	o.names = mapset.NewThreadUnsafeSet[string]()
}

// dispatch filters one incoming change notification by name and forwards
// matches to the owner's callback. The lock is released before the callback
// runs so the owner may re-enter the observer.
func (o *Observer) dispatch(ts *targetSubscription, name string) {
	o.mu.Lock()
	matched := ts.names.Contains(name)
	o.mu.Unlock()

	if matched {
		o.onChange(name)
	}
}
