package signal

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription identifies one subscriber on one signal.
// It is returned by Subscribe and passed to Unsubscribe.
type Subscription struct {
	id uuid.UUID
}

// Valid reports whether the subscription was actually installed.
// Subscribing a nil handler yields an invalid (zero) subscription.
func (s Subscription) Valid() bool {
	return s.id != uuid.Nil
}

// Signal is an ordered list of subscriber callbacks owned by a single
// signal source. It is the delivery primitive behind enablement-changed,
// active-changed, and property-changed notifications.
//
// Delivery is synchronous on the notifying goroutine, in subscription
// order, over a snapshot of the subscriber list. The internal lock is
// never held during a callback, so subscribers may re-enter the signal
// (subscribe, unsubscribe, or notify) without deadlocking.
//
// Example:
//
//	changed := signal.New[string]()
//	sub := changed.Subscribe(func(name string) {
//	    fmt.Println("changed:", name)
//	})
//	changed.Notify("Email")
//	changed.Unsubscribe(sub)
type Signal[T any] struct {
	mu   sync.Mutex
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id uuid.UUID
	fn func(T)
}

// New creates an empty signal.
func New[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Subscribe appends fn to the subscriber list and returns a token for
// later removal. A nil fn installs nothing and returns an invalid
// subscription.
func (s *Signal[T]) Subscribe(fn func(T)) Subscription {
	if fn == nil {
		return Subscription{}
	}

	sub := subscriber[T]{id: uuid.New(), fn: fn}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	return Subscription{id: sub.id}
}

// Unsubscribe removes the subscriber identified by sub.
// Returns false when the token is invalid or already removed.
func (s *Signal[T]) Unsubscribe(sub Subscription) bool {
	if !sub.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.subs {
		if existing.id == sub.id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Notify delivers v to every subscriber synchronously, in subscription
// order. The subscriber list is snapshotted under the lock and the lock
// is released before any callback runs; mutations made during delivery
// take effect for later notifications only.
func (s *Signal[T]) Notify(v T) {
	s.mu.Lock()
	snapshot := make([]subscriber[T], len(s.subs))
	copy(snapshot, s.subs)
	s.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn(v)
	}
}

// Len returns the current number of subscribers.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
