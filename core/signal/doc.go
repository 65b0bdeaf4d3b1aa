// Package signal provides a small generic observer-list primitive used
// throughout bindkit for change notifications.
//
// A Signal[T] is owned by exactly one source (a command, a viewmodel, a
// composite) and holds an ordered list of subscriber callbacks. Firing a
// signal iterates a snapshot of that list, so subscribers added or removed
// during delivery only affect later notifications.
//
// # Delivery Semantics
//
//   - Synchronous: callbacks run on the goroutine that calls Notify.
//   - Ordered: callbacks run in subscription order.
//   - Snapshot-based: the subscriber list is copied under the lock, and the
//     lock is released before the first callback runs. Re-entrant calls
//     (a callback subscribing, unsubscribing, or notifying the same signal)
//     are safe.
//
// No queueing or batching is performed: one Notify produces exactly one
// callback invocation per subscriber. If delivery must hop to a UI thread,
// that is the subscriber's concern, not the signal's.
//
// # Usage
//
//	enablement := signal.New[struct{}]()
//
//	sub := enablement.Subscribe(func(struct{}) {
//	    refreshButtons()
//	})
//	defer enablement.Unsubscribe(sub)
//
//	enablement.Notify(struct{}{})
//
// # Thread Safety
//
// All methods are safe for concurrent use. The internal mutex guards only
// the subscriber list; it is never held while subscriber callbacks execute.
package signal
