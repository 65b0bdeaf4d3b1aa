// Package async provides a future-based adapter for running commands off
// the calling goroutine.
//
// The core command contract is synchronous: Execute blocks its caller. When
// an action is long-running and the caller (typically a UI loop) must stay
// responsive, Execute here moves the call onto its own goroutine and hands
// back a Future to collect the outcome.
//
// # Usage
//
//	future := async.Execute(ctx, exportCmd, report)
//
//	// Do other work...
//
//	if err := future.Await(); err != nil {
//	    log.Printf("export failed: %v", err)
//	}
//
// Using timeout:
//
//	err := future.AwaitWithTimeout(5 * time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//	    log.Println("still running, giving up on the wait")
//	}
//
// # Coordination Utilities
//
// AwaitAll waits for a batch to finish and surfaces the first failure:
//
//	err := async.AwaitAll(
//	    async.Execute(ctx, saveLeft, nil),
//	    async.Execute(ctx, saveRight, nil),
//	)
//
// AwaitAny returns as soon as any future completes:
//
//	index, err := async.AwaitAny(futures...)
//
// # Semantics
//
//   - Enablement is not consulted: like a direct Execute call, gating on
//     CanExecute stays the invoker's job.
//   - A context cancelled before execution starts resolves the future with
//     the context's error without invoking the command.
//   - AwaitWithTimeout bounds the wait, not the execution; the command keeps
//     running and the future stays awaitable.
//   - Exactly one goroutine is spawned per Execute call.
//
// Signal delivery triggered by the command (enablement-changed and friends)
// happens on the executing goroutine, per the core's synchronous-delivery
// contract. Marshaling back to a UI thread is the application's concern.
package async
