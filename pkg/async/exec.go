package async

import (
	"context"
	"time"

	"github.com/dmitrymomot/bindkit/core/command"
)

// Future represents one in-flight command execution.
type Future struct {
	err  error
	done chan struct{}
}

// Await blocks until the execution completes and returns its error.
func (f *Future) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout waits for the execution to complete with a timeout.
// Returns the execution error on completion, ErrTimeout otherwise.
// The execution itself keeps running; only the wait is bounded.
func (f *Future) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-f.done:
		return f.err
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// IsComplete checks completion without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Execute runs the command's Execute on its own goroutine and returns a
// future resolving with the command's error. The command's enablement is
// not consulted: like a direct Execute call, gating on CanExecute is the
// invoker's job.
//
// A context cancelled before execution starts resolves the future with the
// context's error without invoking the command.
//
// Example:
//
//	future := async.Execute(ctx, exportCmd, report)
//	// ... keep the UI responsive ...
//	if err := future.Await(); err != nil {
//	    return err
//	}
func Execute(ctx context.Context, cmd command.Command, param any) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents goroutine leak when context is pre-canceled
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.err = cmd.Execute(ctx, param)
	}()

	return f
}

// AwaitAll waits for all futures to complete and returns the first error
// encountered in argument order.
func AwaitAll(futures ...*Future) error {
	for _, future := range futures {
		if err := future.Await(); err != nil {
			return err
		}
	}
	return nil
}

// AwaitAny waits for any of the futures to complete and returns the index
// of the completed future and its error.
// Note: This function spawns one goroutine per future. All goroutines
// complete naturally when their respective futures finish.
func AwaitAny(futures ...*Future) (int, error) {
	if len(futures) == 0 {
		return -1, ErrNoFutures
	}

	done := make(chan struct {
		index int
		err   error
	})

	for i, future := range futures {
		go func(index int, f *Future) {
			err := f.Await()
			select {
			case done <- struct {
				index int
				err   error
			}{index, err}:
			default:
				// Prevents race condition where multiple futures complete simultaneously
			}
		}(i, future)
	}

	res := <-done
	return res.index, res.err
}
