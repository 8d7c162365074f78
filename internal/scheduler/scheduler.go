// Package scheduler runs recurring background work behind an explicit,
// cancellable handle.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// Task is a handle to a running periodic job.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every runs fn every interval until the returned task is stopped. The
// first run happens after one full interval. fn receives a context that
// is cancelled when the task stops, so long-running work can bail out.
func Every(interval time.Duration, fn func(ctx context.Context)) *Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()

	return t
}

// Stop cancels the task and waits for the loop to exit. Calling Stop more
// than once is safe; every call blocks until shutdown is complete.
func (t *Task) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}
