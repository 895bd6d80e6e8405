// internal/pkg/tasks/runner.go
package tasks

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Runner executes detached background tasks. Callers never wait for a
// dispatched task and never observe its result; failures go to the log
// and nowhere else. Tasks are not retried and not cancelled when a
// later task supersedes them.
type Runner struct {
	log *logrus.Entry
	wg  sync.WaitGroup
}

// NewRunner creates a task runner that reports failures to the given logger
func NewRunner(log *logrus.Entry) *Runner {
	return &Runner{log: log}
}

// Dispatch runs fn on its own goroutine and returns immediately.
// The task gets a background context: no deadline is imposed here,
// whatever timeout applies comes from the underlying client.
func (r *Runner) Dispatch(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := fn(context.Background()); err != nil {
			r.log.WithFields(logrus.Fields{
				"task":  name,
				"error": err.Error(),
			}).Warn("background task failed")
		}
	}()
}

// Wait blocks until all dispatched tasks have finished. Used during
// graceful shutdown and by tests; regular operations never call it.
func (r *Runner) Wait() {
	r.wg.Wait()
}
