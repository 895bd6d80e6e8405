// internal/pkg/tasks/runner_test.go
package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func newTestRunner() (*Runner, *logrustest.Hook) {
	log, hook := logrustest.NewNullLogger()
	return NewRunner(log.WithField("component", "tasks")), hook
}

func TestDispatchRunsTask(t *testing.T) {
	runner, _ := newTestRunner()

	var ran atomic.Bool
	runner.Dispatch("noop", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	runner.Wait()

	assert.True(t, ran.Load())
}

func TestDispatchLogsFailure(t *testing.T) {
	runner, hook := newTestRunner()

	runner.Dispatch("sync", func(ctx context.Context) error {
		return errors.New("connection refused")
	})
	runner.Wait()

	if assert.Len(t, hook.Entries, 1) {
		entry := hook.Entries[0]
		assert.Equal(t, "background task failed", entry.Message)
		assert.Equal(t, "sync", entry.Data["task"])
		assert.Equal(t, "connection refused", entry.Data["error"])
	}
}

func TestDispatchSuccessLogsNothing(t *testing.T) {
	runner, hook := newTestRunner()

	runner.Dispatch("sync", func(ctx context.Context) error {
		return nil
	})
	runner.Wait()

	assert.Empty(t, hook.Entries)
}

func TestWaitCoversAllDispatched(t *testing.T) {
	runner, _ := newTestRunner()

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		runner.Dispatch("noop", func(ctx context.Context) error {
			count.Add(1)
			return nil
		})
	}
	runner.Wait()

	assert.Equal(t, int32(10), count.Load())
}
