// Package task runs driftwall's long-lived services as one supervised
// group. The first real failure cancels the rest; a plain context
// cancellation counts as a clean stop.
package task

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/logging"
)

// Runner supervises a group of named tasks.
type Runner struct {
	pool *pool.ContextPool
	log  *logging.Logger
}

// NewRunner creates a runner whose tasks stop when ctx is cancelled or
// when any task returns a real error.
func NewRunner(ctx context.Context, log *logging.Logger) *Runner {
	return &Runner{
		pool: pool.New().WithContext(ctx).WithCancelOnError(),
		log:  log,
	}
}

// Go starts a named task.
func (r *Runner) Go(name string, fn func(context.Context) error) {
	r.pool.Go(func(ctx context.Context) error {
		r.log.Info("task started", "task", name)
		err := fn(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			r.log.Error("task failed", "task", name, "error", err)
			return err
		}
		r.log.Info("task stopped", "task", name)
		return nil
	})
}

// Wait blocks until every task has returned. It reports the first real
// failure; cancellation alone returns nil.
func (r *Runner) Wait() error {
	err := r.pool.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
