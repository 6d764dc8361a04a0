// Package task runs background work off the game loop.
//
// Scenes spawn a task during Update and poll Done on later ticks; the result
// is read on the game loop goroutine, so scene state is never touched from a
// worker.
package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotDone is returned by Result while the task is still running
	ErrNotDone = errors.New("task: not done")
	// ErrClosed is the result of tasks spawned on a closed runner
	ErrClosed = errors.New("task: runner closed")
)

// Task is the handle of one unit of background work
type Task[T any] struct {
	done     atomic.Bool
	finished chan struct{}
	result   T
	err      error
	cancel   context.CancelFunc
}

// Done reports whether the work has finished
func (t *Task[T]) Done() bool {
	return t.done.Load()
}

// Result returns the value and error of a finished task,
// or ErrNotDone if it is still running
func (t *Task[T]) Result() (T, error) {
	if !t.done.Load() {
		var zero T
		return zero, ErrNotDone
	}
	return t.result, t.err
}

// Wait blocks until the task has finished or ctx is done. Scenes use it when
// the result is due on a given tick and must not arrive later.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	if t.finished == nil {
		return t.Result()
	}
	select {
	case <-t.finished:
		return t.result, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Cancel cancels the context passed to the work function
func (t *Task[T]) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

func (t *Task[T]) finish(v T, err error) {
	t.result = v
	t.err = err
	t.done.Store(true)
	if t.finished != nil {
		close(t.finished)
	}
}

// Runner owns the lifetime of spawned tasks
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	active atomic.Int64
	closed atomic.Bool
	logger zerolog.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the logger used for task failures
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner whose tasks are cancelled when parent is done
// or when Close is called
func NewRunner(parent context.Context, opts ...Option) *Runner {
	ctx, cancel := context.WithCancel(parent)
	r := &Runner{
		ctx:    ctx,
		cancel: cancel,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Spawn starts fn on its own goroutine.
// A panic inside fn is recovered and reported as the task's error.
func Spawn[T any](r *Runner, fn func(ctx context.Context) (T, error)) *Task[T] {
	t := &Task[T]{finished: make(chan struct{})}
	if r.closed.Load() {
		var zero T
		t.finish(zero, ErrClosed)
		return t
	}

	ctx, cancel := context.WithCancel(r.ctx)
	t.cancel = cancel
	r.active.Inc()

	r.group.Go(func() error {
		defer r.active.Dec()
		defer cancel()

		var (
			v   T
			err error
		)
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("task: panic: %v", rec)
				}
			}()
			v, err = fn(ctx)
		}()

		if err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Warn().Err(err).Msg("background task failed")
		}
		t.finish(v, err)
		return nil
	})

	return t
}

// Active returns the number of tasks still running
func (r *Runner) Active() int64 {
	return r.active.Load()
}

// Close cancels all running tasks and waits for them to return
func (r *Runner) Close() {
	if r.closed.Swap(true) {
		return
	}
	r.cancel()
	_ = r.group.Wait()
}
