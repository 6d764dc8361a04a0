package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone[T any](t *testing.T, task *Task[T]) {
	t.Helper()
	require.Eventually(t, task.Done, time.Second, time.Millisecond)
}

func TestSpawn_Result(t *testing.T) {
	r := NewRunner(context.Background())
	defer r.Close()

	task := Spawn(r, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	waitDone(t, task)

	v, err := task.Result()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSpawn_NotDoneWhileRunning(t *testing.T) {
	r := NewRunner(context.Background())
	defer r.Close()

	release := make(chan struct{})
	task := Spawn(r, func(ctx context.Context) (string, error) {
		<-release
		return "stage", nil
	})

	assert.False(t, task.Done())
	_, err := task.Result()
	assert.ErrorIs(t, err, ErrNotDone)
	assert.Equal(t, int64(1), r.Active())

	close(release)
	waitDone(t, task)
	assert.Eventually(t, func() bool { return r.Active() == 0 }, time.Second, time.Millisecond)
}

func TestSpawn_Error(t *testing.T) {
	r := NewRunner(context.Background())
	defer r.Close()

	boom := errors.New("boom")
	task := Spawn(r, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	waitDone(t, task)

	_, err := task.Result()
	assert.ErrorIs(t, err, boom)
}

func TestSpawn_PanicIsRecovered(t *testing.T) {
	r := NewRunner(context.Background())
	defer r.Close()

	task := Spawn(r, func(ctx context.Context) (int, error) {
		panic("bad stage data")
	})
	waitDone(t, task)

	_, err := task.Result()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad stage data")
}

func TestTask_Cancel(t *testing.T) {
	r := NewRunner(context.Background())
	defer r.Close()

	task := Spawn(r, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	task.Cancel()
	waitDone(t, task)

	_, err := task.Result()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_CloseCancelsAndWaits(t *testing.T) {
	r := NewRunner(context.Background())

	task := Spawn(r, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	r.Close()

	assert.True(t, task.Done(), "Close should wait for running tasks")
	assert.Equal(t, int64(0), r.Active())

	late := Spawn(r, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	assert.True(t, late.Done())
	_, err := late.Result()
	assert.ErrorIs(t, err, ErrClosed)

	assert.NotPanics(t, r.Close, "Close is idempotent")
}

func TestTask_Wait(t *testing.T) {
	r := NewRunner(context.Background())
	defer r.Close()

	release := make(chan struct{})
	task := Spawn(r, func(ctx context.Context) (int, error) {
		<-release
		return 7, nil
	})

	short, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := task.Wait(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	v, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.True(t, task.Done())

	var idle Task[int]
	_, err = idle.Wait(context.Background())
	assert.ErrorIs(t, err, ErrNotDone, "a task that was never spawned does not block")
}
