package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer(t *testing.T) {
	t.Run("coalesces rapid triggers", func(t *testing.T) {
		d := NewDebouncer(50 * time.Millisecond)
		var calls atomic.Int32

		for i := 0; i < 10; i++ {
			d.Trigger(func() { calls.Add(1) })
			time.Sleep(5 * time.Millisecond)
		}

		assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("cancel", func(t *testing.T) {
		d := NewDebouncer(50 * time.Millisecond)
		var called atomic.Bool

		d.Trigger(func() { called.Store(true) })
		d.Cancel()

		time.Sleep(100 * time.Millisecond)
		assert.False(t, called.Load())
	})

	t.Run("default duration", func(t *testing.T) {
		assert.Equal(t, DefaultDebounceDuration, NewDebouncer(0).Duration())
	})
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: [a]"), 0644))

	var changes atomic.Int32
	var removed atomic.Bool
	w, err := New(path,
		WithDebounceDuration(20*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
		WithOnError(func(err error) {
			if err == ErrFileRemoved {
				removed.Store(true)
			}
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()
	assert.True(t, w.IsStarted())
	assert.ErrorIs(t, w.Start(context.Background()), ErrAlreadyStarted)

	t.Run("other files are ignored", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
		time.Sleep(100 * time.Millisecond)
		assert.Zero(t, changes.Load())
	})

	t.Run("write is reported", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("columns: [b]"), 0644))

		select {
		case <-w.Changed():
		case <-time.After(2 * time.Second):
			t.Fatal("no change reported")
		}
		assert.GreaterOrEqual(t, changes.Load(), int32(1))
	})

	t.Run("remove is an error", func(t *testing.T) {
		require.NoError(t, os.Remove(path))
		assert.Eventually(t, removed.Load, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("stop", func(t *testing.T) {
		w.Stop()
		assert.False(t, w.IsStarted())
		w.Stop()
	})
}

func TestWatcherStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	var changes atomic.Int32
	w, err := New(path, WithDebounceDuration(10*time.Millisecond), WithOnChange(func() { changes.Add(1) }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	defer w.Stop()
	cancel()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, changes.Load())
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "data.yaml"))
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
	assert.False(t, w.IsStarted())
}
