package xlockreg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutexLockUnlock(t *testing.T) {
	mu := newMutex()

	require.NoError(t, mu.Lock(context.Background()))
	assert.True(t, mu.Busy())

	require.NoError(t, mu.Unlock())
	assert.False(t, mu.Busy())
}

func TestMutexNilContext(t *testing.T) {
	mu := newMutex()
	assert.PanicsWithValue(t, "xlockreg: nil Context", func() {
		mu.Lock(nil) //nolint:errcheck,staticcheck // 测试 nil ctx panic 行为
	})
}

func TestMutexTryLock(t *testing.T) {
	mu := newMutex()

	assert.True(t, mu.TryLock())
	assert.False(t, mu.TryLock())

	require.NoError(t, mu.Unlock())
	assert.True(t, mu.TryLock())
	require.NoError(t, mu.Unlock())
}

func TestMutexUnlockNotLocked(t *testing.T) {
	mu := newMutex()
	assert.ErrorIs(t, mu.Unlock(), ErrNotLocked)

	require.NoError(t, mu.Lock(context.Background()))
	require.NoError(t, mu.Unlock())
	assert.ErrorIs(t, mu.Unlock(), ErrNotLocked)
}

func TestMutexLockContextCancel(t *testing.T) {
	mu := newMutex()
	require.NoError(t, mu.Lock(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := mu.Lock(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// 取消后等待者已注销，锁仍然只有一个持有者
	assert.Equal(t, int32(1), mu.refs.Load())
	require.NoError(t, mu.Unlock())
	assert.False(t, mu.Busy())
}

func TestMutexLockAlreadyCancelled(t *testing.T) {
	mu := newMutex()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := mu.Lock(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, mu.Busy())
}

func TestMutexHandoffToWaiter(t *testing.T) {
	mu := newMutex()
	require.NoError(t, mu.Lock(context.Background()))

	acquired := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		if err := mu.Lock(context.Background()); err != nil {
			done <- err
			return
		}
		close(acquired)
		<-release
		done <- mu.Unlock()
	}()

	require.Eventually(t, func() bool {
		return mu.refs.Load() >= 2
	}, time.Second, time.Millisecond)

	require.NoError(t, mu.Unlock())
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter did not acquire the lock after unlock")
	}

	assert.True(t, mu.Busy())
	close(release)
	require.NoError(t, <-done)
	assert.False(t, mu.Busy())
}
