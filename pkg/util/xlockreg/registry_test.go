package xlockreg

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewInvalidCapacity(t *testing.T) {
	_, err := New[string](0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = New[string](-1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestGetOrCreateIdentity(t *testing.T) {
	r, err := New[int](10)
	require.NoError(t, err)

	mu1 := r.GetOrCreate(1)
	mu2 := r.GetOrCreate(1)
	assert.Same(t, mu1, mu2)

	mu3 := r.GetOrCreate(2)
	assert.NotSame(t, mu1, mu3)
}

func TestCapacityBound(t *testing.T) {
	r, err := New[int](3)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		r.GetOrCreate(i)
		assert.LessOrEqual(t, r.Len(), 3)
	}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 3, r.Capacity())
}

func TestLRUEvictionOrder(t *testing.T) {
	r, err := New[string](2)
	require.NoError(t, err)

	// 访问顺序 A, B, A, C：第三次访问刷新了 A，插入 C 时应淘汰 B
	r.GetOrCreate("A")
	r.GetOrCreate("B")
	r.GetOrCreate("A")
	r.GetOrCreate("C")

	assert.True(t, r.Contains("A"))
	assert.False(t, r.Contains("B"))
	assert.True(t, r.Contains("C"))
}

func TestKeysOrder(t *testing.T) {
	r, err := New[string](3)
	require.NoError(t, err)

	r.GetOrCreate("a")
	r.GetOrCreate("b")
	r.GetOrCreate("c")
	r.GetOrCreate("a") // 刷新 a 为最近使用

	// Keys 按最久未使用到最近使用排序
	assert.Equal(t, []string{"b", "c", "a"}, r.Keys())
}

func TestEvictionSkipsHeldLock(t *testing.T) {
	r, err := New[string](2)
	require.NoError(t, err)

	muA := r.GetOrCreate("A")
	require.NoError(t, muA.Lock(context.Background()))
	r.GetOrCreate("B")

	// A 是最久未使用但被持有：淘汰应跳过 A 去淘汰 B
	r.GetOrCreate("C")
	assert.True(t, r.Contains("A"))
	assert.False(t, r.Contains("B"))
	assert.True(t, r.Contains("C"))
	assert.Equal(t, 2, r.Len())

	require.NoError(t, muA.Unlock())
}

func TestEvictionSkipsLockWithWaiter(t *testing.T) {
	r, err := New[string](1)
	require.NoError(t, err)

	muA := r.GetOrCreate("A")
	require.NoError(t, muA.Lock(context.Background()))

	// 启动一个等待者
	done := make(chan error, 1)
	go func() {
		err := muA.Lock(context.Background())
		if err == nil {
			err = muA.Unlock()
		}
		done <- err
	}()
	// 等待 goroutine 进入 Lock 的等待计数
	require.Eventually(t, func() bool {
		return muA.refs.Load() >= 2
	}, time.Second, time.Millisecond)

	// A 被持有且有等待者：插入 B 不能淘汰 A
	r.GetOrCreate("B")
	assert.True(t, r.Contains("A"))
	assert.Equal(t, 2, r.Len())

	require.NoError(t, muA.Unlock())
	require.NoError(t, <-done)
}

func TestInsertionNotEvictedWhenAllBusy(t *testing.T) {
	r, err := New[string](2)
	require.NoError(t, err)

	muA := r.GetOrCreate("A")
	muB := r.GetOrCreate("B")
	require.NoError(t, muA.Lock(context.Background()))
	require.NoError(t, muB.Lock(context.Background()))

	// 全部忙碌时淘汰扫描不能波及刚插入的条目本身
	muC := r.GetOrCreate("C")
	assert.True(t, r.Contains("C"))
	assert.Equal(t, 3, r.Len())
	assert.Same(t, muC, r.GetOrCreate("C"))

	require.NoError(t, muA.Unlock())
	require.NoError(t, muB.Unlock())
}

func TestTransientOverCapacityWhenAllBusy(t *testing.T) {
	r, err := New[string](2)
	require.NoError(t, err)

	muA := r.GetOrCreate("A")
	muB := r.GetOrCreate("B")
	require.NoError(t, muA.Lock(context.Background()))
	require.NoError(t, muB.Lock(context.Background()))

	// 所有条目都忙碌：插入新 key 时临时超出容量而非破坏使用中的锁
	r.GetOrCreate("C")
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains("A"))
	assert.True(t, r.Contains("B"))
	assert.True(t, r.Contains("C"))

	// 释放后，下一次插入会把容量收敛回上界
	require.NoError(t, muA.Unlock())
	require.NoError(t, muB.Unlock())
	r.GetOrCreate("D")
	assert.Equal(t, 2, r.Len())
}

func TestEvictionRemovesMinimum(t *testing.T) {
	r, err := New[string](3)
	require.NoError(t, err)

	r.GetOrCreate("A")
	r.GetOrCreate("B")
	r.GetOrCreate("C")
	r.GetOrCreate("D")

	// 常规路径每次插入只淘汰一个条目
	assert.Equal(t, 3, r.Len())
	assert.False(t, r.Contains("A"))
	assert.True(t, r.Contains("B"))
}

func TestEvictedLockStillUsable(t *testing.T) {
	r, err := New[string](1)
	require.NoError(t, err)

	muA := r.GetOrCreate("A")
	r.GetOrCreate("B") // 淘汰 A

	// 已持有引用的调用方仍可正常使用被淘汰的锁
	require.NoError(t, muA.Lock(context.Background()))
	require.NoError(t, muA.Unlock())

	// 但再次 GetOrCreate 返回新实例
	assert.NotSame(t, muA, r.GetOrCreate("A"))
}

func TestConcurrentGetOrCreateSameKey(t *testing.T) {
	r, err := New[string](10)
	require.NoError(t, err)

	const n = 64
	results := make([]*Mutex, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i] = r.GetOrCreate("shared")
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestConcurrentGetOrCreateDistinctKeys(t *testing.T) {
	r, err := New[int](8)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				r.GetOrCreate(i*1000 + j)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// 无持有者时容量上界始终成立
	assert.LessOrEqual(t, r.Len(), 8)
}

func TestConcurrentContention(t *testing.T) {
	r, err := New[string](4)
	require.NoError(t, err)

	mu := r.GetOrCreate("hot")
	counter := 0

	var g errgroup.Group
	const n = 32
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := mu.Lock(context.Background()); err != nil {
				return err
			}
			defer mu.Unlock() //nolint:errcheck // 持有者释放不会失败
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// 互斥成立时不会丢失任何一次更新
	assert.Equal(t, n, counter)
}

func TestAcquireLocksAndReleases(t *testing.T) {
	r, err := New[string](4)
	require.NoError(t, err)

	mu, err := r.Acquire(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, mu.Busy())
	assert.False(t, mu.TryLock())

	require.NoError(t, mu.Unlock())
	assert.False(t, mu.Busy())
}

func TestAcquireCancelledWhileWaiting(t *testing.T) {
	r, err := New[string](4)
	require.NoError(t, err)

	mu, err := r.Acquire(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = r.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// 被取消的等待者已注销，锁只剩原持有者
	assert.Equal(t, int32(1), mu.refs.Load())
	require.NoError(t, mu.Unlock())
	assert.False(t, mu.Busy())
}

func TestAcquireNilContext(t *testing.T) {
	r, err := New[string](4)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "xlockreg: nil Context", func() {
		r.Acquire(nil, "k") //nolint:errcheck,staticcheck // 测试 nil ctx panic 行为
	})
}

func TestAcquirePinsEntryUnderChurn(t *testing.T) {
	r, err := New[string](1)
	require.NoError(t, err)

	mu, err := r.Acquire(context.Background(), "hot")
	require.NoError(t, err)

	// 容量压力下持有中的条目从发放起就不可淘汰
	for i := 0; i < 100; i++ {
		r.GetOrCreate(fmt.Sprintf("churn-%d", i))
	}
	assert.True(t, r.Contains("hot"))
	assert.Same(t, mu, r.GetOrCreate("hot"))

	require.NoError(t, mu.Unlock())
}

func TestNilOptionIgnored(t *testing.T) {
	r, err := New[string](1, nil, WithLogger(nil), WithMeter(nil))
	require.NoError(t, err)
	require.NotNil(t, r.GetOrCreate("a"))
}

func ExampleRegistry_GetOrCreate() {
	reg, err := New[string](100)
	if err != nil {
		panic(err)
	}

	mu := reg.GetOrCreate("item:123")
	if err := mu.Lock(context.Background()); err != nil {
		panic(err)
	}
	fmt.Println("locked item:123")

	if err := mu.Unlock(); err != nil {
		panic(err)
	}
	// Output:
	// locked item:123
}
