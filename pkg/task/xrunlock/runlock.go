package xrunlock

import (
	"context"
	"errors"

	"github.com/omeyang/taskx/pkg/util/xlockreg"
)

var (
	// ErrNilRegistry 表示锁注册表参数为 nil。
	ErrNilRegistry = errors.New("xrunlock: nil registry")

	// ErrNilFunc 表示工作函数参数为 nil。
	ErrNilFunc = errors.New("xrunlock: nil func")
)

// Run 获取 key 对应的锁，执行 fn，并在所有退出路径上释放锁。
//
// 通过 [xlockreg.Provider] 的 Acquire 原子地登记并获取锁：从发放
// 到持有，key 的条目始终忙碌，淘汰不会在中途换出锁实例。
// 加锁等待期间 ctx 取消时返回 ctx.Err()（未持锁，无需释放）。
// fn 的返回值和错误原样透传；fn panic 时先释放锁再重新 panic。
// ctx 不得为 nil，否则 panic（与 xlockreg.Registry.Acquire 一致）。
func Run[K comparable, T any](ctx context.Context, reg xlockreg.Provider[K], key K, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if reg == nil {
		return zero, ErrNilRegistry
	}
	if fn == nil {
		return zero, ErrNilFunc
	}

	mu, err := reg.Acquire(ctx, key)
	if err != nil {
		return zero, err
	}
	defer mu.Unlock() //nolint:errcheck // 持有者释放不会失败

	return fn(ctx)
}

// Do 是无返回值版本的 [Run]。
func Do[K comparable](ctx context.Context, reg xlockreg.Provider[K], key K, fn func(ctx context.Context) error) error {
	if fn == nil {
		return ErrNilFunc
	}
	_, err := Run(ctx, reg, key, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
