package xlockreg

import (
	"context"
	"sync/atomic"
)

// Mutex 是 Registry 分发的按 key 互斥锁。
// 由 Registry 创建，调用方不要自行构造（零值不可用）。
//
// 内部用 size=1 的 channel 做互斥量：
//   - 发送成功 = 获取锁
//   - 发送阻塞 = 锁被占用
//   - 接收 = 释放锁
//
// refs 记录引用数（持有者 + 等待者），供 Registry 的淘汰扫描判定忙碌。
// 计数在进入等待前递增、获取失败时递减，因此淘汰扫描看到 refs == 0
// 时可以确定没有任何 goroutine 正在使用或等待此锁。
type Mutex struct {
	ch   chan struct{}
	refs atomic.Int32
}

func newMutex() *Mutex {
	return &Mutex{ch: make(chan struct{}, 1)}
}

// Lock 阻塞式获取锁。
// 支持 ctx 超时/取消，取消时返回 ctx.Err() 并注销等待者。
// ctx 不得为 nil，否则 panic。
//
// 锁非可重入，同一 goroutine 重复 Lock 同一 Mutex 会死锁。
// 建议始终使用带 deadline 的 context 以防止编程错误导致的永久阻塞。
func (m *Mutex) Lock(ctx context.Context) error {
	if ctx == nil {
		panic("xlockreg: nil Context")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.refs.Add(1)
	return m.lockRegistered(ctx)
}

// lockRegistered 完成一次已计入 refs 的加锁尝试。
// 成功时 +1 转为持有者计数，失败时注销等待者。
func (m *Mutex) lockRegistered(ctx context.Context) error {
	select {
	case m.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		m.refs.Add(-1)
		return ctx.Err()
	}
}

// TryLock 非阻塞获取锁。
// 返回 true 表示获取成功，false 表示锁被占用。
func (m *Mutex) TryLock() bool {
	m.refs.Add(1)
	select {
	case m.ch <- struct{}{}:
		return true
	default:
		m.refs.Add(-1)
		return false
	}
}

// Unlock 释放锁。
// 锁未被持有时返回 [ErrNotLocked]。
// Unlock 只能由当前持有者调用。
func (m *Mutex) Unlock() error {
	select {
	case <-m.ch:
		m.refs.Add(-1)
		return nil
	default:
		return ErrNotLocked
	}
}

// Busy 报告锁是否正在使用（被持有或有等待者）。
// 忙碌的锁不会被 Registry 淘汰。
func (m *Mutex) Busy() bool {
	return m.refs.Load() > 0
}
