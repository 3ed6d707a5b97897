package xspawn

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Spawner 启动受监督的后台任务。
// 必须通过 [New] 创建，零值不可用。
// 所有方法都是并发安全的。
type Spawner struct {
	opts     options
	metrics  *spawnMetrics
	wg       sync.WaitGroup
	inflight atomic.Int64
}

// New 创建 Spawner。
// 指标 instrument 创建失败时返回错误（仅在传入 WithMeter 时可能发生）。
func New(opts ...Option) (*Spawner, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	m, err := newSpawnMetrics(o.meter)
	if err != nil {
		return nil, err
	}

	return &Spawner{opts: o, metrics: m}, nil
}

// Handle 表示一个已启动的后台任务。
// 调用方不需要持有它——任务独立运行至结束。
type Handle struct {
	name   string
	done   chan struct{}
	cancel context.CancelFunc
	err    error // 在 close(done) 之前写入，之后只读
}

// Name 返回任务名称（显式指定的或自动生成的）。
func (h *Handle) Name() string {
	return h.name
}

// Done 返回任务结束时关闭的 channel。
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err 返回任务的最终错误。
// 任务尚未结束时返回 nil；panic 终止的任务返回 [PanicError]。
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Cancel 取消任务的派生 context。
// 任务是否响应取决于其自身是否监听 ctx.Done()。
func (h *Handle) Cancel() {
	h.cancel()
}

// Wait 阻塞直到任务结束或 ctx 取消，返回任务的最终错误。
// ctx 取消时返回 ctx.Err()（任务继续在后台运行）。
func (h *Handle) Wait(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Spawn 启动 fn 为独立的后台任务，立即返回。
//
// fn 在派生自 ctx 的 context 上运行；调用方取消 ctx 或 Handle.Cancel
// 都会传播给 fn。fn 的失败（非 nil 且非 context.Canceled 的返回值，
// 或 panic）被记录到日志后丢弃，绝不传播回调用方。
//
// nil ctx 归一化为 context.Background()；nil fn 产生一个立即以
// [ErrNilFunc] 失败的任务（按失败上报），而非 panic。
func (s *Spawner) Spawn(ctx context.Context, fn func(ctx context.Context) error, opts ...SpawnOption) *Handle {
	if ctx == nil {
		ctx = context.Background()
	}

	var so spawnOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&so)
		}
	}
	name := so.name
	if name == "" {
		name = "task-" + uuid.NewString()
	}

	taskCtx, cancel := context.WithCancel(ctx)
	h := &Handle{
		name:   name,
		done:   make(chan struct{}),
		cancel: cancel,
	}

	s.wg.Add(1)
	s.inflight.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.inflight.Add(-1)
		defer cancel()

		h.err = s.runTask(taskCtx, fn)
		s.observe(name, h.err)
		close(h.done)
	}()
	return h
}

// runTask 执行 fn 并把 panic 转换为 *PanicError。
func (s *Spawner) runTask(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	if fn == nil {
		return ErrNilFunc
	}
	return fn(ctx)
}

// observe 是任务结果的终点消费者：失败记错误日志，取消只记 Debug。
func (s *Spawner) observe(name string, err error) {
	switch {
	case err == nil:
		s.opts.logger.Debug("task completed",
			slog.String("spawner", s.opts.name),
			slog.String("task", name),
		)
	case errors.Is(err, context.Canceled):
		// 主动取消不是失败
		s.opts.logger.Debug("task cancelled",
			slog.String("spawner", s.opts.name),
			slog.String("task", name),
		)
	default:
		var pe *PanicError
		if errors.As(err, &pe) {
			s.metrics.addPanic(context.Background())
			s.opts.logger.Error("task panicked",
				slog.String("spawner", s.opts.name),
				slog.String("task", name),
				slog.Any("panic", pe.Value),
				slog.String("stack", string(pe.Stack)),
			)
		} else {
			s.opts.logger.Error("task failed",
				slog.String("spawner", s.opts.name),
				slog.String("task", name),
				slog.Any("error", err),
			)
		}
		s.metrics.addFailure(context.Background())
	}
}

// Len 返回当前在途任务数（瞬时快照）。
func (s *Spawner) Len() int {
	return int(s.inflight.Load())
}

// Shutdown 等待所有在途任务结束。
// ctx 到期时返回 ctx 错误，残留任务继续在后台运行直至结束。
// 不取消任何任务；需要取消时先取消它们的父 context。
func (s *Spawner) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
