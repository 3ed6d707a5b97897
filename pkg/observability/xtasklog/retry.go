package xtasklog

import (
	"context"

	"github.com/avast/retry-go/v5"
)

// WithRetrySink 把持久化回调包装为带重试的版本。
//
// 默认语义（不包装）是回调第一次失败就向 Log 的调用方传播错误；
// 需要韧性持久化的宿主用此函数显式选择重试。所有尝试都失败时，
// 最后一次的错误传播给调用方（LastErrorOnly）。
//
// 默认策略：3 次尝试、指数退避；可通过 retry-go 选项覆盖：
//
//	sink = xtasklog.WithRetrySink(sink,
//	    retry.Attempts(5),
//	    retry.Delay(100*time.Millisecond),
//	)
//
// sink 为 nil 时返回 nil（New 会照常拒绝）。
func WithRetrySink(sink SinkFunc, opts ...retry.Option) SinkFunc {
	if sink == nil {
		return nil
	}

	base := []retry.Option{
		retry.Attempts(3),
		retry.LastErrorOnly(true),
	}

	return func(ctx context.Context, e Event) error {
		all := make([]retry.Option, 0, len(base)+len(opts)+1)
		all = append(all, base...)
		all = append(all, opts...)
		all = append(all, retry.Context(ctx))
		return retry.New(all...).Do(func() error {
			return sink(ctx, e)
		})
	}
}
