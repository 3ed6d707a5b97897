package xlockreg

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// Option 定义 Registry 可选配置函数类型。
type Option func(*options)

type options struct {
	logger *slog.Logger
	meter  metric.Meter
}

func defaultOptions() options {
	return options{}
}

// WithLogger 设置日志记录器，用于记录淘汰事件（Debug 级别）。
// 默认不记录。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMeter 注入 OpenTelemetry Meter，启用指标采集：
//
//   - taskx.lockreg.evictions（Counter）：累计淘汰条目数
//   - taskx.lockreg.entries（UpDownCounter）：当前跟踪的 key 数
//
// 默认不采集指标（零开销）。传入 nil 将被忽略。
func WithMeter(meter metric.Meter) Option {
	return func(o *options) {
		if meter != nil {
			o.meter = meter
		}
	}
}
