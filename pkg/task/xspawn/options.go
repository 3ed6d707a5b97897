package xspawn

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// Option 定义 Spawner 可选配置函数类型。
type Option func(*options)

type options struct {
	logger *slog.Logger
	name   string
	meter  metric.Meter
}

func defaultOptions() options {
	return options{
		logger: slog.Default(),
		name:   "xspawn",
	}
}

// WithLogger 设置日志记录器，任务的失败报告和生命周期事件写入此处。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Spawner 名称，用于在多实例场景下区分日志来源。
// 默认为 "xspawn"。空字符串将被忽略。
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithMeter 注入 OpenTelemetry Meter，启用指标采集：
//
//   - taskx.spawn.failures（Counter）：任务失败次数（不含取消）
//   - taskx.spawn.panics（Counter）：任务 panic 次数
//
// 默认不采集指标。传入 nil 将被忽略。
func WithMeter(meter metric.Meter) Option {
	return func(o *options) {
		if meter != nil {
			o.meter = meter
		}
	}
}

// SpawnOption 定义单次 Spawn 的可选配置。
type SpawnOption func(*spawnOptions)

type spawnOptions struct {
	name string
}

// WithTaskName 设置任务名称，用于失败报告中的任务标识。
// 未设置时自动生成 "task-<uuid>"。
func WithTaskName(name string) SpawnOption {
	return func(o *spawnOptions) {
		o.name = name
	}
}
