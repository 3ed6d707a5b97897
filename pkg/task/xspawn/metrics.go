package xspawn

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

const (
	metricFailures = "taskx.spawn.failures"
	metricPanics   = "taskx.spawn.panics"
)

// spawnMetrics 封装可选的 OTel 指标。
// nil 接收者表示未启用指标，所有方法都是空操作。
type spawnMetrics struct {
	failures metric.Int64Counter
	panics   metric.Int64Counter
}

func newSpawnMetrics(meter metric.Meter) (*spawnMetrics, error) {
	if meter == nil {
		return nil, nil
	}

	failures, err := meter.Int64Counter(
		metricFailures,
		metric.WithDescription("spawned tasks that failed (cancellations excluded)"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xspawn: create failures counter failed: %w", err)
	}

	panics, err := meter.Int64Counter(
		metricPanics,
		metric.WithDescription("spawned tasks that panicked"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xspawn: create panics counter failed: %w", err)
	}

	return &spawnMetrics{failures: failures, panics: panics}, nil
}

func (m *spawnMetrics) addFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1)
}

func (m *spawnMetrics) addPanic(ctx context.Context) {
	if m == nil {
		return
	}
	m.panics.Add(ctx, 1)
}
