package xlockreg

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

const (
	metricEvictions = "taskx.lockreg.evictions"
	metricEntries   = "taskx.lockreg.entries"
)

// registryMetrics 封装可选的 OTel 指标。
// nil 接收者表示未启用指标，所有方法都是空操作。
type registryMetrics struct {
	evictions metric.Int64Counter
	entries   metric.Int64UpDownCounter
}

func newRegistryMetrics(meter metric.Meter) (*registryMetrics, error) {
	if meter == nil {
		return nil, nil
	}

	evictions, err := meter.Int64Counter(
		metricEvictions,
		metric.WithDescription("total lock entries evicted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xlockreg: create evictions counter failed: %w", err)
	}

	entries, err := meter.Int64UpDownCounter(
		metricEntries,
		metric.WithDescription("lock entries currently tracked"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xlockreg: create entries counter failed: %w", err)
	}

	return &registryMetrics{evictions: evictions, entries: entries}, nil
}

func (m *registryMetrics) addEviction(ctx context.Context) {
	if m == nil {
		return
	}
	m.evictions.Add(ctx, 1)
}

func (m *registryMetrics) addEntries(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.entries.Add(ctx, delta)
}
