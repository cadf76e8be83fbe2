package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ContractMetrics records contract activity as OpenTelemetry instruments. A
// nil *ContractMetrics records nothing.
type ContractMetrics struct {
	calls      metric.Int64Counter
	duration   metric.Float64Histogram
	dispatches metric.Int64Counter
}

// NewContractMetrics creates the contract instruments on meter.
func NewContractMetrics(meter metric.Meter) (*ContractMetrics, error) {
	calls, err := meter.Int64Counter("choice.contract.calls",
		metric.WithDescription("Contract entry point calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("calls counter: %w", err)
	}

	duration, err := meter.Float64Histogram("choice.contract.duration",
		metric.WithDescription("Contract entry point duration, including dispatched messages"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("duration histogram: %w", err)
	}

	dispatches, err := meter.Int64Counter("choice.contract.dispatches",
		metric.WithDescription("Messages dispatched by contracts"),
	)
	if err != nil {
		return nil, fmt.Errorf("dispatch counter: %w", err)
	}

	return &ContractMetrics{calls: calls, duration: duration, dispatches: dispatches}, nil
}

// RecordCall counts one entry point call and its duration.
func (m *ContractMetrics) RecordCall(ctx context.Context, entryPoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("entry_point", entryPoint),
		attribute.String("status", status),
	)
	m.calls.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordDispatch counts one dispatched message.
func (m *ContractMetrics) RecordDispatch(ctx context.Context, msgType, status string) {
	if m == nil {
		return
	}
	m.dispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("msg_type", msgType),
		attribute.String("status", status),
	))
}
