package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collect returns the metrics of reader by instrument name.
func collect(t *testing.T, reader metricsdk.Reader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestContractMetrics(t *testing.T) {
	reader := metricsdk.NewManualReader()
	meter := metricsdk.NewMeterProvider(metricsdk.WithReader(reader)).Meter("test")

	m, err := NewContractMetrics(meter)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordCall(ctx, "execute", "success", 20*time.Millisecond)
	m.RecordCall(ctx, "execute", "failed", time.Millisecond)
	m.RecordDispatch(ctx, "bank_send", "success")

	got := collect(t, reader)

	calls, ok := got["choice.contract.calls"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, calls.DataPoints, 2)

	duration, ok := got["choice.contract.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range duration.DataPoints {
		count += dp.Count
	}
	require.Equal(t, uint64(2), count)

	dispatches, ok := got["choice.contract.dispatches"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, dispatches.DataPoints, 1)
	require.Equal(t, int64(1), dispatches.DataPoints[0].Value)
}

func TestContractMetrics_Nil(t *testing.T) {
	var m *ContractMetrics
	require.NotPanics(t, func() {
		m.RecordCall(context.Background(), "query", "success", time.Second)
		m.RecordDispatch(context.Background(), "wasm_execute", "failed")
	})
}
