package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-circulation-go/store/oteladapters"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	metrics := make(map[string]metricdata.Metrics)
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			metrics[m.Name] = m
		}
	}

	return metrics
}

func givenCollector() (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func Test_MetricsCollector_RecordDuration_InSeconds(t *testing.T) {
	// arrange
	collector, reader := givenCollector()

	// act
	collector.RecordDurationContext(
		context.Background(),
		"recordstore_operation_duration_seconds",
		150*time.Millisecond,
		map[string]string{"operation": "select", "status": "success"},
	)

	// assert
	histogram, ok := collect(t, reader)["recordstore_operation_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count)
	assert.InDelta(t, 0.15, dataPoint.Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("operation", "select"), attribute.String("status", "success"))
	assert.True(t, dataPoint.Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounter_Accumulates(t *testing.T) {
	// arrange
	collector, reader := givenCollector()
	labels := map[string]string{"operation": "apply"}

	// act
	collector.IncrementCounter("recordstore_concurrency_conflicts_total", labels)
	collector.IncrementCounter("recordstore_concurrency_conflicts_total", labels)
	collector.IncrementCounterContext(context.Background(), "recordstore_concurrency_conflicts_total", labels)

	// assert
	sum, ok := collect(t, reader)["recordstore_concurrency_conflicts_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue_KeepsLastValue(t *testing.T) {
	// arrange
	collector, reader := givenCollector()

	// act
	collector.RecordValue("circulation_open_loans", 4, nil)
	collector.RecordValue("circulation_open_loans", 7, nil)

	// assert
	gauge, ok := collect(t, reader)["circulation_open_loans"].Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 7.0, gauge.DataPoints[0].Value, 0.0001)
}
