package dataset

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics instruments the loading pipeline. All methods are safe on a nil
// receiver, so callers that do not care about observability can pass nil.
type Metrics struct {
	loads       metric.Int64Counter
	cacheHits   metric.Int64Counter
	rowsDropped metric.Int64Counter
}

// NewMetrics registers the dataset instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	loads, err := meter.Int64Counter("dataset_loads_total",
		metric.WithDescription("Number of table loads, by source and outcome"))
	if err != nil {
		return nil, err
	}
	cacheHits, err := meter.Int64Counter("dataset_cache_hits_total",
		metric.WithDescription("Number of loads served from the table cache"))
	if err != nil {
		return nil, err
	}
	rowsDropped, err := meter.Int64Counter("dataset_rows_dropped_total",
		metric.WithDescription("Rows dropped for missing project identifiers"))
	if err != nil {
		return nil, err
	}
	return &Metrics{loads: loads, cacheHits: cacheHits, rowsDropped: rowsDropped}, nil
}

// RecordLoad counts one load attempt.
func (m *Metrics) RecordLoad(ctx context.Context, source string, ok bool) {
	if m == nil {
		return
	}
	m.loads.Add(ctx, 1,
		metric.WithAttributes(attribute.String("source", source), attribute.Bool("ok", ok)))
}

// RecordCacheHit counts one load satisfied by the cache.
func (m *Metrics) RecordCacheHit(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordDroppedRows counts rows discarded during cleaning.
func (m *Metrics) RecordDroppedRows(ctx context.Context, source string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.rowsDropped.Add(ctx, int64(n), metric.WithAttributes(attribute.String("source", source)))
}
