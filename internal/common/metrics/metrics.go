// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preprocessor_records_processed_total",
			Help: "Total number of capture records flattened",
		},
		[]string{"outcome"},
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preprocessor_stage_failures_total",
			Help: "Total number of contained stage failures by stage and error code",
		},
		[]string{"stage", "error_code"},
	)

	FlattenDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "preprocessor_flatten_duration_seconds",
			Help: "Duration of a single record flattening in seconds",
		},
		[]string{"outcome"},
	)
)

// Outcome labels for RecordsProcessed and FlattenDuration.
const (
	OutcomeClean    = "clean"
	OutcomeDegraded = "degraded"
)
