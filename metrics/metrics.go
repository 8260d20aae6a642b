// Package metrics provides Prometheus observability metrics for the report
// pipeline. It includes Critical and Important metrics for business and
// operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// HandlersResolvedTotal tracks how many call handlers made it into the report.
var HandlersResolvedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "resolver",
	Name:      "handlers_resolved_total",
	Help:      "Number of call handlers resolved into report rows",
})

// RowsNoSchedule tracks rows that degraded to the "No Schedule" sentinel.
// High values indicate broken schedule-set references upstream.
var RowsNoSchedule = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "resolver",
	Name:      "rows_no_schedule",
	Help:      "Report rows whose handler resolved to no schedule at all",
})

// UnknownScheduleRefsTotal counts member references to schedule ids that were
// not present in the schedules fetch.
var UnknownScheduleRefsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "resolver",
	Name:      "unknown_schedule_refs_total",
	Help:      "Schedule set member references that matched no known schedule",
})

// HandlersSelectedTotal tracks how many handlers passed the system-handler
// classification out of the full fetch.
var HandlersSelectedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "classifier",
	Name:      "handlers_selected_total",
	Help:      "Call handlers classified as system handlers after deduplication",
})

// DuplicateHandlersTotal counts handlers dropped by composite-key dedup.
var DuplicateHandlersTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "classifier",
	Name:      "duplicate_handlers_total",
	Help:      "Call handlers dropped because their dedup key was already seen",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// FetchErrorsTotal tracks failed API requests by endpoint.
var FetchErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fetcher",
	Name:      "errors_total",
	Help:      "Total failed API fetches by endpoint",
}, []string{"endpoint"})

// FetchDurationSeconds tracks time spent per API request.
var FetchDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "fetcher",
	Name:      "duration_seconds",
	Help:      "Time taken per API fetch including body read",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
}, []string{"endpoint"})

// DecodeErrorsTotal tracks malformed XML documents by element kind.
var DecodeErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "decoder",
	Name:      "errors_total",
	Help:      "Total XML decode failures by element kind",
}, []string{"element"})

// RecordsDecodedTotal tracks records successfully decoded by element kind.
var RecordsDecodedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "decoder",
	Name:      "records_total",
	Help:      "Total XML records successfully decoded by element kind",
}, []string{"element"})

// ResolveDurationSeconds tracks time to run the relationship join.
var ResolveDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "resolver",
	Name:      "duration_seconds",
	Help:      "Time taken to resolve handlers against schedules",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetRunGauges resets all per-run gauges before a new pipeline run.
// Call this at the start of main's run.
func ResetRunGauges() {
	HandlersResolvedTotal.Set(0)
	RowsNoSchedule.Set(0)
	HandlersSelectedTotal.Set(0)
}
