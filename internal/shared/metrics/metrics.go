package metrics

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeDegraded  = "degraded"
	OutcomeFailed    = "failed"
)

var (
	registry = prometheus.NewRegistry()

	generationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_requests_total",
		Help: "Total LLM generation requests by operation and outcome",
	}, []string{"operation", "outcome"})

	generationRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_retries_total",
		Help: "Total retries after transient provider failures",
	}, []string{"operation"})

	generationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "generation_duration_ms",
		Help:    "Generation duration in milliseconds, retries included",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	}, []string{"operation"})

	pdfRendered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resume_pdf_rendered_total",
		Help: "Total resume PDFs rendered",
	})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds by route and status class",
		Buckets: []float64{5, 25, 100, 250, 500, 1000, 2500, 10000, 30000},
	}, []string{"route", "status"})

	panics = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_panics_total",
		Help: "Handler panics recovered by route",
	}, []string{"route"})

	pdfPages = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "resume_pdf_pages",
		Help:    "Pages per rendered resume PDF",
		Buckets: []float64{1, 2, 3, 4, 6, 10},
	})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		generationTotal,
		generationRetries,
		generationDuration,
		pdfRendered,
		pdfPages,
		httpDuration,
		panics,
	)
}

// IncGeneration counts a finished generation for operation.
func IncGeneration(operation, outcome string) {
	generationTotal.WithLabelValues(operation, outcome).Inc()
}

// IncGenerationRetry counts one retry of operation.
func IncGenerationRetry(operation string) {
	generationRetries.WithLabelValues(operation).Inc()
}

// ObserveGenerationDurationMs records a generation duration in milliseconds.
func ObserveGenerationDurationMs(operation string, value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.WithLabelValues(operation).Observe(value)
}

// ObservePDF records one rendered PDF.
func ObservePDF(pages int) {
	pdfRendered.Inc()
	pdfPages.Observe(float64(pages))
}

// ObserveRequest records one served request. Unmatched routes share one label.
func ObserveRequest(route string, status int, ms float64) {
	if route == "" {
		route = "unmatched"
	}
	httpDuration.WithLabelValues(route, strconv.Itoa(status/100)+"xx").Observe(ms)
}

// IncPanic counts a recovered handler panic.
func IncPanic(route string) {
	panics.WithLabelValues(route).Inc()
}

// PanicsCounter exposes the panic counter for tests.
func PanicsCounter() *prometheus.CounterVec {
	return panics
}

// RegisterDB exports connection pool statistics for database. Registering the
// same pool twice is not an error.
func RegisterDB(database *sql.DB, name string) error {
	err := registry.Register(collectors.NewDBStatsCollector(database, name))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

// Registry exposes the process registry for tests and custom collectors.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
