package prometheus

import (
	"fmt"
	"time"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP Layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Record Store
	StoreRecordsTotal   GaugeVec
	StoreMutationsTotal CounterVec

	// Subsidy search
	SearchDuration    HistogramVec
	SearchResultCount HistogramVec

	// Match aggregation
	TallyComputeDuration HistogramVec
	CacheHitsTotal       CounterVec
	CacheMissesTotal     CounterVec

	// Proposal rendering
	ProposalRendersTotal   CounterVec
	ProposalRenderDuration HistogramVec
	ProposalArtifactBytes  HistogramVec

	// CSV export
	ExportsTotal CounterVec

	// System Health
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultRenderDurationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultResultCountBuckets    = []float64{0, 1, 5, 10, 25, 50, 100, 500}
	DefaultArtifactSizeBuckets   = []float64{1000, 10000, 50000, 100000, 500000, 1000000}
)

// NewAppMetrics registers all metrics and returns the AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	// Record Store
	m.StoreRecordsTotal = collector.RegisterGauge("store_records_total", "Records held in the in-memory store", "kind")
	m.StoreMutationsTotal = collector.RegisterCounter("store_mutations_total", "Store mutations", "kind", "operation")

	// Subsidy search
	m.SearchDuration = collector.RegisterHistogram("subsidy_search_duration_seconds", "Subsidy search duration", DefaultHTTPDurationBuckets, "view")
	m.SearchResultCount = collector.RegisterHistogram("subsidy_search_result_count", "Subsidy search result count", DefaultResultCountBuckets, "view")

	// Match aggregation
	m.TallyComputeDuration = collector.RegisterHistogram("category_tally_duration_seconds", "Category tally computation duration", DefaultHTTPDurationBuckets, "source")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	// Proposal rendering
	m.ProposalRendersTotal = collector.RegisterCounter("proposal_renders_total", "Proposal document renders", "status")
	m.ProposalRenderDuration = collector.RegisterHistogram("proposal_render_duration_seconds", "Proposal render duration", DefaultRenderDurationBuckets)
	m.ProposalArtifactBytes = collector.RegisterHistogram("proposal_artifact_bytes", "Rendered proposal artifact size", DefaultArtifactSizeBuckets)

	// CSV export
	m.ExportsTotal = collector.RegisterCounter("exports_total", "CSV exports", "status")

	// System Health
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_code")

	return m
}

// Helpers

func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	status := fmt.Sprintf("%d", statusCode)
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordSearch(metrics *AppMetrics, view string, resultCount int, duration time.Duration) {
	metrics.SearchDuration.WithLabelValues(view).Observe(duration.Seconds())
	metrics.SearchResultCount.WithLabelValues(view).Observe(float64(resultCount))
}

func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordProposalRender(metrics *AppMetrics, success bool, duration time.Duration, artifactBytes int) {
	status := "success"
	if !success {
		status = "failure"
	}
	metrics.ProposalRendersTotal.WithLabelValues(status).Inc()
	metrics.ProposalRenderDuration.WithLabelValues().Observe(duration.Seconds())
	if success {
		metrics.ProposalArtifactBytes.WithLabelValues().Observe(float64(artifactBytes))
	}
}

func RecordError(metrics *AppMetrics, component, errorCode string) {
	metrics.ErrorsTotal.WithLabelValues(component, errorCode).Inc()
}
