// Package metrics exports Prometheus metrics for the admin API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ai_tools_admin"

// Metrics holds every collector. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RecordWrites    *prometheus.CounterVec
	ImportRows      *prometheus.CounterVec
	Scrapes         *prometheus.CounterVec
	Presigns        prometheus.Counter
	EventsPublished *prometheus.CounterVec
}

// New registers the collectors on a fresh registry together with the Go
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		RecordWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_writes_total",
			Help:      "Successful record writes by resource and action",
		}, []string{"resource", "action"}),
		ImportRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Spreadsheet rows imported, by outcome",
		}, []string{"outcome"}),
		Scrapes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrapes_total",
			Help:      "Metadata scrapes by outcome",
		}, []string{"outcome"}),
		Presigns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "presigned_urls_total",
			Help:      "Presigned upload URLs issued",
		}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Content lifecycle events recorded, by type",
		}, []string{"event_type"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests and push jobs.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Middleware records request count and latency. The route label is the
// gin route template so ids do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordWrite counts a successful create, update, toggle or delete.
func (m *Metrics) RecordWrite(resource, action string) {
	if m == nil {
		return
	}
	m.RecordWrites.WithLabelValues(resource, action).Inc()
}

// RecordImport counts imported and rejected rows.
func (m *Metrics) RecordImport(created, failed int) {
	if m == nil {
		return
	}
	m.ImportRows.WithLabelValues("created").Add(float64(created))
	m.ImportRows.WithLabelValues("failed").Add(float64(failed))
}

// RecordScrape counts one scrape attempt.
func (m *Metrics) RecordScrape(err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.Scrapes.WithLabelValues(outcome).Inc()
}

// RecordPresign counts one issued upload URL.
func (m *Metrics) RecordPresign() {
	if m == nil {
		return
	}
	m.Presigns.Inc()
}

// RecordEvent counts one lifecycle event.
func (m *Metrics) RecordEvent(eventType string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(eventType).Inc()
}
