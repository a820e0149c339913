// Package metrics holds the Prometheus collectors of the service. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	scheduleRejections *prometheus.CounterVec
	layoutReplacements *prometheus.CounterVec
	seatTransitions    *prometheus.CounterVec
	reportsBuilt       *prometheus.CounterVec
	lockWait           prometheus.Histogram
	wsClients          prometheus.Gauge
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		scheduleRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_rejections_total",
			Help:      "Rejected schedule saves by validation code.",
		}, []string{"code"}),
		layoutReplacements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_layout_replacements_total",
			Help:      "Seat layout replacements by outcome.",
		}, []string{"outcome"}),
		seatTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_status_transitions_total",
			Help:      "Applied seat status transitions by target status.",
		}, []string{"status"}),
		reportsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_built_total",
			Help:      "Utilization reports built by output format.",
		}, []string{"format"}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hall_lock_wait_seconds",
			Help:      "Time spent waiting for a hall lock.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seat_feed_clients",
			Help:      "Connected seat feed websocket clients.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.scheduleRejections,
		m.layoutReplacements,
		m.seatTransitions,
		m.reportsBuilt,
		m.lockWait,
		m.wsClients,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency keyed by the matched route.
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
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ScheduleRejected(code string) {
	if m != nil {
		m.scheduleRejections.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) LayoutReplaced(outcome string) {
	if m != nil {
		m.layoutReplacements.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) SeatTransitioned(status string, n int) {
	if m != nil {
		m.seatTransitions.WithLabelValues(status).Add(float64(n))
	}
}

func (m *Metrics) ReportBuilt(format string) {
	if m != nil {
		m.reportsBuilt.WithLabelValues(format).Inc()
	}
}

func (m *Metrics) LockWaited(d time.Duration) {
	if m != nil {
		m.lockWait.Observe(d.Seconds())
	}
}

func (m *Metrics) ClientConnected() {
	if m != nil {
		m.wsClients.Inc()
	}
}

func (m *Metrics) ClientDisconnected() {
	if m != nil {
		m.wsClients.Dec()
	}
}
