// Package monitoring exposes prometheus metrics for the HTTP surface and the
// sample store, and records application events.
//
// Metrics exposed:
//   - dbwriter_http_requests_total: Counter of handled requests by route, method and status
//   - dbwriter_http_request_duration_seconds: Histogram of request latency by route and method
//   - dbwriter_samples_created_total: Counter of samples persisted
//   - dbwriter_events_total: Counter of recorded application events
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	nuts "github.com/vaudience/go-nuts"
)

// Service provides monitoring functionality
type Service struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SamplesCreated  prometheus.Counter
	EventsTotal     *prometheus.CounterVec
}

// NewService creates the metrics on a dedicated registry.
// A nil registry gets a fresh one with the go and process collectors.
func NewService(reg *prometheus.Registry) *Service {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Service{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dbwriter_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dbwriter_http_request_duration_seconds",
			Help:    "Time spent handling HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),

		SamplesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "dbwriter_samples_created_total",
			Help: "Total number of samples persisted",
		}),

		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dbwriter_events_total",
			Help: "Total number of application events by name",
		}, []string{"event"}),
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	nuts.L.Infof("[Monitoring] Event %s recorded at %v with labels: %v", eventName, time.Now(), labels)
	s.EventsTotal.WithLabelValues(eventName).Inc()
}

// RecordSampleCreated counts a persisted sample
func (s *Service) RecordSampleCreated() {
	s.SamplesCreated.Inc()
}

// RecordRequest records a finished HTTP request
func (s *Service) RecordRequest(route, method string, status int, elapsed time.Duration) {
	s.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	s.RequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus exposition format
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}
