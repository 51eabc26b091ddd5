// Package observability exposes Prometheus metrics and receives the
// outcomes that never fail a request.
package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/sandevgo/raider/internal/core"
)

// Metrics groups all Prometheus instruments used by the service. Each
// instance owns its registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry
	logger   *zerolog.Logger

	Turns             *prometheus.CounterVec
	InferenceFailures *prometheus.CounterVec
	PersistFailures   prometheus.Counter
	HTTPRequests      *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
}

func NewMetrics(namespace string, logger *zerolog.Logger) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Metrics{
		registry: reg,
		logger:   logger,
		Turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Answered turns by outcome.",
		}, []string{"outcome"}),
		InferenceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inference_failures_total",
			Help:      "Inference failures by provider and status code.",
		}, []string{"provider", "code"}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Answered turns that could not be written to the turn store.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"route"}),
	}
}

func (m *Metrics) InferenceFailed(subject string, err error) {
	provider, code := "unknown", "none"
	var ie *core.InferenceError
	if errors.As(err, &ie) {
		provider = ie.Provider
		if ie.Status != 0 {
			code = strconv.Itoa(ie.Status)
		}
	}
	m.InferenceFailures.WithLabelValues(provider, code).Inc()
	m.Turns.WithLabelValues("degraded").Inc()
}

// PersistFailed records a lost turn. The reply already went out, so this is
// the only trace of it.
func (m *Metrics) PersistFailed(subject string, err error) {
	m.PersistFailures.Inc()
	m.logger.Error().Err(err).Str("subject", subject).Msg("turn not persisted")
}

func (m *Metrics) TurnCompleted(_ string, persisted bool) {
	if persisted {
		m.Turns.WithLabelValues("persisted").Inc()
		return
	}
	m.Turns.WithLabelValues("unpersisted").Inc()
}

func (m *Metrics) ObserveHTTP(route string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(route).Observe(d.Seconds())
}

// RegisterCacheStats exposes history cache counters read from stats.
func (m *Metrics) RegisterCacheStats(namespace string, stats func() (hits, misses uint64)) {
	m.registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_cache_hits_total",
			Help:      "History loads served from the cache.",
		}, func() float64 {
			hits, _ := stats()
			return float64(hits)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_cache_misses_total",
			Help:      "History loads that went to the turn store.",
		}, func() float64 {
			_, misses := stats()
			return float64(misses)
		}),
	)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
