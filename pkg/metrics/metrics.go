// Package metrics exposes Prometheus metrics for the store program: messages
// processed, fetches issued, fetches suppressed by the request gate, fetch
// errors, and fetch latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the metrics collector.
type Config struct {
	// Namespace is the metrics namespace (default: "elmstore").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for fetch duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures the metrics collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the fetch-duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "elmstore",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records store-program metrics. A nil *Collector is valid and
// records nothing, so instrumentation stays optional.
type Collector struct {
	msgsTotal         *prometheus.CounterVec
	fetchesTotal      *prometheus.CounterVec
	fetchesSuppressed *prometheus.CounterVec
	fetchErrors       *prometheus.CounterVec
	fetchDuration     *prometheus.HistogramVec
	toastsTotal       *prometheus.CounterVec
}

// New creates a Collector and registers its metrics.
//
// Metrics:
//   - elmstore_msgs_total: Counter of reducer messages by message name
//   - elmstore_fetches_total: Counter of scheduled calls by command name
//   - elmstore_fetches_suppressed_total: Counter of gate-suppressed fetch intents
//   - elmstore_fetch_errors_total: Counter of failed calls by command name
//   - elmstore_fetch_duration_seconds: Histogram of call latency by command name
//   - elmstore_toasts_total: Counter of notifications by level
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		msgsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "msgs_total",
			Help:        "Total number of messages folded by the reducer",
			ConstLabels: config.ConstLabels,
		}, []string{"msg"}),

		fetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "fetches_total",
			Help:        "Total number of scheduled API calls",
			ConstLabels: config.ConstLabels,
		}, []string{"cmd"}),

		fetchesSuppressed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "fetches_suppressed_total",
			Help:        "Total number of fetch intents suppressed by the request gate",
			ConstLabels: config.ConstLabels,
		}, []string{"msg"}),

		fetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "fetch_errors_total",
			Help:        "Total number of failed API calls",
			ConstLabels: config.ConstLabels,
		}, []string{"cmd"}),

		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "fetch_duration_seconds",
			Help:        "API call duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"cmd"}),

		toastsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "toasts_total",
			Help:        "Total number of notifications surfaced",
			ConstLabels: config.ConstLabels,
		}, []string{"level"}),
	}
}

// RecordMsg records a message folded by the reducer.
func (c *Collector) RecordMsg(name string) {
	if c != nil {
		c.msgsTotal.WithLabelValues(name).Inc()
	}
}

// RecordFetch records a scheduled call.
func (c *Collector) RecordFetch(cmd string) {
	if c != nil {
		c.fetchesTotal.WithLabelValues(cmd).Inc()
	}
}

// RecordSuppressed records a fetch intent that the gate turned away.
func (c *Collector) RecordSuppressed(msg string) {
	if c != nil {
		c.fetchesSuppressed.WithLabelValues(msg).Inc()
	}
}

// RecordFetchError records a failed call.
func (c *Collector) RecordFetchError(cmd string) {
	if c != nil {
		c.fetchErrors.WithLabelValues(cmd).Inc()
	}
}

// RecordFetchDuration records the latency of a finished call.
func (c *Collector) RecordFetchDuration(cmd string, d time.Duration) {
	if c != nil {
		c.fetchDuration.WithLabelValues(cmd).Observe(d.Seconds())
	}
}

// RecordToast records a surfaced notification.
func (c *Collector) RecordToast(level string) {
	if c != nil {
		c.toastsTotal.WithLabelValues(level).Inc()
	}
}
