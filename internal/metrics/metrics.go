package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records snapshot fetch and publish events in Prometheus metrics.
type Collector struct {
	fetches      *prometheus.CounterVec
	failures     *prometheus.CounterVec
	stale        *prometheus.CounterVec
	applied      *prometheus.GaugeVec
	publishFails *prometheus.CounterVec
}

// NewCollector registers fetch metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "svitlo_snapshot_fetches_total",
		Help: "Total number of snapshot fetch attempts by result",
	}, []string{"region", "result"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "svitlo_snapshot_fetch_failures_total",
		Help: "Snapshot fetch failures by kind",
	}, []string{"region", "kind"})
	stale := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "svitlo_snapshot_stale_results_total",
		Help: "Fetch results discarded because a fresher fetch already applied",
	}, []string{"region"})
	applied := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "svitlo_snapshot_applied_timestamp_seconds",
		Help: "Unix time of the last applied snapshot",
	}, []string{"region"})
	publishFails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "svitlo_mq_publish_failures_total",
		Help: "Failed RabbitMQ publishes by routing key",
	}, []string{"routing_key"})

	if err := reg.Register(fetches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fetches = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(failures); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			failures = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(stale); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			stale = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(applied); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			applied = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(publishFails); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			publishFails = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &Collector{
		fetches:      fetches,
		failures:     failures,
		stale:        stale,
		applied:      applied,
		publishFails: publishFails,
	}, nil
}

// FetchOK counts a successful fetch.
func (c *Collector) FetchOK(region string) {
	c.fetches.WithLabelValues(region, "ok").Inc()
}

// FetchFailed counts a failed fetch with its failure kind.
func (c *Collector) FetchFailed(region string, kind string) {
	c.fetches.WithLabelValues(region, "error").Inc()
	c.failures.WithLabelValues(region, kind).Inc()
}

// StaleDiscarded counts a fetch result dropped by the generation guard.
func (c *Collector) StaleDiscarded(region string) {
	c.stale.WithLabelValues(region).Inc()
}

// SnapshotApplied records when a region's snapshot was last replaced.
func (c *Collector) SnapshotApplied(region string, at time.Time) {
	c.applied.WithLabelValues(region).Set(float64(at.Unix()))
}

// PublishFailed counts a failed RabbitMQ publish.
func (c *Collector) PublishFailed(routingKey string) {
	c.publishFails.WithLabelValues(routingKey).Inc()
}
