// Package metrics exports dispatch tree build counters to prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements ddi.Observer.
type Collector struct {
	Groups   *prometheus.CounterVec
	Symbols  *prometheus.CounterVec
	Builds   *prometheus.CounterVec
	Duration prometheus.Histogram
}

// New registers the collector metrics on reg, prometheus.DefaultRegisterer when nil.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Collector{
		Groups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ddi_groups_total",
			Help: "Dispatch groups populated, by outcome",
		}, []string{"api", "group", "outcome"}),
		Symbols: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ddi_symbols_total",
			Help: "Dispatch table slots, resolved or missing",
		}, []string{"api", "state"}),
		Builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ddi_builds_total",
			Help: "Dispatch tree builds, by outcome",
		}, []string{"outcome"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ddi_build_duration_seconds",
			Help:    "Duration of a dispatch tree build",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

func (c *Collector) GroupPopulated(api, group string, optional bool, resolved, missing int, err error) {
	outcome := "ok"
	switch {
	case err == nil && missing > 0:
		outcome = "partial"
	case err != nil && optional:
		outcome = "skipped"
	case err != nil:
		outcome = "failed"
	}
	c.Groups.WithLabelValues(api, group, outcome).Inc()
	c.Symbols.WithLabelValues(api, "resolved").Add(float64(resolved))
	c.Symbols.WithLabelValues(api, "missing").Add(float64(missing))
}

func (c *Collector) BuildFinished(elapsed time.Duration, err error) {
	c.Duration.Observe(elapsed.Seconds())
	if err != nil {
		c.Builds.WithLabelValues("failed").Inc()
		return
	}
	c.Builds.WithLabelValues("ok").Inc()
}
