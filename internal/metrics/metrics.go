// Package metrics exposes query-run metrics in the Prometheus text format.
//
// The runner is a batch job, so nothing is scraped: after each run the
// registry is written to a file picked up by node_exporter's textfile
// collector.
package metrics

import (
	"context"
	"log"

	"bookstore/internal/queries"

	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	registry    *prometheus.Registry
	textfile    string
	duration    *prometheus.HistogramVec
	operations  *prometheus.CounterVec
	lastRun     *prometheus.GaugeVec
	lastSuccess prometheus.Gauge
}

// New registers the query metrics on a private registry. textfile may be
// empty, in which case nothing is written.
func New(textfile string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		textfile: textfile,
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bookstore",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Duration of each query operation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"phase", "operation"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookstore",
			Subsystem: "query",
			Name:      "operations_total",
			Help:      "Query operations by outcome.",
		}, []string{"operation", "status"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bookstore",
			Subsystem: "query",
			Name:      "last_run_steps",
			Help:      "Steps of the most recent run by status.",
		}, []string{"status"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bookstore",
			Subsystem: "query",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run in which every step succeeded.",
		}),
	}
	c.registry.MustRegister(c.duration, c.operations, c.lastRun, c.lastSuccess)
	return c
}

func (c *Collector) RunStarted(context.Context, *queries.Report) {}

func (c *Collector) StepFinished(_ context.Context, _ *queries.Report, step queries.StepResult) {
	c.duration.WithLabelValues(step.Phase, step.Name).Observe(step.Duration.Seconds())
	c.operations.WithLabelValues(step.Name, string(step.Status)).Inc()
}

func (c *Collector) RunFinished(_ context.Context, rep *queries.Report) {
	for _, s := range []queries.Status{queries.StatusOK, queries.StatusFailed, queries.StatusSkipped} {
		c.lastRun.WithLabelValues(string(s)).Set(float64(rep.Count(s)))
	}
	if _, failed := rep.Failed(); !failed {
		c.lastSuccess.Set(float64(rep.FinishedAt.Unix()))
	}
	if err := c.Flush(); err != nil {
		log.Printf("Failed to write metrics textfile %s: %v", c.textfile, err)
	}
}

// Flush writes the registry to the textfile, if one is configured.
func (c *Collector) Flush() error {
	if c.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(c.textfile, c.registry)
}

var _ queries.Observer = (*Collector)(nil)
