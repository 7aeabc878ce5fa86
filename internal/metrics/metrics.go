// Package metrics records what a run did to the applications of a domain.
package metrics

import (
	"strconv"
	"time"

	metrics "github.com/docker/go-metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Action is the outcome for a single application.
type Action string

const (
	Created   Action = "created"
	Updated   Action = "updated"
	Unchanged Action = "unchanged"
	Deleted   Action = "deleted"
	Failed    Action = "failed"
	Skipped   Action = "skipped"
)

// Recorder holds the metrics of a single run. The zero value is not usable;
// use [New].
type Recorder struct {
	registry *prometheus.Registry
	apps     metrics.LabeledCounter
	lastRun  metrics.Gauge
	now      func() time.Time
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	ns := metrics.NewNamespace("marathon_release", "", nil)
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		apps:     ns.NewLabeledCounter("apps", "The number of applications processed, by outcome", "action", "dry_run"),
		lastRun:  ns.NewGauge("last_run_timestamp", "The time the run finished", metrics.Seconds),
		now:      time.Now,
	}
	r.registry.MustRegister(ns)
	return r
}

// Inc counts one application with the given outcome.
func (r *Recorder) Inc(action Action, dryRun bool) {
	r.apps.WithValues(string(action), strconv.FormatBool(dryRun)).Inc()
}

// WriteFile marks the end of the run, and writes all metrics to filename in
// the Prometheus text format, for the node exporter's textfile collector.
func (r *Recorder) WriteFile(filename string) error {
	r.lastRun.Set(float64(r.now().Unix()))
	if err := prometheus.WriteToTextfile(filename, r.registry); err != nil {
		return errors.Wrap(err, "failed to write metrics")
	}
	return nil
}

// Gatherer returns the registry holding the metrics of the run.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
