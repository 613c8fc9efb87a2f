// Package redipymetrics provides Prometheus metrics for redipy's
// command dispatcher, grounded field-for-field on the teacher's
// internal/metrics package.
package redipymetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal counts commands dispatched, by command name.
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redipy_commands_total",
			Help: "Total number of commands dispatched",
		},
		[]string{"command"},
	)

	// CommandDuration measures dispatch latency, by command name.
	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redipy_command_duration_seconds",
			Help:    "Duration of command dispatch in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
		[]string{"command"},
	)

	// CommandErrors counts dispatch errors, by command name.
	CommandErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redipy_command_errors_total",
			Help: "Total number of command dispatch errors",
		},
		[]string{"command"},
	)
)

// RecordCommand records one dispatch's outcome. Every Dispatcher.Do call
// wraps itself with this, the same call-site pattern as the teacher's
// handler.Handle wrapping every command with metrics.RecordCommand.
func RecordCommand(command string, duration time.Duration, isError bool) {
	CommandsTotal.WithLabelValues(command).Inc()
	CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
	if isError {
		CommandErrors.WithLabelValues(command).Inc()
	}
}
