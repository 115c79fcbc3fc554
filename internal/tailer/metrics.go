package tailer

import (
	"traefik-monitor/internal/shared/metrics"
)

var (
	metricPollsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubTail,
			Name:      "polls_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricLinesTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubTail,
			Name:      "lines_total",
		},
	)

	metricBytesTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubTail,
			Name:      "bytes_total",
		},
	)
)
