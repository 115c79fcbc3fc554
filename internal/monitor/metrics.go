package monitor

import (
	"traefik-monitor/internal/shared/metrics"
)

const (
	reasonMalformed  = "malformed"
	reasonNoClientIP = "no_client_ip"
)

var (
	metricTicksTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubMonitor,
			Name:      "ticks_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRecordsIngestedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStats,
			Name:      "records_ingested_total",
		},
	)

	metricLinesSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStats,
			Name:      "lines_skipped_total",
		},
		[]string{metrics.FieldReason},
	)

	metricTotalRequests = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStats,
			Name:      "total_requests",
		},
	)

	metricUniqueClients = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStats,
			Name:      "unique_clients",
		},
	)
)
