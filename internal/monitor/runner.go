package monitor

import (
	"context"
	"time"

	"traefik-monitor/internal/models"
	"traefik-monitor/internal/shared/faults"
	"traefik-monitor/internal/shared/loggers"
	"traefik-monitor/internal/shared/metrics"
	"traefik-monitor/internal/stats"
	"traefik-monitor/internal/stores"
)

//go:generate mockgen -source=runner.go -destination=./mocks/runner_mock.go -package=mocks

// LogSource yields the lines appended to the access log since the last call.
type LogSource interface {
	Poll() ([]string, error)
}

// Presenter renders one snapshot to the operator.
type Presenter interface {
	Present(snap *models.StatsSnapshot)
}

// Options holds the fixed parameters of the poll loop.
type Options struct {
	PollInterval   time.Duration
	DefaultTop     int
	PathsPerClient int
	TopAgents      int
}

// Runner drives the monitoring loop: each tick it polls the log source,
// decodes and ingests every returned line, then publishes a fresh snapshot
// to the store, the optional archive, and the presenter. Between ticks it
// drains pending top-N updates from the control channel; each update
// re-renders immediately from the last known aggregate state.
//
// The tailer, collector, and presenter are called from this goroutine only;
// the control channel is the sole crossing point with the input task.
type Runner struct {
	source    LogSource
	collector *stats.Collector
	presenter Presenter
	snapshots *stores.SnapshotStore
	archive   stores.SnapshotArchiveStore // nil when export is disabled
	updates   <-chan int
	opts      Options
	topN      int
	logger    loggers.Logger
}

func NewRunner(
	source LogSource,
	collector *stats.Collector,
	presenter Presenter,
	snapshots *stores.SnapshotStore,
	archive stores.SnapshotArchiveStore,
	updates <-chan int,
	opts Options,
	logger loggers.Logger,
) *Runner {
	return &Runner{
		source:    source,
		collector: collector,
		presenter: presenter,
		snapshots: snapshots,
		archive:   archive,
		updates:   updates,
		opts:      opts,
		topN:      opts.DefaultTop,
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled. There is no other stop condition: the
// monitor runs until externally terminated.
func (r *Runner) Run(ctx context.Context) {
	// Show the empty dashboard before the first tick.
	r.publish(ctx)

	for {
		r.drainUpdates(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.opts.PollInterval):
		}

		r.Tick(ctx)
	}
}

// Tick performs one poll-decode-ingest-publish cycle. Poll errors are
// transient: the tick logs, refreshes the display from existing state, and
// the loop retries on the next interval. Malformed lines and lines without a
// client identifier are counted and skipped without aborting the stream.
func (r *Runner) Tick(ctx context.Context) {
	lines, err := r.source.Poll()
	if err != nil {
		metricTicksTotal.WithLabelValues(faults.CodeOf(err)).Inc()
		r.logger.Warn().Err(err).Msg("poll failed, retrying next tick")
		r.publish(ctx)
		return
	}

	for _, line := range lines {
		entry, parseErr := models.ParseAccessEntry(line)
		if parseErr != nil {
			fault := errDecodeFailed(parseErr)
			metricLinesSkippedTotal.WithLabelValues(reasonMalformed).Inc()
			r.logger.Warn().
				Err(fault).
				Str(loggers.FieldLine, line).
				Msg("skipping malformed log line")
			continue
		}

		if !r.collector.Ingest(entry) {
			metricLinesSkippedTotal.WithLabelValues(reasonNoClientIP).Inc()
			continue
		}
		metricRecordsIngestedTotal.Inc()
	}

	metricTicksTotal.WithLabelValues(metrics.ValueNoError).Inc()
	r.publish(ctx)
}

// drainUpdates consumes every pending control message without blocking, so
// the most recent valid value wins before the next tick. A closed channel
// (input stream ended) simply stops producing updates.
func (r *Runner) drainUpdates(ctx context.Context) {
	for {
		select {
		case value, ok := <-r.updates:
			if !ok {
				r.updates = nil
				return
			}
			r.topN = value
			r.logger.Info().Int(loggers.FieldTopN, value).Msg("top-n changed")
			r.publish(ctx)
		default:
			return
		}
	}
}

func (r *Runner) publish(ctx context.Context) {
	snap := r.collector.Snapshot(r.topN, r.opts.PathsPerClient, r.opts.TopAgents)

	r.snapshots.Put(snap)
	metricTotalRequests.Set(float64(snap.TotalRequests))
	metricUniqueClients.Set(float64(snap.UniqueClients))

	if r.archive != nil {
		if err := r.archive.Put(ctx, snap); err != nil {
			r.logger.Warn().
				Err(err).
				Str(loggers.FieldErrorCode, faults.CodeOf(err)).
				Msg("snapshot archive write failed")
		}
	}

	r.presenter.Present(snap)
}
