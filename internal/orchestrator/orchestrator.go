package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/showgrid/showgrid-data/internal/catalog"
	"github.com/showgrid/showgrid-data/internal/metrics"
)

// Source is one ingestion source. Configured reports whether the source has
// the credentials it needs; unconfigured sources are skipped entirely, not
// recorded as failed. Sync performs the full fetch-resolve-upsert cycle and
// accumulates item-level problems in the returned stats; it returns a
// non-nil error only when the whole job produced nothing.
type Source interface {
	Name() string
	Configured() bool
	Sync(ctx context.Context) (SourceStats, error)
}

// LogStore persists the append-only audit trail. catalog.Store satisfies it.
type LogStore interface {
	InsertSyncLog(ctx context.Context, entry *catalog.SyncLogEntry) error
}

// Orchestrator fans ingestion sources out as independent concurrent jobs,
// waits for all of them, and converts every failure into data. No job can
// cancel a sibling; the run as a whole never returns an error.
type Orchestrator struct {
	sources   []Source
	discovery Source // the places venue-discovery source, run separately
	logs      LogStore
	logger    *slog.Logger
}

// New creates an orchestrator. discovery may be nil when no places source
// is wired in.
func New(sources []Source, discovery Source, logs LogStore, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{sources: sources, discovery: discovery, logs: logs, logger: logger}
}

// sourceOutcome is one collected job result: stats plus the job-level error,
// already converted to data.
type sourceOutcome struct {
	stats     SourceStats
	failed    bool // the job returned a top-level error or panicked
	startedAt time.Time
	duration  time.Duration
}

// RunEventSync runs every configured event source concurrently and returns
// the aggregated result. Sources without credentials are omitted from the
// result and the sync log entirely.
func (o *Orchestrator) RunEventSync(ctx context.Context) *RunResult {
	start := time.Now()

	var configured []Source
	for _, src := range o.sources {
		if src.Configured() {
			configured = append(configured, src)
		} else {
			o.logger.Info("Skipping unconfigured source", "source", src.Name())
		}
	}

	result := &RunResult{PerSource: make(map[string]*SourceStats, len(configured))}
	if len(configured) == 0 {
		o.logger.Info("No sources configured, nothing to sync")
		result.Duration = time.Since(start)
		return result
	}

	outcomes := o.dispatch(ctx, configured)

	for _, src := range configured {
		outcome := outcomes[src.Name()]
		stats := outcome.stats
		result.PerSource[src.Name()] = &stats

		result.Totals.EventsCreated += stats.EventsCreated
		result.Totals.EventsUpdated += stats.EventsUpdated
		result.Totals.VenuesCreated += stats.VenuesCreated
		result.Totals.Errors = append(result.Totals.Errors, stats.Errors...)

		o.logRun(ctx, src.Name(), outcome)
	}

	result.Duration = time.Since(start)
	o.logger.Info("Event sync complete", "summary", result.Summary())
	return result
}

// RunVenueDiscovery runs the single places-discovery source. Unlike event
// sources, a missing configuration is reported as an explicit error instead
// of a silent no-op: a scheduled discovery run that does nothing should be
// visible to operators.
func (o *Orchestrator) RunVenueDiscovery(ctx context.Context) *RunResult {
	start := time.Now()
	result := &RunResult{PerSource: make(map[string]*SourceStats, 1)}

	if o.discovery == nil || !o.discovery.Configured() {
		result.Totals.Errors = append(result.Totals.Errors,
			"venue discovery is not configured (missing places API credentials)")
		result.Duration = time.Since(start)
		return result
	}

	outcomes := o.dispatch(ctx, []Source{o.discovery})
	outcome := outcomes[o.discovery.Name()]
	stats := outcome.stats

	result.PerSource[o.discovery.Name()] = &stats
	result.Totals.VenuesCreated = stats.VenuesCreated
	result.Totals.EventsCreated = stats.EventsCreated
	result.Totals.EventsUpdated = stats.EventsUpdated
	result.Totals.Errors = append(result.Totals.Errors, stats.Errors...)

	o.logRun(ctx, o.discovery.Name(), outcome)

	result.Duration = time.Since(start)
	o.logger.Info("Venue discovery complete", "summary", result.Summary())
	return result
}

// dispatch launches one goroutine per source and waits for all of them.
// Each job catches its own panic and converts job errors into stats errors,
// so the fan-in never has to reason about sibling failures.
func (o *Orchestrator) dispatch(ctx context.Context, sources []Source) map[string]sourceOutcome {
	var mu sync.Mutex
	var wg sync.WaitGroup
	outcomes := make(map[string]sourceOutcome, len(sources))

	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			outcome := o.runOne(ctx, src)
			mu.Lock()
			outcomes[src.Name()] = outcome
			mu.Unlock()
		}(src)
	}

	wg.Wait()
	return outcomes
}

// runOne executes a single source job with panic isolation.
func (o *Orchestrator) runOne(ctx context.Context, src Source) (outcome sourceOutcome) {
	outcome.startedAt = time.Now()
	defer func() {
		if r := recover(); r != nil {
			outcome.failed = true
			outcome.stats.AddErrorf("%s: panic: %v", src.Name(), r)
			outcome.duration = time.Since(outcome.startedAt)
			o.logger.Error("Source sync panicked", "source", src.Name(), "panic", fmt.Sprint(r))
		}
	}()

	o.logger.Info("Syncing source", "source", src.Name())
	stats, err := src.Sync(ctx)
	outcome.stats = stats
	if err != nil {
		outcome.failed = true
		outcome.stats.AddErrorf("%s: %v", src.Name(), err)
		o.logger.Error("Source sync failed", "source", src.Name(), "error", err)
	}
	outcome.duration = time.Since(outcome.startedAt)

	o.logger.Info("Source sync finished",
		"source", src.Name(),
		"duration", outcome.duration.Round(time.Millisecond),
		"summary", outcome.stats.Summary())
	return outcome
}

// logRun persists one audit row for an attempted source and records run
// metrics. A failed insert is an observability gap, not a sync failure.
func (o *Orchestrator) logRun(ctx context.Context, source string, outcome sourceOutcome) {
	status := catalog.SyncStatusSuccess
	switch {
	case outcome.failed:
		status = catalog.SyncStatusFailed
	case len(outcome.stats.Errors) > 0:
		status = catalog.SyncStatusPartial
	}

	metrics.ObserveSyncRun(source, status, outcome.stats.EventsCreated,
		outcome.stats.EventsUpdated, outcome.stats.VenuesCreated,
		len(outcome.stats.Errors), outcome.duration)

	if o.logs == nil {
		return
	}
	entry := &catalog.SyncLogEntry{
		Source:        source,
		Status:        status,
		EventsCreated: outcome.stats.EventsCreated,
		EventsUpdated: outcome.stats.EventsUpdated,
		VenuesCreated: outcome.stats.VenuesCreated,
		Errors:        outcome.stats.Errors,
		Duration:      outcome.duration,
		StartedAt:     outcome.startedAt,
		CompletedAt:   outcome.startedAt.Add(outcome.duration),
	}
	if err := o.logs.InsertSyncLog(ctx, entry); err != nil {
		o.logger.Warn("Failed to persist sync log entry", "source", source, "error", err)
	}
}
