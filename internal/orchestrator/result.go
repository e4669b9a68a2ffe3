// Package orchestrator runs every configured ingestion source concurrently,
// isolates per-source failures, aggregates statistics, and persists one
// append-only sync log row per source per run.
package orchestrator

import (
	"encoding/json"
	"fmt"
	"time"
)

// SourceStats tracks counts and errors from one source's sync job. Item
// failures accumulate in Errors instead of aborting the job.
type SourceStats struct {
	EventsCreated int      `json:"created"`
	EventsUpdated int      `json:"updated"`
	VenuesCreated int      `json:"venuesCreated"`
	Errors        []string `json:"errors"`
}

// AddErrorf records a formatted error message.
func (s *SourceStats) AddErrorf(format string, args ...interface{}) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

// Add merges another SourceStats into this one.
func (s *SourceStats) Add(other SourceStats) {
	s.EventsCreated += other.EventsCreated
	s.EventsUpdated += other.EventsUpdated
	s.VenuesCreated += other.VenuesCreated
	s.Errors = append(s.Errors, other.Errors...)
}

// Summary returns a human-readable summary of the stats.
func (s *SourceStats) Summary() string {
	return fmt.Sprintf("created=%d updated=%d venues=%d errors=%d",
		s.EventsCreated, s.EventsUpdated, s.VenuesCreated, len(s.Errors))
}

// Totals aggregates all sources of one run.
type Totals struct {
	EventsCreated int      `json:"created"`
	EventsUpdated int      `json:"updated"`
	Invalidated   int      `json:"invalidated"`
	VenuesCreated int      `json:"venuesCreated"`
	Errors        []string `json:"errors"`
}

// RunResult is the structured outcome of one orchestration run. It is
// always complete: a failing source contributes error strings, never a
// missing entry or a propagated fault.
type RunResult struct {
	PerSource map[string]*SourceStats `json:"perSource"`
	Totals    Totals                  `json:"totals"`
	Duration  time.Duration           `json:"-"`
}

// MarshalJSON emits the wall-clock duration in milliseconds.
func (r RunResult) MarshalJSON() ([]byte, error) {
	type alias RunResult
	return json.Marshal(struct {
		alias
		DurationMs int64 `json:"durationMs"`
	}{alias(r), r.Duration.Milliseconds()})
}

// Summary returns a human-readable summary of the run.
func (r *RunResult) Summary() string {
	return fmt.Sprintf("sources=%d created=%d updated=%d venues=%d errors=%d dur=%s",
		len(r.PerSource), r.Totals.EventsCreated, r.Totals.EventsUpdated,
		r.Totals.VenuesCreated, len(r.Totals.Errors),
		r.Duration.Round(time.Millisecond))
}
