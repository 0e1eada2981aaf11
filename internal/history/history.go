// Package history keeps a bounded in-process record of recent runs for
// the state endpoint. Nothing is persisted.
package history

import (
	"sync"
	"time"

	"github.com/modelrace/modelrace/internal/compare"
)

// RunKind distinguishes single-model tests from paired comparisons.
type RunKind string

const (
	KindTest    RunKind = "test"
	KindCompare RunKind = "compare"
)

// RunRecord is one completed user action.
type RunRecord struct {
	ID             string    `json:"id"`
	Kind           RunKind   `json:"kind"`
	Models         []string  `json:"models"`
	Succeeded      bool      `json:"succeeded"`
	ElapsedTotal   float64   `json:"elapsed_total_s"`
	FasterModel    string    `json:"faster_model,omitempty"`
	ImprovementPct float64   `json:"improvement_pct,omitempty"`
	At             time.Time `json:"at"`
}

// StateSnapshot is the payload served by /api/state.
type StateSnapshot struct {
	Now           time.Time   `json:"now"`
	Version       string      `json:"version"`
	BuildSHA      string      `json:"build_sha,omitempty"`
	BuildDate     string      `json:"build_date,omitempty"`
	UptimeSeconds uint64      `json:"uptime_s"`
	RunsTotal     uint64      `json:"runs_total"`
	Recent        []RunRecord `json:"recent"`
}

// Registry records runs in a fixed-size ring, newest first in snapshots.
type Registry struct {
	mu        sync.Mutex
	version   string
	buildSHA  string
	buildDate string
	started   time.Time
	limit     int
	total     uint64
	runs      []RunRecord
}

// NewRegistry creates a registry keeping up to limit recent runs.
// A non-positive limit falls back to 50.
func NewRegistry(version, buildSHA, buildDate string, limit int) *Registry {
	if limit <= 0 {
		limit = 50
	}
	return &Registry{
		version:   version,
		buildSHA:  buildSHA,
		buildDate: buildDate,
		started:   time.Now(),
		limit:     limit,
	}
}

// RecordSingle appends a single-model run.
func (r *Registry) RecordSingle(id string, rep compare.Report) {
	r.add(RunRecord{
		ID:           id,
		Kind:         KindTest,
		Models:       []string{rep.Model},
		Succeeded:    rep.Result.OK,
		ElapsedTotal: rep.Result.Elapsed,
		At:           time.Now(),
	})
}

// RecordPair appends a paired comparison run. Succeeded means both calls
// succeeded; total elapsed is the sum of the two sequential calls.
func (r *Registry) RecordPair(id string, rep compare.PairReport) {
	rec := RunRecord{
		ID:           id,
		Kind:         KindCompare,
		Models:       []string{rep.First.Model, rep.Second.Model},
		Succeeded:    rep.Comparison != nil,
		ElapsedTotal: rep.First.Result.Elapsed + rep.Second.Result.Elapsed,
		At:           time.Now(),
	}
	if rep.Comparison != nil {
		rec.FasterModel = rep.Comparison.FasterModel
		rec.ImprovementPct = rep.Comparison.ImprovementPct
	}
	r.add(rec)
}

func (r *Registry) add(rec RunRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	r.runs = append(r.runs, rec)
	if len(r.runs) > r.limit {
		r.runs = r.runs[len(r.runs)-r.limit:]
	}
}

// Snapshot returns the current state, newest run first.
func (r *Registry) Snapshot() StateSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	recent := make([]RunRecord, len(r.runs))
	for i, rec := range r.runs {
		recent[len(r.runs)-1-i] = rec
	}
	return StateSnapshot{
		Now:           time.Now(),
		Version:       r.version,
		BuildSHA:      r.buildSHA,
		BuildDate:     r.buildDate,
		UptimeSeconds: uint64(time.Since(r.started).Seconds()),
		RunsTotal:     r.total,
		Recent:        recent,
	}
}
