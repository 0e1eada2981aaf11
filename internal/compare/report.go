// Package compare derives human-readable reports from normalized call
// results: per-model outcome sections and, when both calls of a pair
// succeeded, faster-model and relative speed statistics.
package compare

import (
	"fmt"
	"strings"

	"github.com/modelrace/modelrace/internal/openrouter"
)

// Report pairs a model identifier with the outcome of its call.
type Report struct {
	Model  string            `json:"model"`
	Result openrouter.Result `json:"result"`
}

// Comparison summarizes the relative performance of two successful calls.
type Comparison struct {
	FasterModel    string  `json:"faster_model"`
	ImprovementPct float64 `json:"improvement_pct"`
}

// PairReport is the full report for a two-model comparison. Comparison is
// nil unless both calls succeeded; no partial comparison is attempted.
type PairReport struct {
	First      Report      `json:"first"`
	Second     Report      `json:"second"`
	Comparison *Comparison `json:"comparison,omitempty"`
}

// Single builds the report for one call.
func Single(model string, res openrouter.Result) Report {
	return Report{Model: model, Result: res}
}

// Pair builds the report for a two-model comparison.
func Pair(model1, model2 string, r1, r2 openrouter.Result) PairReport {
	pr := PairReport{First: Single(model1, r1), Second: Single(model2, r2)}
	if r1.OK && r2.OK {
		pr.Comparison = compare(model1, model2, r1.Elapsed, r2.Elapsed)
	}
	return pr
}

// compare picks the faster model with a strict less-than comparison, so an
// exact tie reports the first model, and computes the relative improvement
// as |t1-t2| / max(t1,t2) * 100.
func compare(model1, model2 string, t1, t2 float64) *Comparison {
	faster := model2
	if t1 < t2 || t1 == t2 {
		faster = model1
	}
	diff := t1 - t2
	if diff < 0 {
		diff = -diff
	}
	slowest := t1
	if t2 > slowest {
		slowest = t2
	}
	pct := 0.0
	if slowest > 0 {
		pct = diff / slowest * 100
	}
	return &Comparison{FasterModel: faster, ImprovementPct: pct}
}

// RenderText formats a single report for logs and terminals.
func (r Report) RenderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", shortName(r.Model))
	if r.Result.OK {
		fmt.Fprintf(&b, "  generated in %.2f seconds\n", r.Result.Elapsed)
		fmt.Fprintf(&b, "  words: %d  characters: %d  words/second: %.1f\n", r.Result.WordCount, r.Result.CharCount, r.Result.WordsPerSecond)
		fmt.Fprintf(&b, "  %s\n", r.Result.Text)
	} else {
		fmt.Fprintf(&b, "  error: %s\n", r.Result.Err)
		if r.Result.RawBody != "" {
			fmt.Fprintf(&b, "  raw: %s\n", r.Result.RawBody)
		}
		if r.Result.StatusCode != 0 {
			fmt.Fprintf(&b, "  status: %d\n", r.Result.StatusCode)
		}
	}
	return b.String()
}

// RenderText formats a pair report. The performance section appears only
// when the comparison was computed.
func (p PairReport) RenderText() string {
	var b strings.Builder
	b.WriteString(p.First.RenderText())
	b.WriteString(p.Second.RenderText())
	if p.Comparison != nil {
		fmt.Fprintf(&b, "faster: %s (%.1f%% faster)\n", shortName(p.Comparison.FasterModel), p.Comparison.ImprovementPct)
	}
	return b.String()
}

// shortName trims the vendor prefix from a model identifier for display.
func shortName(model string) string {
	if i := strings.LastIndex(model, "/"); i >= 0 {
		return model[i+1:]
	}
	return model
}
