package compare

import (
	"strings"
	"testing"

	"github.com/modelrace/modelrace/internal/openrouter"
)

func success(elapsed float64) openrouter.Result {
	return openrouter.Result{OK: true, Text: "out", Elapsed: elapsed, WordCount: 1, CharCount: 3}
}

func TestPairFasterModel(t *testing.T) {
	pr := Pair("qwen/qwen3-32b", "qwen/qwen3-14b", success(1.0), success(2.0))
	if pr.Comparison == nil {
		t.Fatal("expected comparison")
	}
	if pr.Comparison.FasterModel != "qwen/qwen3-32b" {
		t.Fatalf("faster %q", pr.Comparison.FasterModel)
	}
	if pr.Comparison.ImprovementPct != 50.0 {
		t.Fatalf("improvement %v", pr.Comparison.ImprovementPct)
	}
}

func TestPairSecondFaster(t *testing.T) {
	pr := Pair("a/one", "b/two", success(4.0), success(1.0))
	if pr.Comparison.FasterModel != "b/two" {
		t.Fatalf("faster %q", pr.Comparison.FasterModel)
	}
	if pr.Comparison.ImprovementPct != 75.0 {
		t.Fatalf("improvement %v", pr.Comparison.ImprovementPct)
	}
}

func TestPairTieBreak(t *testing.T) {
	pr := Pair("a/one", "b/two", success(1.0), success(1.0))
	if pr.Comparison == nil {
		t.Fatal("expected comparison")
	}
	if pr.Comparison.FasterModel != "a/one" {
		t.Fatalf("tie should report the first model, got %q", pr.Comparison.FasterModel)
	}
	if pr.Comparison.ImprovementPct != 0.0 {
		t.Fatalf("improvement %v", pr.Comparison.ImprovementPct)
	}
}

func TestPairOmitsComparisonOnFailure(t *testing.T) {
	failure := openrouter.Result{Err: "Error 500: boom", Elapsed: 0.5, StatusCode: 500}
	for _, pr := range []PairReport{
		Pair("a/one", "b/two", success(1.0), failure),
		Pair("a/one", "b/two", failure, success(1.0)),
		Pair("a/one", "b/two", failure, failure),
	} {
		if pr.Comparison != nil {
			t.Fatalf("comparison should be omitted: %+v", pr.Comparison)
		}
	}
}

func TestRenderTextSections(t *testing.T) {
	failure := openrouter.Result{Err: "Error 429: rate limited", Elapsed: 0.2, StatusCode: 429, RawBody: "rate limited"}
	pr := Pair("qwen/qwen3-32b", "anthropic/claude-3-haiku", success(1.0), failure)
	out := pr.RenderText()
	if !strings.Contains(out, "qwen3-32b") || !strings.Contains(out, "claude-3-haiku") {
		t.Fatalf("missing model sections:\n%s", out)
	}
	if !strings.Contains(out, "Error 429") || !strings.Contains(out, "status: 429") {
		t.Fatalf("missing failure diagnostics:\n%s", out)
	}
	if strings.Contains(out, "faster:") {
		t.Fatalf("performance section should be omitted:\n%s", out)
	}

	both := Pair("a/one", "b/two", success(1.0), success(2.0))
	if out := both.RenderText(); !strings.Contains(out, "faster: one (50.0% faster)") {
		t.Fatalf("missing performance section:\n%s", out)
	}
}
