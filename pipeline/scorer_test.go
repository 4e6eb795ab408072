package pipeline

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/viant/ctxsim/embedding"
	"github.com/viant/ctxsim/resolve"
	"github.com/viant/ctxsim/stimulus"
	"github.com/viant/ctxsim/vector"
)

func newStore(t *testing.T, src string, caseFold bool) *embedding.Store {
	t.Helper()
	store, err := embedding.Parse(strings.NewReader(src), "test.vec", embedding.Options{CaseFold: caseFold})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return store
}

func newScorer(t *testing.T, src string, opts Options) *Scorer {
	t.Helper()
	scorer, err := NewScorer(newStore(t, src, opts.CaseFold), opts)
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	return scorer
}

func TestScoreLine_OOVContextIsUndefined(t *testing.T) {
	scorer := newScorer(t, "cat 1 0\ndog 0 1\n", Options{})
	row, err := scorer.ScoreLine("The * cat * sat")
	if err != nil {
		t.Fatalf("ScoreLine failed: %v", err)
	}
	if row.Result.Defined {
		t.Fatalf("Result = %+v, want undefined", row.Result)
	}
	if row.Result.String() != "" {
		t.Errorf("Result.String() = %q, want empty", row.Result.String())
	}
	if row.Sentence != "The  cat  sat" {
		t.Errorf("Sentence = %q", row.Sentence)
	}
	if strings.TrimSpace(row.Target) != "cat" {
		t.Errorf("Target = %q", row.Target)
	}
	if row.ContextVector != nil {
		t.Errorf("ContextVector = %v, want nil", row.ContextVector)
	}
}

func TestScoreLine_IgnoreOOVInContext(t *testing.T) {
	opts := Options{Context: resolve.Policy{IgnoreOOV: true}}

	// Only "mat" survives in the context, so it is compared with itself.
	scorer := newScorer(t, "dog 1 0\nmat 0 1\n", opts)
	row, err := scorer.ScoreLine("The mat sat on the * mat *")
	if err != nil {
		t.Fatalf("ScoreLine failed: %v", err)
	}
	if !row.Result.Defined || math.Abs(row.Result.Value-1) > 1e-12 {
		t.Fatalf("Result = %+v, want 1.0", row.Result)
	}

	// With "cat" in the table the context is "cat" and orthogonal to "mat".
	scorer = newScorer(t, "cat 1 0\nmat 0 1\n", opts)
	row, err = scorer.ScoreLine("The cat sat on the * mat *")
	if err != nil {
		t.Fatalf("ScoreLine failed: %v", err)
	}
	if !row.Result.Defined || row.Result.Value != 0 {
		t.Fatalf("Result = %+v, want 0.0", row.Result)
	}
}

func TestScoreLine_FollowingContext(t *testing.T) {
	scorer := newScorer(t, "a 1 0\nb 0 1\nc 1 1\n", Options{FollowingContext: true})
	row, err := scorer.ScoreLine("a * c * b")
	if err != nil {
		t.Fatalf("ScoreLine failed: %v", err)
	}
	// context mean(a, b) = (0.5, 0.5) is parallel to c.
	if !row.Result.Defined || math.Abs(row.Result.Value-1) > 1e-12 {
		t.Fatalf("Result = %+v, want 1.0", row.Result)
	}
	if len(row.ContextVector) != 2 || row.ContextVector[0] != 0.5 {
		t.Errorf("ContextVector = %v, want [0.5 0.5]", row.ContextVector)
	}
}

func TestScoreLine_CaseFold(t *testing.T) {
	scorer := newScorer(t, "the 1 0\ncat 0 1\n", Options{CaseFold: true})
	row, err := scorer.ScoreLine("The * Cat *")
	if err != nil {
		t.Fatalf("ScoreLine failed: %v", err)
	}
	if !row.Result.Defined || row.Result.Value != 0 {
		t.Fatalf("Result = %+v, want 0.0", row.Result)
	}
	if row.Target != " Cat " {
		t.Errorf("Target = %q, want literal text", row.Target)
	}
}

func TestScoreLine_Faults(t *testing.T) {
	scorer := newScorer(t, "zero 0 0\ncat 1 0\n", Options{Context: resolve.Policy{IgnoreOOV: true}})

	_, err := scorer.ScoreLine("no markers")
	var formatErr *stimulus.FormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("expected FormatError, got %v", err)
	}

	_, err = scorer.ScoreLine("zero * cat *")
	var degenerate *vector.DegenerateVectorError
	if !errors.As(err, &degenerate) {
		t.Errorf("expected DegenerateVectorError, got %v", err)
	}

	_, err = scorer.ScoreLine("nothing known * cat *")
	var empty *resolve.EmptyAggregationError
	if !errors.As(err, &empty) {
		t.Errorf("expected EmptyAggregationError, got %v", err)
	}
}

func TestScoreLines(t *testing.T) {
	scorer := newScorer(t, "cat 1 0\nmat 0 1\n", Options{})
	rows, errs := scorer.ScoreLines("stim.txt", []string{
		"cat * mat *",
		"",
		"broken line",
		"dog * mat *",
	})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Line != 1 || rows[1].Line != 4 {
		t.Errorf("row lines = %d, %d; want 1, 4", rows[0].Line, rows[1].Line)
	}
	if !rows[0].Result.Defined || rows[1].Result.Defined {
		t.Errorf("unexpected definedness: %+v, %+v", rows[0].Result, rows[1].Result)
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want 1 error", errs)
	}
	var lineErr *LineError
	if !errors.As(errs[0], &lineErr) || lineErr.File != "stim.txt" || lineErr.Line != 3 {
		t.Fatalf("errs[0] = %v, want LineError at stim.txt:3", errs[0])
	}
}

func TestNewScorer_CaseFoldMismatch(t *testing.T) {
	store := newStore(t, "cat 1 0\n", false)
	if _, err := NewScorer(store, Options{CaseFold: true}); err == nil {
		t.Fatalf("expected error for case folding mismatch")
	}
	if _, err := NewScorer(nil, Options{}); err == nil {
		t.Fatalf("expected error for nil store")
	}
}
