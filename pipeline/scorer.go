package pipeline

import (
	"fmt"
	"strings"

	"github.com/viant/ctxsim/embedding"
	"github.com/viant/ctxsim/resolve"
	"github.com/viant/ctxsim/similarity"
	"github.com/viant/ctxsim/stimulus"
)

// Row is the scored form of one stimulus line.
type Row struct {
	// Line is the 1-based line number within the stimulus file, 0 when the
	// row was scored outside a file.
	Line     int
	Sentence string
	Target   string
	Result   similarity.Result
	// ContextVector and TargetVector are the side aggregates, nil when the
	// side was unresolved.
	ContextVector []float64
	TargetVector  []float64
}

// LineError attaches a stimulus location to a per-line fault.
type LineError struct {
	File string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("pipeline: %s:%d: %v", e.File, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Scorer scores stimulus lines against a single store. It is safe for
// concurrent use.
type Scorer struct {
	store   *embedding.Store
	opts    Options
	context *resolve.Resolver
	target  *resolve.Resolver
}

// NewScorer returns a Scorer for store.
func NewScorer(store *embedding.Store, opts Options) (*Scorer, error) {
	if store == nil {
		return nil, fmt.Errorf("pipeline: store is nil")
	}
	if opts.CaseFold != store.CaseFold() {
		return nil, fmt.Errorf("pipeline: case folding mismatch: options=%v store=%v", opts.CaseFold, store.CaseFold())
	}
	return &Scorer{
		store:   store,
		opts:    opts,
		context: resolve.NewResolver(store, opts.Context),
		target:  resolve.NewResolver(store, opts.Target),
	}, nil
}

// ScoreLine scores a single stimulus line. Insufficient vocabulary coverage
// yields a row with an undefined result; malformed lines and degenerate
// vectors yield an error.
func (s *Scorer) ScoreLine(line string) (Row, error) {
	stim, err := stimulus.Split(line, s.opts.splitOptions())
	if err != nil {
		return Row{}, err
	}
	row := Row{Sentence: stim.Sentence, Target: stim.Target}

	ctx, err := s.context.Sequence(stim.Context)
	if err != nil {
		return Row{}, fmt.Errorf("context: %w", err)
	}
	tgt, err := s.target.Sequence(stim.Target)
	if err != nil {
		return Row{}, fmt.Errorf("target: %w", err)
	}
	if row.Result, err = similarity.Compare(ctx, tgt); err != nil {
		return Row{}, err
	}
	row.ContextVector = ctx.Vector
	row.TargetVector = tgt.Vector
	return row, nil
}

// ScoreLines scores every non-blank line. Faulty lines are reported as
// *LineError values and left out of the returned rows.
func (s *Scorer) ScoreLines(name string, lines []string) ([]Row, []error) {
	rows := make([]Row, 0, len(lines))
	var errs []error
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := s.ScoreLine(line)
		if err != nil {
			errs = append(errs, &LineError{File: name, Line: i + 1, Err: err})
			continue
		}
		row.Line = i + 1
		rows = append(rows, row)
	}
	return rows, errs
}
