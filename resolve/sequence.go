package resolve

import (
	"fmt"
	"strings"

	"github.com/viant/ctxsim/vector"
)

// Aggregate is the mean vector of a token sequence, or an unresolved marker
// when some token could not be covered by the store.
type Aggregate struct {
	Vector   []float64
	Resolved bool
	// Count is the number of vectors averaged into Vector.
	Count int
}

// EmptyAggregationError reports a sequence that produced no vectors at all,
// either because it had no tokens or because every token was skipped.
type EmptyAggregationError struct {
	Text string
}

func (e *EmptyAggregationError) Error() string {
	return fmt.Sprintf("resolve: no vectors to aggregate for %q", e.Text)
}

// Sequence resolves every whitespace-delimited token of text, in order, and
// returns the element-wise mean of the collected vectors. A single
// unresolved token makes the whole sequence unresolved.
func (r *Resolver) Sequence(text string) (Aggregate, error) {
	var vectors [][]float64
	for _, token := range strings.Fields(text) {
		res := r.Token(token)
		if res.Outcome == Unresolved {
			return Aggregate{}, nil
		}
		vectors = append(vectors, res.Vectors...)
	}
	if len(vectors) == 0 {
		return Aggregate{}, &EmptyAggregationError{Text: text}
	}
	mean, err := vector.Mean(vectors)
	if err != nil {
		return Aggregate{}, fmt.Errorf("resolve: %w", err)
	}
	return Aggregate{Vector: mean, Resolved: true, Count: len(vectors)}, nil
}
