// Package similarity combines the context and target aggregates of a
// stimulus into a single cosine score.
package similarity

import (
	"strconv"
	"strings"

	"github.com/viant/ctxsim/resolve"
	"github.com/viant/ctxsim/vector"
)

// Result is a cosine similarity, or an undefined marker when either side
// could not be resolved against the store.
type Result struct {
	Value   float64
	Defined bool
}

// Undefined is the result for insufficient vocabulary coverage.
var Undefined = Result{}

// String renders the score for reports: the shortest decimal that round-trips,
// with ".0" appended to integral values, and "" when undefined.
func (r Result) String() string {
	if !r.Defined {
		return ""
	}
	s := strconv.FormatFloat(r.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// Compare returns the cosine similarity of the two aggregates. It returns
// Undefined when either side is unresolved and a *vector.DegenerateVectorError
// when either side has zero magnitude.
func Compare(context, target resolve.Aggregate) (Result, error) {
	if !context.Resolved || !target.Resolved {
		return Undefined, nil
	}
	v, err := vector.CosineSimilarity(context.Vector, target.Vector)
	if err != nil {
		return Undefined, err
	}
	return Result{Value: v, Defined: true}, nil
}
