package vector

import (
	"fmt"
	"math"
)

// DegenerateVectorError reports a cosine computation over a vector with zero
// magnitude, for which the angle is undefined.
type DegenerateVectorError struct {
	// Side is "a" or "b", naming the argument that had zero magnitude.
	Side string
}

func (e *DegenerateVectorError) Error() string {
	return fmt.Sprintf("vector: cosine similarity with zero-magnitude vector (%s)", e.Side)
}

// CosineSimilarity computes the cosine similarity between two vectors. It
// returns an error if the vectors have different lengths or are empty, and a
// *DegenerateVectorError if either vector has zero magnitude.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine similarity dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine similarity on empty vectors")
	}
	var dot, na2, nb2 float64
	for i := range a {
		dot += a[i] * b[i]
		na2 += a[i] * a[i]
		nb2 += b[i] * b[i]
	}
	if na2 == 0 {
		return 0, &DegenerateVectorError{Side: "a"}
	}
	if nb2 == 0 {
		return 0, &DegenerateVectorError{Side: "b"}
	}
	sim := dot / (math.Sqrt(na2) * math.Sqrt(nb2))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, fmt.Errorf("vector: cosine similarity is not finite")
	}
	return sim, nil
}
