package vector

import "fmt"

// Mean returns the element-wise arithmetic mean of vectors. All vectors must
// share the same width. The result is a fresh slice; inputs are not modified.
func Mean(vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("vector: mean of zero vectors")
	}
	dim := len(vectors[0])
	out := make([]float64, dim)
	for j, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector: mean dimension mismatch at %d: %d vs %d", j, len(v), dim)
		}
		for i, x := range v {
			out[i] += x
		}
	}
	n := float64(len(vectors))
	for i := range out {
		out[i] /= n
	}
	return out, nil
}
