package bruteforce

import (
	"fmt"
	"math"
	"sort"

	"github.com/viant/ctxsim/index"
	"github.com/viant/vec/search"
)

// Index is a brute-force vector index implementing cosine similarity.
type Index struct {
	tokens []string
	vecs   []search.Float32s
	dim    int
	mags   []float32
}

var _ index.Index = (*Index)(nil)

// Build loads tokens and vectors and precomputes magnitudes.
func (i *Index) Build(tokens []string, vectors [][]float32) error {
	if len(tokens) != len(vectors) {
		return fmt.Errorf("bruteforce: tokens and vectors length mismatch: %d != %d", len(tokens), len(vectors))
	}
	if len(tokens) == 0 {
		i.tokens, i.vecs, i.mags, i.dim = nil, nil, nil, 0
		return nil
	}
	dim := len(vectors[0])
	vecs := make([]search.Float32s, len(vectors))
	mags := make([]float32, len(vectors))
	for j, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("bruteforce: inconsistent vector dims %d vs %d", len(v), dim)
		}
		vecs[j] = search.Float32s(v)
		mags[j] = vecs[j].Magnitude()
	}
	i.tokens = append([]string(nil), tokens...)
	i.vecs = vecs
	i.dim = dim
	i.mags = mags
	return nil
}

// Len returns the number of indexed tokens.
func (i *Index) Len() int { return len(i.tokens) }

// Query returns top-k by cosine similarity. Ties are ordered by token.
func (i *Index) Query(query []float32, k int) ([]index.Neighbor, error) {
	if i.dim == 0 || len(i.vecs) == 0 {
		return nil, nil
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("bruteforce: query dim %d != index dim %d", len(query), i.dim)
	}
	q := search.Float32s(query)
	qm := q.Magnitude()
	if qm == 0 {
		return nil, nil
	}
	neighbors := make([]index.Neighbor, 0, len(i.vecs))
	for j, v := range i.vecs {
		if i.mags[j] == 0 {
			continue
		}
		s := 1 - float64(q.CosineDistanceWithMagnitude(v, qm, i.mags[j]))
		if math.IsNaN(s) {
			continue
		}
		neighbors = append(neighbors, index.Neighbor{Token: i.tokens[j], Score: s})
	}
	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].Score != neighbors[b].Score {
			return neighbors[a].Score > neighbors[b].Score
		}
		return neighbors[a].Token < neighbors[b].Token
	})
	if k > 0 && k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}
