package index

import (
	"fmt"

	"github.com/viant/ctxsim/embedding"
)

// Neighbor is a token ranked by its cosine similarity to a query.
type Neighbor struct {
	Token string
	Score float64
}

// Index defines a vector index that can be built from (token, vector)
// pairs and queried for the k most similar tokens.
type Index interface {
	// Build constructs the index from the given tokens and vectors.
	// tokens and vectors must have the same length.
	Build(tokens []string, vectors [][]float32) error

	// Query returns up to k neighbours of query ordered by descending
	// cosine similarity. k <= 0 returns every scored token.
	Query(query []float32, k int) ([]Neighbor, error)
}

// FromStore builds idx from every reachable row of store. Rows shadowed by
// a later token with the same folded key are left out.
func FromStore(idx Index, store *embedding.Store) error {
	if store == nil {
		return fmt.Errorf("index: store is nil")
	}
	tokens := make([]string, 0, store.Len())
	vectors := make([][]float32, 0, store.Len())
	for row := 0; row < store.Rows(); row++ {
		token, ok := store.Token(row)
		if !ok {
			continue
		}
		tokens = append(tokens, token)
		vectors = append(vectors, Float32s(store.Row(row)))
	}
	return idx.Build(tokens, vectors)
}

// Float32s narrows a float64 vector for indexing.
func Float32s(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
