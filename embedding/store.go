package embedding

import "strings"

// Store is an immutable token to vector index backed by a dense row-major
// matrix. It is safe for concurrent use once built.
type Store struct {
	dim      int
	caseFold bool
	index    map[string]int
	tokens   []string
	data     []float64
}

func newStore(dim int, caseFold bool, capacity int) *Store {
	return &Store{
		dim:      dim,
		caseFold: caseFold,
		index:    make(map[string]int, capacity),
		tokens:   make([]string, 0, capacity),
		data:     make([]float64, 0, capacity*dim),
	}
}

// add appends a row; a later token with the same key wins the index slot.
func (s *Store) add(token string, vec []float64) {
	key := s.key(token)
	row := len(s.tokens)
	s.tokens = append(s.tokens, key)
	s.data = append(s.data, vec...)
	s.index[key] = row
}

func (s *Store) key(token string) string {
	if s.caseFold {
		return strings.ToLower(token)
	}
	return token
}

// Dimension returns the vector width.
func (s *Store) Dimension() int { return s.dim }

// CaseFold reports whether tokens are lower-cased on insert and lookup.
func (s *Store) CaseFold() bool { return s.caseFold }

// Rows returns the number of allocated rows, including rows shadowed by a
// later token folding to the same key.
func (s *Store) Rows() int { return len(s.tokens) }

// Len returns the number of reachable tokens.
func (s *Store) Len() int { return len(s.index) }

// Lookup returns the vector for token. The returned slice aliases the store
// and must not be modified.
func (s *Store) Lookup(token string) ([]float64, bool) {
	row, ok := s.index[s.key(token)]
	if !ok {
		return nil, false
	}
	return s.Row(row), true
}

// RowOf returns the row number token resolves to.
func (s *Store) RowOf(token string) (int, bool) {
	row, ok := s.index[s.key(token)]
	return row, ok
}

// Row returns the vector stored at row i. The returned slice aliases the
// store and must not be modified.
func (s *Store) Row(i int) []float64 {
	off := i * s.dim
	return s.data[off : off+s.dim : off+s.dim]
}

// Token returns the (folded) token stored at row i and whether that row is
// still reachable through the index.
func (s *Store) Token(i int) (string, bool) {
	if i < 0 || i >= len(s.tokens) {
		return "", false
	}
	tok := s.tokens[i]
	if s.index[tok] != i {
		return "", false
	}
	return tok, true
}
