package resolve

import "regexp"

// Lookup is the read side of an embedding store. Implementations apply their
// own case-folding rule.
type Lookup interface {
	Lookup(token string) ([]float64, bool)
}

// Policy controls the fallbacks used for tokens missing from the store.
type Policy struct {
	// TrySubwords decomposes missing tokens into fragments.
	TrySubwords bool
	// IgnoreOOV skips missing tokens (and fragments) instead of aborting.
	IgnoreOOV bool
}

// Outcome classifies a Resolution.
type Outcome int

const (
	// Resolved carries one or more vectors.
	Resolved Outcome = iota
	// Skipped contributes nothing to the aggregate.
	Skipped
	// Unresolved aborts the enclosing sequence.
	Unresolved
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Skipped:
		return "skipped"
	default:
		return "unresolved"
	}
}

// Resolution is the result of resolving a single token.
type Resolution struct {
	Outcome Outcome
	// Vectors alias store rows and must not be modified.
	Vectors [][]float64
}

// strategy decides a token's outcome or passes (ok=false) to the next one.
type strategy func(token string) (Resolution, bool)

// Resolver resolves tokens against a store under a fixed Policy. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	store  Lookup
	policy Policy
	chain  []strategy
}

// NewResolver builds the strategy chain for policy.
func NewResolver(store Lookup, policy Policy) *Resolver {
	r := &Resolver{store: store, policy: policy}
	r.chain = append(r.chain, r.exact)
	if policy.TrySubwords {
		r.chain = append(r.chain, r.punctuationSplit, r.classSplit)
	}
	r.chain = append(r.chain, r.oov)
	return r
}

// Policy returns the resolver's policy.
func (r *Resolver) Policy() Policy { return r.policy }

// Token resolves a single token.
func (r *Resolver) Token(token string) Resolution {
	for _, try := range r.chain {
		if res, ok := try(token); ok {
			return res
		}
	}
	return Resolution{Outcome: Unresolved}
}

func (r *Resolver) exact(token string) (Resolution, bool) {
	vec, ok := r.store.Lookup(token)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Outcome: Resolved, Vectors: [][]float64{vec}}, true
}

// Word characters are Unicode letters, numbers and underscore.
var (
	punctuationFragment = regexp.MustCompile(`[^\pL\pN_]*[\pL\pN_]*`)
	classFragment       = regexp.MustCompile(`[\pL\pN_]+|[^\pL\pN_]+`)
)

// PunctuationFragments splits token into "<non-word run><word run>" pieces,
// e.g. "it's" -> ["it", "'s"].
func PunctuationFragments(token string) []string {
	var out []string
	for _, f := range punctuationFragment.FindAllString(token, -1) {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ClassFragments splits token into maximal all-word or all-non-word runs,
// e.g. "it's" -> ["it", "'", "s"].
func ClassFragments(token string) []string {
	return classFragment.FindAllString(token, -1)
}

func (r *Resolver) punctuationSplit(token string) (Resolution, bool) {
	fragments := PunctuationFragments(token)
	if len(fragments) == 0 {
		return Resolution{}, false
	}
	vectors := make([][]float64, 0, len(fragments))
	for _, f := range fragments {
		vec, ok := r.store.Lookup(f)
		if !ok {
			return Resolution{}, false
		}
		vectors = append(vectors, vec)
	}
	return Resolution{Outcome: Resolved, Vectors: vectors}, true
}

func (r *Resolver) classSplit(token string) (Resolution, bool) {
	var vectors [][]float64
	for _, f := range ClassFragments(token) {
		vec, ok := r.store.Lookup(f)
		if !ok {
			if r.policy.IgnoreOOV {
				continue
			}
			return Resolution{Outcome: Unresolved}, true
		}
		vectors = append(vectors, vec)
	}
	if len(vectors) == 0 {
		return Resolution{Outcome: Skipped}, true
	}
	return Resolution{Outcome: Resolved, Vectors: vectors}, true
}

func (r *Resolver) oov(string) (Resolution, bool) {
	if r.policy.IgnoreOOV {
		return Resolution{Outcome: Skipped}, true
	}
	return Resolution{Outcome: Unresolved}, true
}
