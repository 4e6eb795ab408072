// Package resolve maps whitespace-delimited tokens to embedding vectors and
// reduces a token sequence to a single mean vector.
//
// Each token goes through an ordered chain of strategies until one of them
// decides the outcome:
//
//  1. exact match against the store
//  2. punctuation split: "<non-word run><word run>" fragments, accepted only
//     when every fragment is in the store
//  3. character-class split: maximal word or non-word runs, each resolved
//     on its own; missing fragments are skipped or abort the token
//  4. out-of-vocabulary: skip or abort
//
// Strategies 2 and 3 only run when Policy.TrySubwords is set. Skips only
// happen when Policy.IgnoreOOV is set.
package resolve
