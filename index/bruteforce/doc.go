// Package bruteforce provides a vector index that answers kNN queries by
// scanning all vectors and scoring them via cosine similarity.
package bruteforce
