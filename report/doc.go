// Package report writes scored stimulus tables: one TSV file per
// (stimuli, embeddings) pair, and optionally a SQLite table holding every
// run together with the compared vectors.
package report
