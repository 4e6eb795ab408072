// Package pipeline scores stimulus lines against embedding stores and drives
// the batch cross product of embedding tables and stimulus files.
//
// Scorer handles one store: it splits each line, resolves and averages the
// context and target tokens, and compares the two aggregates. Batch loads
// each embedding table once, runs every stimulus file through a Scorer and
// hands the resulting tables to a Sink.
package pipeline
