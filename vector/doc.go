// Package vector holds the dense float64 vector math used across this module.
// It includes:
//   - Mean: element-wise arithmetic mean of equal-width vectors
//   - CosineSimilarity with typed errors for degenerate input
//   - Embedding encoding (BLOB) used by the SQLite results sink
package vector
