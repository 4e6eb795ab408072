// Package engine opens SQLite databases through the modernc.org/sqlite driver
// and registers the vector scalar functions used to query persisted
// similarity runs.
package engine
