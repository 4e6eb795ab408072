// Package index defines a minimal abstraction for nearest-neighbour lookups
// over the token vectors of an embedding table.
package index
