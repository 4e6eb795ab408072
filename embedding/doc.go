// Package embedding parses whitespace-delimited word-vector tables (GloVe,
// fastText .vec and similar) into an immutable in-memory Store.
//
// A table has one token-vector pair per line. The vector width is inferred
// from the second line of the file; an optional first line whose field count
// differs from the second is treated as a header and skipped. Tokens may
// contain spaces: the trailing fields of every line are the vector and the
// leading fields, joined by single spaces, are the token.
package embedding
