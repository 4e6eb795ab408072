package embedding

import "fmt"

// ParseError reports a malformed embedding table.
type ParseError struct {
	File string
	// Line is the 1-based physical line number, 0 when the error concerns
	// the file as a whole.
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("embedding: %s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("embedding: %s: %s", loc, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
