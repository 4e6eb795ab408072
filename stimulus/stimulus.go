// Package stimulus splits marked-up stimulus sentences into the context and
// target spans that are scored against each other.
//
// A stimulus line marks its target with two asterisks:
//
//	The cat sat on the * mat * today
package stimulus

import (
	"fmt"
	"regexp"
	"strings"
)

// Marker delimits the target span.
const Marker = "*"

// CollapseMode selects how spaces are normalised after joining the left and
// right context.
type CollapseMode int

const (
	// CollapseAll replaces every run of two or more spaces with one space.
	CollapseAll CollapseMode = iota
	// CollapseLiteral makes two replacement passes: every run of three
	// spaces becomes one, then every run of two becomes one. Runs of four or
	// more spaces can survive. It reproduces the earlier tool's whitespace
	// handling only; scores and case folding are unaffected.
	CollapseLiteral
)

// ParseCollapseMode accepts "all" and "literal".
func ParseCollapseMode(s string) (CollapseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return CollapseAll, nil
	case "literal":
		return CollapseLiteral, nil
	}
	return CollapseAll, fmt.Errorf("stimulus: unknown collapse mode %q", s)
}

func (m CollapseMode) String() string {
	if m == CollapseLiteral {
		return "literal"
	}
	return "all"
}

// Options controls how a line is split.
type Options struct {
	// FollowingContext appends the text after the target to the context.
	FollowingContext bool
	Collapse         CollapseMode
}

// Stimulus is a single split line.
type Stimulus struct {
	// Sentence is the original line with every marker removed.
	Sentence string
	// Context is the text scored against Target.
	Context string
	// Target is the text between the two markers, verbatim.
	Target string
}

// FormatError reports a line that does not contain exactly two markers.
type FormatError struct {
	File    string
	Line    int
	Markers int
}

func (e *FormatError) Error() string {
	loc := "stimulus"
	switch {
	case e.File != "" && e.Line > 0:
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	case e.Line > 0:
		loc = fmt.Sprintf("line %d", e.Line)
	}
	return fmt.Sprintf("stimulus: %s: expected 2 %q markers, found %d", loc, Marker, e.Markers)
}

// Split separates line into context and target.
func Split(line string, opts Options) (Stimulus, error) {
	if n := strings.Count(line, Marker); n != 2 {
		return Stimulus{}, &FormatError{Markers: n}
	}
	parts := strings.SplitN(line, Marker, 3)
	s := Stimulus{
		Sentence: strings.ReplaceAll(line, Marker, ""),
		Context:  parts[0],
		Target:   parts[1],
	}
	if opts.FollowingContext {
		s.Context = collapse(parts[0]+" "+parts[2], opts.Collapse)
	}
	return s, nil
}

var spaceRun = regexp.MustCompile(` {2,}`)

func collapse(text string, mode CollapseMode) string {
	if mode == CollapseLiteral {
		text = strings.ReplaceAll(text, "   ", " ")
		return strings.ReplaceAll(text, "  ", " ")
	}
	return spaceRun.ReplaceAllString(text, " ")
}
