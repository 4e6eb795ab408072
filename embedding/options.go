package embedding

import (
	"fmt"
	"log/slog"
	"strings"
)

// HeaderMode selects how the first line of a table is interpreted.
type HeaderMode int

const (
	// HeaderAuto treats line 1 as a header when its field count differs from
	// line 2. A data file whose first two tokens have a different number of
	// words is misclassified by this heuristic.
	HeaderAuto HeaderMode = iota
	// HeaderPresent always skips line 1.
	HeaderPresent
	// HeaderAbsent treats line 1 as data.
	HeaderAbsent
)

func (m HeaderMode) String() string {
	switch m {
	case HeaderPresent:
		return "yes"
	case HeaderAbsent:
		return "no"
	default:
		return "auto"
	}
}

// ParseHeaderMode accepts auto, yes/true/present and no/false/absent.
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return HeaderAuto, nil
	case "yes", "true", "present":
		return HeaderPresent, nil
	case "no", "false", "absent":
		return HeaderAbsent, nil
	}
	return HeaderAuto, fmt.Errorf("embedding: unknown header mode %q", s)
}

// Options controls table parsing.
type Options struct {
	// CaseFold lower-cases every token on insert and on lookup.
	CaseFold bool
	Header   HeaderMode
	// Logger receives a summary line per loaded table; nil uses slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
