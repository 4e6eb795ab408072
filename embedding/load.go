package embedding

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single table line; 300-d fastText rows are ~4KB.
const maxLineSize = 64 << 20

type line struct {
	num    int
	fields []string
}

// Load parses the embedding table at path.
func Load(path string, opts Options) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("embedding: open %s: %w", path, err)
	}
	defer f.Close()

	store, err := Parse(f, path, opts)
	if err != nil {
		return nil, err
	}
	opts.logger().Info("embedding table loaded",
		"file", path,
		"rows", store.Rows(),
		"tokens", store.Len(),
		"dim", store.Dimension(),
		"uncased", store.CaseFold())
	return store, nil
}

// Parse reads a table from r. name is only used in error messages.
func Parse(r io.Reader, name string, opts Options) (*Store, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	num := 0
	next := func() (line, bool) {
		for sc.Scan() {
			num++
			fields := strings.Fields(sc.Text())
			if len(fields) == 0 {
				continue
			}
			return line{num: num, fields: fields}, true
		}
		return line{}, false
	}

	first, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, &ParseError{File: name, Line: num, Msg: "read failed", Err: err}
		}
		return nil, &ParseError{File: name, Msg: "empty file"}
	}
	second, hasSecond := next()

	var (
		dim        int
		skipHeader bool
		dimLine    = first
	)
	switch opts.Header {
	case HeaderAbsent:
		if hasSecond {
			dimLine = second
		}
		dim = len(dimLine.fields) - 1
	case HeaderPresent:
		if !hasSecond {
			return nil, &ParseError{File: name, Line: first.num, Msg: "header present but no data rows"}
		}
		dimLine = second
		dim = len(second.fields) - 1
		skipHeader = true
	default:
		if hasSecond {
			dimLine = second
			dim = len(second.fields) - 1
			skipHeader = len(first.fields) != len(second.fields)
		} else {
			dim = len(first.fields) - 1
		}
	}
	if dim <= 0 {
		return nil, &ParseError{File: name, Line: dimLine.num, Msg: "no vector fields to infer dimension"}
	}

	store := newStore(dim, opts.CaseFold, 1024)
	vec := make([]float64, dim)
	add := func(l line) error {
		if len(l.fields) < dim+1 {
			return &ParseError{File: name, Line: l.num,
				Msg: fmt.Sprintf("expected at least %d fields, got %d", dim+1, len(l.fields))}
		}
		split := len(l.fields) - dim
		for i, raw := range l.fields[split:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return &ParseError{File: name, Line: l.num,
					Msg: fmt.Sprintf("invalid vector field %d", i+1), Err: err}
			}
			vec[i] = v
		}
		store.add(strings.Join(l.fields[:split], " "), vec)
		return nil
	}

	if !skipHeader {
		if err := add(first); err != nil {
			return nil, err
		}
	}
	if hasSecond {
		if err := add(second); err != nil {
			return nil, err
		}
	}
	for {
		l, ok := next()
		if !ok {
			break
		}
		if err := add(l); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{File: name, Line: num + 1, Msg: "read failed", Err: err}
	}
	return store, nil
}
