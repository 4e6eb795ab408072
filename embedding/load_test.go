package embedding

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func parseString(t *testing.T, src string, opts Options) *Store {
	t.Helper()
	s, err := Parse(strings.NewReader(src), "test.vec", opts)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return s
}

func TestParse_NoHeader(t *testing.T) {
	s := parseString(t, "cat 1 0\ndog 0 1\n", Options{})
	if s.Dimension() != 2 {
		t.Fatalf("Dimension = %d, want 2", s.Dimension())
	}
	if s.Rows() != 2 || s.Len() != 2 {
		t.Fatalf("Rows/Len = %d/%d, want 2/2", s.Rows(), s.Len())
	}
	vec, ok := s.Lookup("dog")
	if !ok {
		t.Fatalf("Lookup(dog) not found")
	}
	if vec[0] != 0 || vec[1] != 1 {
		t.Fatalf("Lookup(dog) = %v, want [0 1]", vec)
	}
	if row, _ := s.RowOf("cat"); row != 0 {
		t.Errorf("RowOf(cat) = %d, want 0", row)
	}
}

func TestParse_HeaderAutoDetected(t *testing.T) {
	s := parseString(t, "2 3\ncat 1 0 0\ndog 0 1 0\n", Options{})
	if s.Dimension() != 3 {
		t.Fatalf("Dimension = %d, want 3", s.Dimension())
	}
	if s.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2 (header skipped)", s.Rows())
	}
	if _, ok := s.Lookup("2"); ok {
		t.Fatalf("header line was indexed as a token")
	}
}

func TestParse_HeaderModes(t *testing.T) {
	// Without a header hint the multi-word first row looks like a header.
	src := "new york 1 1\ncat 1 0\ndog 0 1\n"

	auto := parseString(t, src, Options{})
	if _, ok := auto.Lookup("new york"); ok {
		t.Fatalf("auto mode: expected first row to be taken as a header")
	}

	absent := parseString(t, src, Options{Header: HeaderAbsent})
	if _, ok := absent.Lookup("new york"); !ok {
		t.Fatalf("HeaderAbsent: expected multi-word token to be indexed")
	}
	if absent.Rows() != 3 {
		t.Fatalf("HeaderAbsent: Rows = %d, want 3", absent.Rows())
	}

	present := parseString(t, "cat 1 0\ndog 0 1\n", Options{Header: HeaderPresent})
	if _, ok := present.Lookup("cat"); ok {
		t.Fatalf("HeaderPresent: first line must be skipped")
	}
	if present.Rows() != 1 {
		t.Fatalf("HeaderPresent: Rows = %d, want 1", present.Rows())
	}
}

func TestParse_MultiWordToken(t *testing.T) {
	s := parseString(t, "ice   cream 0.5 0.5\ncat 1 0\n", Options{Header: HeaderAbsent})
	if _, ok := s.Lookup("ice cream"); !ok {
		t.Fatalf("expected token %q joined with single spaces", "ice cream")
	}
}

func TestParse_CaseFoldLastWriteWins(t *testing.T) {
	s := parseString(t, "Cat 1 0\ncat 0 1\nDOG 1 1\n", Options{CaseFold: true})
	if s.Rows() != 3 {
		t.Fatalf("Rows = %d, want 3", s.Rows())
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	for _, variant := range []string{"cat", "Cat", "CAT", "cAt"} {
		row, ok := s.RowOf(variant)
		if !ok || row != 1 {
			t.Errorf("RowOf(%q) = %d, %v; want 1, true", variant, row, ok)
		}
	}
	if _, ok := s.Token(0); ok {
		t.Errorf("row 0 should be unreachable after fold collision")
	}
	if tok, ok := s.Token(2); !ok || tok != "dog" {
		t.Errorf("Token(2) = %q, %v; want dog, true", tok, ok)
	}
}

func TestParse_CaseSensitiveByDefault(t *testing.T) {
	s := parseString(t, "Cat 1 0\ncat 0 1\n", Options{})
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if _, ok := s.Lookup("CAT"); ok {
		t.Fatalf("unexpected case-insensitive match")
	}
}

func TestParse_BlankLinesIgnored(t *testing.T) {
	s := parseString(t, "\ncat 1 0\n\n  \ndog 0 1\n\n", Options{})
	if s.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2", s.Rows())
	}
}

func TestParse_SingleRow(t *testing.T) {
	s := parseString(t, "cat 1 0 2\n", Options{})
	if s.Dimension() != 3 || s.Rows() != 1 {
		t.Fatalf("Dimension/Rows = %d/%d, want 3/1", s.Dimension(), s.Rows())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		line int
	}{
		{name: "empty", src: "", line: 0},
		{name: "only blanks", src: "\n \n", line: 0},
		{name: "token only", src: "cat\ndog\n", line: 2},
		{name: "non numeric", src: "cat 1 0\ndog 0 x\n", line: 2},
		{name: "short row", src: "cat 1 0\ndog 0 1\nemu 1\n", line: 3},
		{name: "header only", src: "2 300\n", opts: Options{Header: HeaderPresent}, line: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.src), "bad.vec", tc.opts)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if pe.Line != tc.line {
				t.Errorf("Line = %d, want %d (%v)", pe.Line, tc.line, err)
			}
			if pe.File != "bad.vec" {
				t.Errorf("File = %q, want bad.vec", pe.File)
			}
		})
	}
}

func TestParse_NonNumericWrapsStrconv(t *testing.T) {
	_, err := Parse(strings.NewReader("cat 1 0\ndog 0 x\n"), "bad.vec", Options{})
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatalf("expected wrapped strconv.NumError, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glove.txt")
	if err := os.WriteFile(path, []byte("cat 1 0\nmat 0 1\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt"), Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseHeaderMode(t *testing.T) {
	for in, want := range map[string]HeaderMode{"": HeaderAuto, "auto": HeaderAuto, "YES": HeaderPresent, "no": HeaderAbsent} {
		got, err := ParseHeaderMode(in)
		if err != nil || got != want {
			t.Errorf("ParseHeaderMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseHeaderMode("maybe"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}
