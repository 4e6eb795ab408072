package report

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/ctxsim/pipeline"
)

// Header is the first line of every TSV report.
const Header = "FullSentence\tTargetWords\tCosineSimilarity\n"

// TSV writes each table to <Dir>/<OutputName(stimuli, embeddings)>.
// Lines that faulted while scoring, such as a target with an empty context,
// have no row: they are omitted from the report and logged with their line
// numbers, so report rows do not always line up with stimulus lines.
type TSV struct {
	Dir string
}

var _ pipeline.Sink = (*TSV)(nil)

// Write creates Dir if needed and (re)writes the report for table.
func (t *TSV) Write(_ context.Context, table pipeline.Table) error {
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return fmt.Errorf("report: create %s: %w", t.Dir, err)
	}
	path := filepath.Join(t.Dir, OutputName(table.StimuliPath, table.EmbeddingsPath))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := WriteTSV(w, table.Rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return f.Close()
}

// WriteTSV writes the header and one line per row. Undefined scores are
// written as an empty column.
func WriteTSV(w *bufio.Writer, rows []pipeline.Row) error {
	if _, err := w.WriteString(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", row.Sentence, row.Target, row.Result); err != nil {
			return err
		}
	}
	return nil
}

// OutputName names the report for a stimuli file scored against an
// embedding table: "<stem(stimuli)>.<stem(embeddings)>", with dashes in the
// embeddings stem turned into underscores.
func OutputName(stimuliPath, embeddingsPath string) string {
	return stem(stimuliPath) + "." + strings.ReplaceAll(stem(embeddingsPath), "-", "_")
}

// stem drops the directory and the last extension of path, then turns the
// remaining dots into dashes. A name without an extension is kept whole.
func stem(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return strings.ReplaceAll(base, ".", "-")
}
