package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/viant/ctxsim/embedding"
)

// Table is the scored content of one stimulus file against one embedding
// table.
type Table struct {
	StimuliPath    string
	EmbeddingsPath string
	Rows           []Row
}

// Sink receives scored tables. Write may be called concurrently for
// different tables.
type Sink interface {
	Write(ctx context.Context, table Table) error
}

// Batch scores every stimulus file against every embedding table.
type Batch struct {
	Embeddings []string
	Stimuli    []string
	Options    Options
	Header     embedding.HeaderMode
	// Parallelism bounds how many embedding tables are processed at once;
	// values below 1 mean 1.
	Parallelism int
	Sink        Sink
	// Strict stops the run at the first fault instead of skipping the
	// offending line or table.
	Strict bool
	Logger *slog.Logger
}

type stimuliFile struct {
	path  string
	lines []string
}

// Run executes the batch. Faults are logged as they happen and returned
// joined; a faulty line or table does not stop the others unless Strict is
// set.
func (b *Batch) Run(ctx context.Context) error {
	if b.Sink == nil {
		return fmt.Errorf("pipeline: sink is nil")
	}
	if len(b.Embeddings) == 0 {
		return fmt.Errorf("pipeline: no embeddings specified")
	}
	if len(b.Stimuli) == 0 {
		return fmt.Errorf("pipeline: no stimuli specified")
	}
	stimuli := make([]stimuliFile, 0, len(b.Stimuli))
	for _, path := range b.Stimuli {
		lines, err := ReadLines(path)
		if err != nil {
			return err
		}
		stimuli = append(stimuli, stimuliFile{path: path, lines: lines})
	}

	b.logger().Info("batch started",
		"embeddings", len(b.Embeddings),
		"stimuli", len(stimuli),
		"parallelism", max(1, b.Parallelism))

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		sem  = make(chan struct{}, max(1, b.Parallelism))
	)
	report := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
		if b.Strict {
			cancel()
		}
	}

schedule:
	for _, path := range b.Embeddings {
		select {
		case <-ctx.Done():
			break schedule
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()
			b.runEmbedding(ctx, path, stimuli, report)
		}(path)
	}
	wg.Wait()

	if err := parent.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (b *Batch) runEmbedding(ctx context.Context, path string, stimuli []stimuliFile, report func(error)) {
	logger := b.logger().With("embeddings", path)
	store, err := embedding.Load(path, embedding.Options{
		CaseFold: b.Options.CaseFold,
		Header:   b.Header,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("skipping embedding table", "error", err)
		report(err)
		return
	}
	scorer, err := NewScorer(store, b.Options)
	if err != nil {
		report(err)
		return
	}
	for _, stim := range stimuli {
		if ctx.Err() != nil {
			return
		}
		rows, lineErrs := scorer.ScoreLines(stim.path, stim.lines)
		for _, lineErr := range lineErrs {
			logger.Warn("skipping stimulus line", "error", lineErr)
			report(lineErr)
			if b.Strict {
				return
			}
		}
		undefined := 0
		for _, row := range rows {
			if !row.Result.Defined {
				undefined++
			}
		}
		table := Table{StimuliPath: stim.path, EmbeddingsPath: path, Rows: rows}
		if err := b.Sink.Write(ctx, table); err != nil {
			logger.Error("write failed", "stimuli", stim.path, "error", err)
			report(fmt.Errorf("pipeline: write %s x %s: %w", stim.path, path, err))
			continue
		}
		logger.Info("scored stimuli",
			"stimuli", stim.path,
			"rows", len(rows),
			"undefined", undefined,
			"faults", len(lineErrs))
	}
}

func (b *Batch) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// ReadLines returns the lines of a text file without line terminators.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: read %s: %w", path, err)
	}
	return lines, nil
}
