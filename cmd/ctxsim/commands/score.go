package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/viant/ctxsim/config"
	"github.com/viant/ctxsim/engine"
	"github.com/viant/ctxsim/pipeline"
	"github.com/viant/ctxsim/report"
)

var (
	runFile   string
	scoreArgs config.Config
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score stimulus files against embedding tables",
	Long: `Score every stimulus file against every embedding table and write one
TSV report per pair to the output directory.

Flags given on the command line override the values of the run file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveRun(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runScore(ctx, cfg, slog.Default())
	},
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&runFile, "config", "", "run file (YAML)")
	f.StringVarP(&scoreArgs.Stimuli, "stimuli", "i", "", "stimulus file")
	f.StringVar(&scoreArgs.StimuliList, "stimuli-list", "", "file listing stimulus files, one per line")
	f.StringVarP(&scoreArgs.Embeddings, "embeddings", "m", "", "embedding table")
	f.StringVar(&scoreArgs.EmbeddingsList, "embeddings-list", "", "file listing embedding tables, one per line")
	f.StringVarP(&scoreArgs.OutputDirectory, "output-directory", "o", "", "output directory")
	f.BoolVarP(&scoreArgs.FollowingContext, "following-context", "f", false, "include the words after the target in the context")
	f.BoolVar(&scoreArgs.TrySubwordsInContext, "try-subwords-in-context", false, "split unknown context words into subwords")
	f.BoolVar(&scoreArgs.IgnoreOOVInContext, "ignore-oov-in-context", false, "skip unknown context words")
	f.BoolVar(&scoreArgs.TrySubwordsInTarget, "try-subwords-in-target", false, "split unknown target words into subwords")
	f.BoolVar(&scoreArgs.IgnoreOOVInTarget, "ignore-oov-in-target", false, "skip unknown target words")
	f.BoolVar(&scoreArgs.Uncased, "uncased", false, "lower-case embedding tokens and stimuli")
	f.StringVar(&scoreArgs.Header, "header", "auto", "embedding header line: auto, yes or no")
	f.StringVar(&scoreArgs.Collapse, "collapse", "all", "whitespace collapse for following context: all or literal")
	f.IntVarP(&scoreArgs.Parallelism, "parallel", "p", 1, "embedding tables scored concurrently")
	f.StringVar(&scoreArgs.SQLite, "sqlite", "", "also write every row to this SQLite database")
	f.BoolVar(&scoreArgs.Strict, "strict", false, "fail on the first malformed line or table")
}

// overrides copies a command line value onto the run file config.
var overrides = map[string]func(dst, src *config.Config){
	"stimuli":                 func(d, s *config.Config) { d.Stimuli = s.Stimuli },
	"stimuli-list":            func(d, s *config.Config) { d.StimuliList = s.StimuliList },
	"embeddings":              func(d, s *config.Config) { d.Embeddings = s.Embeddings },
	"embeddings-list":         func(d, s *config.Config) { d.EmbeddingsList = s.EmbeddingsList },
	"output-directory":        func(d, s *config.Config) { d.OutputDirectory = s.OutputDirectory },
	"following-context":       func(d, s *config.Config) { d.FollowingContext = s.FollowingContext },
	"try-subwords-in-context": func(d, s *config.Config) { d.TrySubwordsInContext = s.TrySubwordsInContext },
	"ignore-oov-in-context":   func(d, s *config.Config) { d.IgnoreOOVInContext = s.IgnoreOOVInContext },
	"try-subwords-in-target":  func(d, s *config.Config) { d.TrySubwordsInTarget = s.TrySubwordsInTarget },
	"ignore-oov-in-target":    func(d, s *config.Config) { d.IgnoreOOVInTarget = s.IgnoreOOVInTarget },
	"uncased":                 func(d, s *config.Config) { d.Uncased = s.Uncased },
	"header":                  func(d, s *config.Config) { d.Header = s.Header },
	"collapse":                func(d, s *config.Config) { d.Collapse = s.Collapse },
	"parallel":                func(d, s *config.Config) { d.Parallelism = s.Parallelism },
	"sqlite":                  func(d, s *config.Config) { d.SQLite = s.SQLite },
	"strict":                  func(d, s *config.Config) { d.Strict = s.Strict },
}

// resolveRun merges the run file, if any, with the flags set on the
// command line.
func resolveRun(cmd *cobra.Command) (*config.Config, error) {
	if runFile == "" {
		cfg := scoreArgs
		return &cfg, cfg.Validate()
	}
	cfg, err := config.Load(runFile)
	if err != nil {
		return nil, err
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply(cfg, &scoreArgs)
		}
	}
	return cfg, cfg.Validate()
}

func runScore(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	header, err := cfg.HeaderMode()
	if err != nil {
		return err
	}
	stimuli, err := cfg.StimuliPaths(logger)
	if err != nil {
		return err
	}
	embeddings, err := cfg.EmbeddingPaths(logger)
	if err != nil {
		return err
	}

	var sink pipeline.Sink = &report.TSV{Dir: cfg.OutputDirectory}
	if cfg.SQLite != "" {
		db, err := engine.Open(cfg.SQLite)
		if err != nil {
			return err
		}
		defer db.Close()
		store, err := report.NewSQLite(ctx, db, logger)
		if err != nil {
			return err
		}
		sink = report.Multi{sink, store}
	}

	batch := &pipeline.Batch{
		Embeddings:  embeddings,
		Stimuli:     stimuli,
		Options:     opts,
		Header:      header,
		Parallelism: cfg.Parallelism,
		Sink:        sink,
		Strict:      cfg.Strict,
		Logger:      logger,
	}
	err = batch.Run(ctx)
	if err == nil || cfg.Strict || ctx.Err() != nil {
		return err
	}
	// Faulty lines and tables were logged as they were skipped.
	logger.Warn("run finished with faults")
	return nil
}
