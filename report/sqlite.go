package report

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/viant/ctxsim/pipeline"
	"github.com/viant/ctxsim/vector"
)

// schema creates the similarities table. Vectors are stored with
// vector.EncodeEmbedding so that vec_cosine(context_vec, target_vec)
// recomputes score.
var schema = []string{`
CREATE TABLE IF NOT EXISTS similarities (
	run_id      TEXT    NOT NULL,
	stimuli     TEXT    NOT NULL,
	embeddings  TEXT    NOT NULL,
	line        INTEGER NOT NULL,
	sentence    TEXT    NOT NULL,
	target      TEXT    NOT NULL,
	score       REAL,
	context_vec BLOB,
	target_vec  BLOB
)`,
	`CREATE INDEX IF NOT EXISTS similarities_run ON similarities(run_id, stimuli, embeddings)`,
}

// SQLite appends every table of a run to the similarities table. Each
// SQLite value carries its own run id.
type SQLite struct {
	db     *sql.DB
	runID  string
	logger *slog.Logger
}

var _ pipeline.Sink = (*SQLite)(nil)

// NewSQLite ensures the schema exists in db and starts a new run.
func NewSQLite(ctx context.Context, db *sql.DB, logger *slog.Logger) (*SQLite, error) {
	if db == nil {
		return nil, fmt.Errorf("report: db is nil")
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("report: ensure schema: %w", err)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &SQLite{db: db, runID: uuid.New().String(), logger: logger}
	logger.Info("sqlite run started", "run_id", s.runID)
	return s, nil
}

// RunID returns the identifier stored with every row written by s.
func (s *SQLite) RunID() string { return s.runID }

// Write inserts the rows of table in a single transaction.
func (s *SQLite) Write(ctx context.Context, table pipeline.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("report: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO similarities(
		run_id, stimuli, embeddings, line, sentence, target, score, context_vec, target_vec
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("report: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range table.Rows {
		var score sql.NullFloat64
		if row.Result.Defined {
			score = sql.NullFloat64{Float64: row.Result.Value, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			s.runID, table.StimuliPath, table.EmbeddingsPath, row.Line,
			row.Sentence, row.Target, score,
			blob(row.ContextVector), blob(row.TargetVector),
		); err != nil {
			return fmt.Errorf("report: insert %s:%d: %w", table.StimuliPath, row.Line, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("report: commit: %w", err)
	}
	s.logger.Debug("sqlite rows written",
		"run_id", s.runID,
		"stimuli", table.StimuliPath,
		"embeddings", table.EmbeddingsPath,
		"rows", len(table.Rows))
	return nil
}

// blob encodes v, or returns nil so that a missing vector is stored as NULL.
func blob(v []float64) any {
	if len(v) == 0 {
		return nil
	}
	return vector.EncodeEmbedding(v)
}
