// Package config reads ctxsim run files and resolves the stimulus and
// embedding inputs they name.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/viant/ctxsim/embedding"
	"github.com/viant/ctxsim/pipeline"
	"github.com/viant/ctxsim/resolve"
	"github.com/viant/ctxsim/stimulus"
)

// Config is a scoring run.
type Config struct {
	// Stimuli is a single stimulus file, used when StimuliList is empty or
	// unreadable.
	Stimuli string `yaml:"stimuli,omitempty"`

	// StimuliList is a file listing one stimulus path per line.
	StimuliList string `yaml:"stimuli_list,omitempty"`

	// Embeddings is a single embedding table, used when EmbeddingsList is
	// empty or unreadable.
	Embeddings string `yaml:"embeddings,omitempty"`

	// EmbeddingsList is a file listing one embedding path per line.
	EmbeddingsList string `yaml:"embeddings_list,omitempty"`

	// OutputDirectory receives one TSV report per (stimuli, embeddings) pair.
	OutputDirectory string `yaml:"output_directory,omitempty"`

	FollowingContext     bool `yaml:"following_context,omitempty"`
	TrySubwordsInContext bool `yaml:"try_subwords_in_context,omitempty"`
	IgnoreOOVInContext   bool `yaml:"ignore_oov_in_context,omitempty"`
	TrySubwordsInTarget  bool `yaml:"try_subwords_in_target,omitempty"`
	IgnoreOOVInTarget    bool `yaml:"ignore_oov_in_target,omitempty"`
	Uncased              bool `yaml:"uncased,omitempty"`

	// Header is auto, yes or no.
	Header string `yaml:"header,omitempty"`

	// Collapse is all or literal.
	Collapse string `yaml:"collapse,omitempty"`

	// Parallelism bounds how many embedding tables are scored at once.
	Parallelism int `yaml:"parallelism,omitempty"`

	// SQLite, when set, is a database file that also receives every row.
	SQLite string `yaml:"sqlite,omitempty"`

	Strict bool `yaml:"strict,omitempty"`
}

// Load reads a run file. Relative paths in it are resolved against the
// directory holding the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for _, p := range []*string{
		&cfg.Stimuli, &cfg.StimuliList,
		&cfg.Embeddings, &cfg.EmbeddingsList,
		&cfg.OutputDirectory, &cfg.SQLite,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg, nil
}

// Save writes cfg as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks that the run names its inputs and its output.
func (c *Config) Validate() error {
	if c.Stimuli == "" && c.StimuliList == "" {
		return fmt.Errorf("config: stimuli or stimuli_list is required")
	}
	if c.Embeddings == "" && c.EmbeddingsList == "" {
		return fmt.Errorf("config: embeddings or embeddings_list is required")
	}
	if c.OutputDirectory == "" {
		return fmt.Errorf("config: output_directory is required")
	}
	if _, err := embedding.ParseHeaderMode(c.Header); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := stimulus.ParseCollapseMode(c.Collapse); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("config: parallelism must not be negative, got %d", c.Parallelism)
	}
	return nil
}

// Options maps the run onto the scoring options.
func (c *Config) Options() (pipeline.Options, error) {
	collapse, err := stimulus.ParseCollapseMode(c.Collapse)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("config: %w", err)
	}
	return pipeline.Options{
		CaseFold:         c.Uncased,
		FollowingContext: c.FollowingContext,
		Collapse:         collapse,
		Context:          resolve.Policy{TrySubwords: c.TrySubwordsInContext, IgnoreOOV: c.IgnoreOOVInContext},
		Target:           resolve.Policy{TrySubwords: c.TrySubwordsInTarget, IgnoreOOV: c.IgnoreOOVInTarget},
	}, nil
}

// HeaderMode returns the parsed header mode.
func (c *Config) HeaderMode() (embedding.HeaderMode, error) {
	mode, err := embedding.ParseHeaderMode(c.Header)
	if err != nil {
		return mode, fmt.Errorf("config: %w", err)
	}
	return mode, nil
}

// StimuliPaths returns the stimulus files of the run.
func (c *Config) StimuliPaths(logger *slog.Logger) ([]string, error) {
	return paths("stimuli", c.StimuliList, c.Stimuli, logger)
}

// EmbeddingPaths returns the embedding tables of the run.
func (c *Config) EmbeddingPaths(logger *slog.Logger) ([]string, error) {
	return paths("embeddings", c.EmbeddingsList, c.Embeddings, logger)
}

// paths prefers the list file and falls back to the single path when the
// list cannot be read.
func paths(kind, list, single string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if list != "" {
		entries, err := ReadList(list)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err == nil {
			err = fmt.Errorf("config: %s is empty", list)
		}
		if single == "" {
			return nil, err
		}
		logger.Warn("list unreadable, using single path", "kind", kind, "list", list, "path", single, "error", err)
	}
	if single == "" {
		return nil, fmt.Errorf("config: no %s specified", kind)
	}
	return []string{single}, nil
}

// ReadList reads a list file: one path per line, blank lines dropped.
// Relative entries are taken as given, relative to the working directory.
func ReadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read list %s: %w", path, err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}
