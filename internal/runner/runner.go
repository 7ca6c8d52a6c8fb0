// Package runner is the run driver: it assembles the initial pipeline state
// from an input file, executes the workflow to completion, and writes the
// surviving artifacts to disk. It is the only layer touching file I/O.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/pipeline"
)

// Options configures a single pipeline run.
type Options struct {
	InputPath string // raw product JSON
	Tone      string // style directive for all generators
	OutDir    string // artifact output directory
	Logger    *slog.Logger
}

// Summary reports the terminal state of a run. Partial success — some
// artifacts present, others null — is a valid outcome, not an error.
type Summary struct {
	RunID          string `json:"run_id"`
	RevisionCount  int    `json:"revision_count"`
	FAQWritten     bool   `json:"faq_written"`
	LandingWritten bool   `json:"landing_written"`
	CompWritten    bool   `json:"comparison_written"`
	LastError      string `json:"last_error,omitempty"`
}

// Artifact output filenames.
const (
	FAQFile        = "faq.json"
	LandingFile    = "landing_page.json"
	ComparisonFile = "comparison_page.json"
)

// Run executes one full pipeline invocation. Each invocation is a fresh,
// isolated run; no state is shared across calls.
func Run(ctx context.Context, provider llm.Provider, opts Options) (*Summary, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tone == "" {
		opts.Tone = "Professional"
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	raw, err := loadInput(opts.InputPath)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := opts.Logger.With("run_id", runID)

	state := &pipeline.State{
		RawInput: raw,
		Tone:     opts.Tone,
		Logger:   log,
	}

	log.Info("starting content pipeline", "input", opts.InputPath, "tone", opts.Tone)
	if err := pipeline.Execute(ctx, provider, state); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:         runID,
		RevisionCount: state.RevisionCount,
		LastError:     state.LastError,
	}

	summary.FAQWritten = writeArtifact(log, opts.OutDir, FAQFile, state.FAQPage)
	summary.LandingWritten = writeArtifact(log, opts.OutDir, LandingFile, state.LandingPage)
	summary.CompWritten = writeArtifact(log, opts.OutDir, ComparisonFile, state.ComparisonPage)

	log.Info("pipeline finished",
		"revisions", summary.RevisionCount,
		"faq", summary.FAQWritten,
		"landing", summary.LandingWritten,
		"comparison", summary.CompWritten)
	return summary, nil
}

func loadInput(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}
	return raw, nil
}

// writeArtifact serializes a non-nil artifact to outDir/name and reports
// whether it was written. Nil artifacts are skipped with a log line.
func writeArtifact[T any](log *slog.Logger, outDir, name string, artifact *T) bool {
	if artifact == nil {
		log.Info("skipping artifact, generation failed or stopped early", "file", name)
		return false
	}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		log.Error("marshal artifact", "file", name, "error", err)
		return false
	}
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error("write artifact", "file", path, "error", err)
		return false
	}
	log.Info("artifact written", "file", path)
	return true
}
