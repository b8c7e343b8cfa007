// Package app contains the batch driver and the per-document pipeline,
// separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/young-ok-sin/pdf-extractor/internal/preset"
	"github.com/young-ok-sin/pdf-extractor/internal/sink"
	"github.com/young-ok-sin/pdf-extractor/internal/spinner"
)

// Config holds all configuration options for one extraction run.
type Config struct {
	InputDir         string        // folder scanned recursively for *.pdf
	OutputPath       string        // sentences file; extension selects the sink
	Preset           preset.Preset // cleaning variant
	MinRawLength     int           // minimum pre-normalization sentence length, in runes
	MinCleanedLength int           // minimum post-normalization sentence length, in runes
	Quiet            bool          // suppress progress display
	Debug            bool
}

// Stats aggregates the outcome of a run.
type Stats struct {
	Processed int // documents that produced at least one sentence
	Excluded  int // documents recorded in the exclusion stream
	Attempted int // all candidate documents
}

// Run executes a full batch: enumerate PDFs under cfg.InputDir, process each
// document independently, and write the two output streams. A missing input
// folder is the only fatal error; it is reported before any output file is
// created. One document failing never aborts the batch.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	if cfg.MinRawLength <= 0 || cfg.MinCleanedLength <= 0 {
		return Stats{}, fmt.Errorf("length thresholds must be positive (raw=%d, cleaned=%d)",
			cfg.MinRawLength, cfg.MinCleanedLength)
	}

	if info, err := os.Stat(cfg.InputDir); err != nil || !info.IsDir() {
		return Stats{}, fmt.Errorf("input folder does not exist: %s", cfg.InputDir)
	}

	files, err := findPDFs(cfg.InputDir)
	if err != nil {
		return Stats{}, fmt.Errorf("scanning input folder: %w", err)
	}
	if len(files) == 0 {
		slog.Warn("no PDF files found", "folder", cfg.InputDir)
		return Stats{}, nil
	}

	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Stats{}, fmt.Errorf("creating output directory: %w", err)
		}
	}

	out, err := sink.New(cfg.OutputPath, cfg.Preset.EmitOriginal)
	if err != nil {
		return Stats{}, err
	}
	defer out.Close()

	var sp *spinner.Spinner
	if progressEnabled(cfg.Quiet, os.Stderr) {
		sp = spinner.New(ctx, os.Stderr, "Processing documents...")
		sp.Start()
		defer sp.Stop()
	}

	p := newPipeline(cfg, out)

	var stats Stats
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		docID := documentID(path)
		if sp != nil {
			sp.UpdateMessage(fmt.Sprintf("Processing %d/%d: %s", i+1, len(files), docID))
		}

		stats.Attempted++
		count, excl := p.process(path, docID, inferDocType(path))
		if excl != nil {
			stats.Excluded++
			slog.Info("document excluded", "doc_id", docID, "reason", excl.reason)
			if err := out.WriteExclusion(sink.Exclusion{DocID: docID, Reason: excl.reason, Error: excl.detail}); err != nil {
				slog.Error("failed to record exclusion", "doc_id", docID, "error", err)
			}
			continue
		}

		stats.Processed++
		slog.Info("document completed", "doc_id", docID, "sentences", count)
	}

	return stats, nil
}

// progressEnabled reports whether the spinner should run: only when not
// quiet and w is a real terminal, so redirected runs stay clean.
func progressEnabled(quiet bool, w *os.File) bool {
	return !quiet && term.IsTerminal(int(w.Fd()))
}

// findPDFs walks root and returns every *.pdf path, case-insensitively, in
// lexical order.
func findPDFs(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// documentID derives the stable document id from the source filename stem.
func documentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// inferDocType reads the document kind off the immediate parent folder name.
func inferDocType(path string) string {
	parent := strings.ToLower(filepath.Base(filepath.Dir(path)))
	switch {
	case strings.Contains(parent, "book"):
		return "book"
	case strings.Contains(parent, "paper"):
		return "paper"
	default:
		slog.Warn("could not infer document type from folder name", "path", path)
		return "unknown"
	}
}
