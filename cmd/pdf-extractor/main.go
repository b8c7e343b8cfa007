package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/young-ok-sin/pdf-extractor/internal/app"
	"github.com/young-ok-sin/pdf-extractor/internal/preset"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	output, _ := cmd.Flags().GetString("output")
	presetName, _ := cmd.Flags().GetString("preset")
	presetFile, _ := cmd.Flags().GetString("preset-file")
	minRaw, _ := cmd.Flags().GetInt("min-raw-length")
	minCleaned, _ := cmd.Flags().GetInt("min-cleaned-length")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	if minRaw <= 0 {
		return app.Config{}, fmt.Errorf("--min-raw-length must be a positive integer, got %d", minRaw)
	}
	if minCleaned <= 0 {
		return app.Config{}, fmt.Errorf("--min-cleaned-length must be a positive integer, got %d", minCleaned)
	}

	var p preset.Preset
	if presetFile != "" {
		loaded, err := preset.Load(presetFile)
		if err != nil {
			return app.Config{}, err
		}
		p = loaded
	} else {
		builtin, ok := preset.Lookup(presetName)
		if !ok {
			return app.Config{}, fmt.Errorf("unknown preset %q (built-ins: paper, book)", presetName)
		}
		p = builtin
	}

	return app.Config{
		InputDir:         args[0],
		OutputPath:       output,
		Preset:           p,
		MinRawLength:     minRaw,
		MinCleanedLength: minCleaned,
		Quiet:            quiet,
		Debug:            debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "pdf-extractor [input-folder]",
	Short: "Extract clean sentences from PDF books and papers",
	Long: `pdf-extractor walks a folder of PDF documents, extracts per-page text,
normalizes it into clean natural-language sentences, filters out low-quality
or non-prose documents, and writes a tabular sentence dataset alongside a log
of excluded documents with reasons.

The document type (book/paper/unknown) is inferred from the name of the
immediate parent folder of each file.

Examples:
  pdf-extractor ./data -o output/sentences.csv
  pdf-extractor ./data -o output/sentences.xlsx --preset book
  pdf-extractor ./data --preset-file corpus.yaml --min-raw-length 35`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(config.Debug)

		// context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		stats, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}

		fmt.Printf("processed documents: %d\n", stats.Processed)
		fmt.Printf("excluded documents:  %d\n", stats.Excluded)
		fmt.Printf("total attempted:     %d\n", stats.Attempted)

		return nil
	},
}

func init() {
	rootCmd.Flags().StringP("output", "o", "output/sentences.csv", "Output path for the sentence table (.csv or .xlsx)")

	// preset selection: a built-in name or a YAML file, not both
	rootCmd.Flags().String("preset", "paper", "Built-in cleaning preset (paper or book)")
	rootCmd.Flags().String("preset-file", "", "Load a custom cleaning preset from a YAML file")
	rootCmd.MarkFlagsMutuallyExclusive("preset", "preset-file")

	// length thresholds, applied before and after normalization
	rootCmd.Flags().Int("min-raw-length", 35, "Minimum sentence length before normalization, in characters")
	rootCmd.Flags().Int("min-cleaned-length", 20, "Minimum sentence length after normalization, in characters")

	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress progress display")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
