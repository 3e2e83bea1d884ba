package cli

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ngramlex/cli/internal/config"
	"github.com/ngramlex/cli/internal/ngram"
	"github.com/ngramlex/cli/internal/report"
	"github.com/ngramlex/cli/internal/store"
	"github.com/ngramlex/cli/internal/subtlex"
	"github.com/spf13/cobra"
)

// progressEvery is how often word-count progress is reported to stderr.
const progressEvery = 10000

// analyzeOptions are the resolved settings for one analysis run: config
// file values with CLI flag overrides applied.
type analyzeOptions struct {
	datasetPath string
	column      string
	topK        int
	jsonOut     bool
	noCache     bool
}

func newAnalyzeCmd() *cobra.Command {
	var (
		datasetPath string
		column      string
		topK        int
		jsonOut     bool
		noCache     bool
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the n-gram analysis and print a report",
		Long:  "Analyze loads a SUBTLEX CSV file, accumulates frequency-weighted n-grams over normalized words, and prints a top-K report or the full tables as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrDefaults()

			opts := analyzeOptions{
				datasetPath: cfg.DatasetPath,
				column:      cfg.Column,
				topK:        cfg.TopK,
				jsonOut:     cfg.JSON,
				noCache:     cfg.NoCache,
			}
			if cmd.Flags().Changed("subtlex") {
				opts.datasetPath = datasetPath
			}
			if cmd.Flags().Changed("column") {
				opts.column = column
			}
			if cmd.Flags().Changed("top") {
				opts.topK = topK
			}
			if cmd.Flags().Changed("json") {
				opts.jsonOut = jsonOut
			}
			if cmd.Flags().Changed("no-cache") {
				opts.noCache = noCache
			}

			if opts.datasetPath == "" {
				return fmt.Errorf("no dataset: pass --subtlex or run 'ngramlex init'")
			}
			if opts.topK < report.MinTopK || opts.topK > report.MaxTopK {
				return fmt.Errorf("--top must be in [%d, %d], got %d",
					report.MinTopK, report.MaxTopK, opts.topK)
			}

			if err := runAnalysis(cmd, opts); err != nil {
				return err
			}
			if watch {
				return watchAndRerun(cmd, opts)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "subtlex", "", "path to the SUBTLEX CSV file")
	cmd.Flags().StringVar(&column, "column", config.DefaultColumn, "weight column to analyze")
	cmd.Flags().IntVarP(&topK, "top", "k", config.DefaultTopK, "top K n-grams to display per length")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output results in JSON format")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the import cache")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run the analysis when the dataset file changes")

	return cmd
}

// loadConfigOrDefaults reads .ngramlex/config.yaml if present; a missing or
// unreadable config just means defaults.
func loadConfigOrDefaults() *config.Config {
	cfg, err := config.Load(config.Dir)
	if err != nil {
		return config.New()
	}
	return cfg
}

func runAnalysis(cmd *cobra.Command, opts analyzeOptions) error {
	freqs, err := loadFrequencies(cmd, opts)
	if err != nil {
		return err
	}
	cmd.PrintErrf("%s SUBTLEX words loaded: %d\n", infoStyle.Render("→"), len(freqs))

	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	sort.Strings(words)

	analyzer := ngram.NewAnalyzer()
	for _, w := range words {
		if err := analyzer.Add(w, freqs[w]); err != nil {
			return fmt.Errorf("analyze %q: %w", w, err)
		}
		if analyzer.Words()%progressEvery == 0 {
			cmd.PrintErrf("Processed %d words...\n", analyzer.Words())
		}
	}
	res := analyzer.Result()

	format := report.FormatText
	if opts.jsonOut {
		format = report.FormatJSON
	}
	return report.Render(cmd.OutOrStdout(), res, opts.topK, format)
}

// loadFrequencies returns the word-weight map for the requested dataset and
// column, going through the import cache unless it is disabled.
func loadFrequencies(cmd *cobra.Command, opts analyzeOptions) (map[string]float64, error) {
	if opts.noCache {
		return importFrequencies(cmd, opts)
	}

	sha, err := fileSHA256(opts.datasetPath)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(store.Path(config.Dir))
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	if freqs, ok, err := s.Get(sha, opts.column); err != nil {
		return nil, err
	} else if ok {
		cmd.PrintErrf("%s Using cached import for %s (%s)\n",
			successStyle.Render("✓"), opts.datasetPath, opts.column)
		return freqs, nil
	}

	freqs, err := importFrequencies(cmd, opts)
	if err != nil {
		return nil, err
	}
	if _, err := s.Put(opts.datasetPath, sha, opts.column, freqs); err != nil {
		// A failed cache write is not fatal to the analysis.
		cmd.PrintErrf("%s Warning: failed to cache import: %v\n", infoStyle.Render("!"), err)
	}
	return freqs, nil
}

func importFrequencies(cmd *cobra.Command, opts analyzeOptions) (map[string]float64, error) {
	im, err := subtlex.Load(opts.datasetPath)
	if err != nil {
		return nil, err
	}
	cmd.PrintErrf("%s Loaded SUBTLEX file: %s\n", successStyle.Render("✓"), opts.datasetPath)
	return im.Frequencies(opts.column)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash dataset: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
