package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/ngramlex/cli/internal/config"
	"github.com/ngramlex/cli/internal/report"
	"github.com/ngramlex/cli/internal/store"
	"github.com/ngramlex/cli/internal/subtlex"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively configure ngramlex in the current directory",
		Long:  "Initialize ngramlex by choosing a dataset file, weight column, and report defaults, then set up the import cache.",
		RunE:  runInit,
	}

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.New()

	topKStr := strconv.Itoa(cfg.TopK)
	var columnOptions []huh.Option[string]
	for _, name := range subtlex.NumericColumns() {
		columnOptions = append(columnOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dataset file").
				Description("Path to the SUBTLEX CSV file to analyze.").
				Placeholder("subtlex.csv").
				Value(&cfg.DatasetPath),
			huh.NewSelect[string]().
				Title("Weight column").
				Description("Numeric column whose values weight each word's n-grams.").
				Options(columnOptions...).
				Value(&cfg.Column),
			huh.NewInput().
				Title("Top K").
				Description(fmt.Sprintf("How many n-grams to show per length [%d-%d].",
					report.MinTopK, report.MaxTopK)).
				Value(&topKStr).
				Validate(func(s string) error {
					k, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("not a number: %q", s)
					}
					if k < report.MinTopK || k > report.MaxTopK {
						return fmt.Errorf("must be in [%d, %d]", report.MinTopK, report.MaxTopK)
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// Validated by the form.
	cfg.TopK, _ = strconv.Atoi(topKStr)

	if err := config.Save(cfg, config.Dir); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	cmd.Printf("%s Configuration saved to: %s\n",
		successStyle.Render("✓"), config.ConfigPath(config.Dir))

	s, err := store.Open(store.Path(config.Dir))
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer func() { _ = s.Close() }()
	cmd.Printf("%s Import cache initialized at: %s\n",
		successStyle.Render("✓"), store.Path(config.Dir))

	cmd.Printf("\n%s Initialization complete!\n", successStyle.Render("✓"))
	cmd.Println("Next steps:")
	cmd.Println("  - Run 'ngramlex analyze' to analyze the configured dataset")
	cmd.Println("  - Add '--json' for the full tables in JSON")

	return nil
}
