package cli

import (
	"github.com/ngramlex/cli/internal/config"
	"github.com/ngramlex/cli/internal/store"
	"github.com/spf13/cobra"
)

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List cached dataset imports",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(store.Path(config.Dir))
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			datasets, err := s.Datasets()
			if err != nil {
				return err
			}
			if len(datasets) == 0 {
				cmd.Println("No cached imports.")
				return nil
			}

			for _, d := range datasets {
				cmd.Printf("%s  %s (%s, %d words, imported %s)\n",
					d.UID, d.Path, d.Column, d.WordCount, d.ImportedAt)
			}
			return nil
		},
	}
}
