package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Version is the version of the ngramlex CLI.
// Update this constant manually on every release.
const Version = "v0.1.0"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// NewRootCmd creates the root command for ngramlex.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ngramlex",
		Short:   "Weighted n-gram analysis of word frequency datasets",
		Long:    "Ngramlex analyzes a SUBTLEX-style weighted lexicon, counting frequency-weighted n-grams over phonetically normalized words.",
		Version: Version,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newDatasetsCmd())

	return rootCmd
}
