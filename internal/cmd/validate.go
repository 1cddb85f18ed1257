package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/earoncy/cyberdiag/internal/catalog"
)

// NewValidateCommand creates the catalog integrity check command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the questionnaire data integrity",
		Long: `Verify the embedded questionnaire: unique identifiers, valid answer
modes, non-negative points, and section maxima matching the published
reference values. Intended for use after editing the questionnaire data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd)
		},
	}
}

func runValidate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	// Load runs the full integrity check and fails on any violation.
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	questions := 0
	fmt.Fprintln(out, "Section maxima:")
	for _, sec := range cat.FunctionalSections() {
		questions += len(sec.Questions)
		fmt.Fprintf(out, "  %-20s %6.2f (expected %6.2f, %d questions)\n",
			sec.ID, cat.SectionMax(sec.ID), catalog.ExpectedSectionMax[sec.ID], len(sec.Questions))
	}
	fmt.Fprintf(out, "  %-20s %6.2f (expected %6.2f)\n", "total", cat.TotalMax(), catalog.ExpectedTotalMax)
	fmt.Fprintf(out, "\nCatalog OK: %d sections, %d questions\n", len(cat.Sections()), questions)
	return nil
}
