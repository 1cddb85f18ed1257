package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for cyberdiag
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cyberdiag",
		Short: "Cybersecurity maturity self-assessment for NGOs",
		Long: `Cyberdiag runs the E-ARONCY cybersecurity maturity diagnostic: a
questionnaire covering governance, awareness, access control,
infrastructure, incident response and resilience.

Answers are saved as you go. Once every section is complete, the report
command computes the maturity score and level and prints tailored
recommendations.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewAnswerCommand())
	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewResetCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
