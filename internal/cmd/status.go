package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/earoncy/cyberdiag/internal/scoring"
)

// NewStatusCommand creates the progress overview command.
func NewStatusCommand() *cobra.Command {
	var sessionFile string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show diagnostic progress",
		Long:  "Show which sections are complete, the active section and what remains to answer.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, sessionFile)
		},
	}

	cmd.Flags().StringVar(&sessionFile, "session-file", "", "Path to the session document (default: under the cyberdiag home)")

	return cmd
}

func runStatus(cmd *cobra.Command, sessionFile string) error {
	a, err := newApp(sessionFile)
	if err != nil {
		return err
	}
	sess, err := a.loadOrNewSession()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(out, "Sections du diagnostic :")
	for i, sec := range a.cat.Sections() {
		marker := "  "
		switch {
		case sess.Completed[sec.ID]:
			marker = green.Sprint("✓ ")
		case sess.IsSectionComplete(sec.ID):
			// Answered but not yet validated through the questionnaire.
			marker = "• "
		}
		current := ""
		if sec.ID == sess.Current {
			current = cyan.Sprint("  ← section active")
		}
		fmt.Fprintf(out, "  %d. %s%s%s\n", i+1, marker, sec.Title, current)
	}

	if missing := sess.MissingPrompts(sess.Current); len(missing) > 0 {
		fmt.Fprintln(out, "\nÀ compléter dans la section active :")
		for _, prompt := range missing {
			fmt.Fprintf(out, "  - %s\n", prompt)
		}
	}

	if sess.ReportReady() {
		result := scoring.Score(a.cat, sess.Responses)
		fmt.Fprintf(out, "\nDiagnostic terminé — score provisoire %d%%. Lancez 'cyberdiag report'.\n", result.Percent)
	}
	return nil
}
