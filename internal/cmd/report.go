package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/earoncy/cyberdiag/internal/report"
	"github.com/earoncy/cyberdiag/internal/scoring"
	"github.com/earoncy/cyberdiag/internal/session"
	"github.com/earoncy/cyberdiag/internal/store"
)

// NewReportCommand creates the report generation command.
func NewReportCommand() *cobra.Command {
	var (
		sessionFile string
		dbPath      string
		format      string
		output      string
		partial     bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Score the diagnostic and print the maturity report",
		Long: `Compute the maturity score from the recorded answers, derive the
maturity level and print the report with its recommendations.

By default the report requires every section to be complete. Use
--partial to score an unfinished diagnostic (unanswered questions count
for zero). Complete reports are archived in the assessment history.

Supported formats: text, markdown, html, json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, sessionFile, dbPath, format, output, partial)
		},
	}

	cmd.Flags().StringVar(&sessionFile, "session-file", "", "Path to the session document (default: under the cyberdiag home)")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to the history database (default: under the cyberdiag home)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text|markdown|html|json)")
	cmd.Flags().StringVar(&output, "output", "", "Output file path (stdout if not specified)")
	cmd.Flags().BoolVar(&partial, "partial", false, "Score an unfinished diagnostic")

	return cmd
}

func runReport(cmd *cobra.Command, sessionFile, dbPath, format, output string, partial bool) error {
	switch format {
	case "text", "markdown", "md", "html", "json":
	default:
		return fmt.Errorf("invalid format %q: expected text, markdown, html or json", format)
	}

	a, err := newApp(sessionFile)
	if err != nil {
		return err
	}
	sess, err := a.store.Load()
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("no diagnostic in progress: run 'cyberdiag run' first")
	}

	complete := sess.ReportReady()
	if !complete && !partial {
		var pending []string
		for _, sec := range a.cat.FunctionalSections() {
			if !sess.Completed[sec.ID] {
				pending = append(pending, sec.Title)
			}
		}
		return fmt.Errorf("diagnostic incomplete (remaining: %s); finish it or use --partial",
			strings.Join(pending, ", "))
	}

	result := scoring.Score(a.cat, sess.Responses)
	rep := report.New(sess, result, !complete)

	var writer io.Writer = cmd.OutOrStdout()
	toTerminal := output == ""
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	switch format {
	case "json":
		err = rep.WriteJSON(writer)
	case "markdown", "md":
		_, err = io.WriteString(writer, rep.Markdown())
	case "html":
		var page []byte
		if page, err = rep.HTML(); err == nil {
			_, err = writer.Write(page)
		}
	default:
		rep.RenderTerminal(writer, toTerminal && !a.cfg.NoColor)
	}
	if err != nil {
		return err
	}

	// Completed assessments go to the history archive; a failure there
	// must not void the report the user just generated.
	if complete {
		if archiveErr := archiveResult(a, dbPath, sess, result, rep); archiveErr != nil {
			a.log.Warnf("could not archive assessment: %v", archiveErr)
		}
	}
	return nil
}

func archiveResult(a *app, dbPath string, sess *session.Session, result scoring.Result, rep *report.Report) error {
	path, err := a.historyPath(dbPath)
	if err != nil {
		return err
	}
	history, err := store.OpenHistory(path)
	if err != nil {
		return err
	}
	defer history.Close()

	rec, err := history.Append(sess, result, rep.Level)
	if err != nil {
		return err
	}
	a.log.Debugf("assessment archived as %s", rec.ID)
	return nil
}
