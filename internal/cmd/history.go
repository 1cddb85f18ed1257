package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/earoncy/cyberdiag/internal/store"
)

// NewHistoryCommand creates the assessment history command group.
func NewHistoryCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and export archived assessment results",
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Path to the history database (default: under the cyberdiag home)")

	cmd.AddCommand(newHistoryListCommand(&dbPath))
	cmd.AddCommand(newHistoryShowCommand(&dbPath))
	cmd.AddCommand(newHistoryExportCommand(&dbPath))
	cmd.AddCommand(newHistoryPurgeCommand(&dbPath))

	return cmd
}

func openHistory(dbPath string) (*store.History, error) {
	a, err := newApp("")
	if err != nil {
		return nil, err
	}
	path, err := a.historyPath(dbPath)
	if err != nil {
		return nil, err
	}
	return store.OpenHistory(path)
}

func newHistoryListCommand(dbPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived assessments, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := openHistory(*dbPath)
			if err != nil {
				return err
			}
			defer history.Close()

			records, err := history.List(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No archived assessments.")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(out, "%s  %s  %3d%%  %-10s  %s\n",
					rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), rec.Percent, rec.Level, rec.Organization)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries (0 = all)")

	return cmd
}

func newHistoryShowCommand(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one archived assessment as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := openHistory(*dbPath)
			if err != nil {
				return err
			}
			defer history.Close()

			rec, err := history.Get(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
}

func newHistoryExportCommand(dbPath *string) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export archived assessments to JSON or CSV",
		Long: `Export the assessment history for external analysis or backup.
If no output file is specified, data is written to stdout.

Supported formats:
  - json: JSON array of assessment records
  - csv: CSV with headers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("invalid format %q: format must be 'json' or 'csv'", format)
			}

			history, err := openHistory(*dbPath)
			if err != nil {
				return err
			}
			defer history.Close()

			records, err := history.List(0)
			if err != nil {
				return err
			}
			// Empty history exports as [] rather than null.
			if records == nil {
				records = make([]*store.AssessmentRecord, 0)
			}

			var writer io.Writer = cmd.OutOrStdout()
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
				return exportHistoryJSON(writer, records)
			default:
				return exportHistoryCSV(writer, records)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format (json|csv)")
	cmd.Flags().StringVar(&output, "output", "", "Output file path (stdout if not specified)")

	return cmd
}

func exportHistoryJSON(writer io.Writer, records []*store.AssessmentRecord) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return nil
}

func exportHistoryCSV(writer io.Writer, records []*store.AssessmentRecord) error {
	w := csv.NewWriter(writer)
	header := []string{"id", "created_at", "organization", "country", "percent", "level"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			rec.Organization,
			rec.Country,
			strconv.Itoa(rec.Percent),
			string(rec.Level),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func newHistoryPurgeCommand(dbPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every archived assessment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to purge without --force")
			}
			history, err := openHistory(*dbPath)
			if err != nil {
				return err
			}
			defer history.Close()

			if err := history.Purge(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History purged.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion")

	return cmd
}
