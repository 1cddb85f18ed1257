package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewResetCommand creates the command wiping the persisted diagnostic.
func NewResetCommand() *cobra.Command {
	var (
		sessionFile string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the current diagnostic and start over",
		Long:  "Delete the persisted session document. The next run starts from an empty diagnostic. The assessment history is kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, sessionFile, force)
		},
	}

	cmd.Flags().StringVar(&sessionFile, "session-file", "", "Path to the session document (default: under the cyberdiag home)")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

func runReset(cmd *cobra.Command, sessionFile string, force bool) error {
	a, err := newApp(sessionFile)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if !force {
		fmt.Fprint(out, "Supprimer le diagnostic en cours ? (oui/non) : ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "oui" && answer != "o" && answer != "yes" && answer != "y" {
			fmt.Fprintln(out, "Annulé.")
			return nil
		}
	}

	if err := a.store.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Diagnostic réinitialisé.")
	return nil
}
