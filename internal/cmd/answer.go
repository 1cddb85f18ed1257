package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/earoncy/cyberdiag/internal/catalog"
	"github.com/earoncy/cyberdiag/internal/session"
)

// NewAnswerCommand creates the non-interactive answer command, used for
// scripted runs and quick corrections without entering the questionnaire.
func NewAnswerCommand() *cobra.Command {
	var sessionFile string

	cmd := &cobra.Command{
		Use:   "answer <section> <question-id> <option>...",
		Short: "Record an answer without the interactive questionnaire",
		Long: `Record an answer directly. Options are given by 1-based position or by
their exact label. For multi-choice questions each given option is
toggled; for single-choice questions the answer is replaced.

Examples:
  cyberdiag answer governance gov1 3
  cyberdiag answer governance gov3 1 2 4
  cyberdiag answer governance gov2 "Oui, un responsable dédié"`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnswer(sessionFile, args[0], args[1], args[2:])
		},
	}

	cmd.AddCommand(newAnswerOrgCommand(&sessionFile))
	cmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "Path to the session document (default: under the cyberdiag home)")

	return cmd
}

func newAnswerOrgCommand(sessionFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "org <field> <value>",
		Short: "Set an organization profile field",
		Long: `Set one of the organization profile fields: name, type, size, sector,
country.

Example:
  cyberdiag answer org name "ONG Lumière"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnswerOrg(*sessionFile, args[0], args[1])
		},
	}
}

func runAnswer(sessionFile, sectionID, questionID string, options []string) error {
	a, err := newApp(sessionFile)
	if err != nil {
		return err
	}
	sess, err := a.loadOrNewSession()
	if err != nil {
		return err
	}

	q, ok := a.cat.Question(sectionID, questionID)
	if !ok {
		return fmt.Errorf("unknown question %s/%s", sectionID, questionID)
	}
	if q.Mode == catalog.ModeSingle && len(options) > 1 {
		return fmt.Errorf("question %s accepts a single option", questionID)
	}

	for _, opt := range options {
		label, err := resolveOption(q, opt)
		if err != nil {
			return err
		}
		sess.Select(sectionID, questionID, label)
	}
	sess.Validate(sectionID)

	return a.store.Save(sess)
}

// resolveOption accepts a 1-based option position or an exact label.
func resolveOption(q catalog.Question, opt string) (string, error) {
	if n, err := strconv.Atoi(opt); err == nil {
		if n < 1 || n > len(q.Options) {
			return "", fmt.Errorf("question %s has no option %d (1-%d)", q.ID, n, len(q.Options))
		}
		return q.Options[n-1].Label, nil
	}
	for _, o := range q.Options {
		if o.Label == opt {
			return o.Label, nil
		}
	}
	return "", fmt.Errorf("question %s has no option %q", q.ID, opt)
}

func runAnswerOrg(sessionFile, field, value string) error {
	a, err := newApp(sessionFile)
	if err != nil {
		return err
	}
	sess, err := a.loadOrNewSession()
	if err != nil {
		return err
	}

	if !sess.SetOrgField(field, value) {
		return fmt.Errorf("unknown profile field %q (expected one of %v)", field, session.OrgFields)
	}
	sess.Validate(catalog.SectionOrganization)
	return a.store.Save(sess)
}
