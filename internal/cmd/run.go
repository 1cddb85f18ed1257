package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/earoncy/cyberdiag/internal/catalog"
	"github.com/earoncy/cyberdiag/internal/display"
	"github.com/earoncy/cyberdiag/internal/session"
	"github.com/earoncy/cyberdiag/internal/store"
)

// NewRunCommand creates the interactive questionnaire command.
func NewRunCommand() *cobra.Command {
	var sessionFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start or resume the interactive diagnostic",
		Long: `Run the questionnaire in the terminal. Progress is saved automatically
(with a short debounce) so the diagnostic can be resumed at any time.

Inside the questionnaire:
  <n°>        answer question n° (or edit profile field n°)
  n, next     finish the section and move forward
  b, back     go to the previous section
  g <n°>      jump to section n° (forward jumps are gated)
  h, help     show this help
  q, quit     save and leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(sessionFile, os.Stdin, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&sessionFile, "session-file", "", "Path to the session document (default: under the cyberdiag home)")

	return cmd
}

func runInteractive(sessionFile string, in io.Reader, out io.Writer) error {
	a, err := newApp(sessionFile)
	if err != nil {
		return err
	}
	sess, err := a.loadOrNewSession()
	if err != nil {
		return err
	}

	saver := store.NewSaver(a.store, sess, a.cfg.SaveDelay, a.log)
	defer saver.Close()

	reader := bufio.NewReader(in)
	fmt.Fprintln(out, "Diagnostic de maturité cybersécurité — tapez 'h' pour l'aide.")

	done := false
	for !done {
		renderSection(out, a.cat, sess)
		fmt.Fprint(out, "\n> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the run; pending state is flushed below.
			fmt.Fprintln(out)
			break
		}

		switch input := strings.TrimSpace(line); {
		case input == "":
		case input == "q" || input == "quit":
			done = true
		case input == "h" || input == "help":
			printRunHelp(out)
		case input == "n" || input == "next":
			advance(out, sess)
		case input == "b" || input == "back":
			sess.Retreat()
		case strings.HasPrefix(input, "g "):
			jumpToSection(out, a.cat, sess, strings.TrimSpace(input[2:]))
		default:
			num, convErr := strconv.Atoi(input)
			if convErr != nil {
				fmt.Fprintf(out, "Commande inconnue : %q (tapez 'h' pour l'aide)\n", input)
				continue
			}
			answerPrompt(out, reader, a.cat, sess, num)
		}
	}

	fmt.Fprintln(out, "Session enregistrée.")
	return saver.Flush()
}

func printRunHelp(out io.Writer) {
	fmt.Fprintln(out, `Commandes :
  <n°>        répondre à la question n° (ou modifier le champ n°)
  n, next     terminer la section et passer à la suivante
  b, back     revenir à la section précédente
  g <n°>      aller à la section n° (l'avance est limitée)
  q, quit     enregistrer et quitter`)
}

// renderSection prints the active section with its questions (or profile
// fields) and the currently recorded answers.
func renderSection(out io.Writer, cat *catalog.Catalog, sess *session.Session) {
	sec, _ := cat.Section(sess.Current)
	pos := cat.Index(sess.Current) + 1
	display.SectionHeader(out, pos, len(cat.Sections()), sec.Title, sess.IsSectionComplete(sec.ID))

	if sec.ID == catalog.SectionOrganization {
		for i, field := range session.OrgFields {
			value := sess.Org.Field(field)
			if value == "" {
				value = "(non renseigné)"
			}
			fmt.Fprintf(out, "  %d. %s : %s\n", i+1, session.OrgFieldLabel(field), value)
		}
		return
	}

	for i, q := range sec.Questions {
		a, _ := sess.Responses.Get(sec.ID, q.ID)
		fmt.Fprintf(out, "  %d. %s %s\n", i+1, display.Checkbox(!a.Empty()), q.Prompt)
		for _, label := range a.Labels {
			fmt.Fprintf(out, "        → %s\n", label)
		}
	}
}

func advance(out io.Writer, sess *session.Session) {
	ok, missing := sess.Advance()
	if !ok {
		display.Warning{
			Title:      "Section incomplète",
			Items:      missing,
			Suggestion: "Répondez aux questions manquantes avant de continuer.",
		}.Render(out)
		return
	}
	if sess.ReportReady() {
		fmt.Fprintln(out, "Toutes les sections sont terminées. Lancez 'cyberdiag report' pour générer le rapport.")
	}
}

func jumpToSection(out io.Writer, cat *catalog.Catalog, sess *session.Session, arg string) {
	num, err := strconv.Atoi(arg)
	if err != nil || num < 1 || num > len(cat.Sections()) {
		fmt.Fprintf(out, "Section invalide : %q (1-%d)\n", arg, len(cat.Sections()))
		return
	}
	target := cat.Sections()[num-1].ID
	if !sess.NavigateTo(target) {
		fmt.Fprintln(out, "Cette section n'est pas encore accessible : terminez d'abord les sections précédentes.")
	}
}

// answerPrompt runs the answer sub-dialog for question (or profile field)
// number num of the active section.
func answerPrompt(out io.Writer, reader *bufio.Reader, cat *catalog.Catalog, sess *session.Session, num int) {
	if sess.Current == catalog.SectionOrganization {
		editOrgField(out, reader, sess, num)
		return
	}

	questions := cat.Questions(sess.Current)
	if num < 1 || num > len(questions) {
		fmt.Fprintf(out, "Question invalide : %d (1-%d)\n", num, len(questions))
		return
	}
	q := questions[num-1]
	current, _ := sess.Responses.Get(sess.Current, q.ID)

	fmt.Fprintf(out, "\n%s\n", q.Prompt)
	for i, o := range q.Options {
		fmt.Fprintf(out, "  %d. %s %s\n", i+1, display.Checkbox(current.Has(o.Label)), o.Label)
	}
	if q.Mode == catalog.ModeMulti {
		fmt.Fprint(out, "Choix à (dé)cocher, séparés par des espaces : ")
	} else {
		fmt.Fprint(out, "Votre choix : ")
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	for _, token := range strings.Fields(strings.TrimSpace(line)) {
		choice, err := strconv.Atoi(token)
		if err != nil || choice < 1 || choice > len(q.Options) {
			fmt.Fprintf(out, "Choix ignoré : %q\n", token)
			continue
		}
		sess.Select(sess.Current, q.ID, q.Options[choice-1].Label)
		if q.Mode == catalog.ModeSingle {
			break
		}
	}
}

func editOrgField(out io.Writer, reader *bufio.Reader, sess *session.Session, num int) {
	if num < 1 || num > len(session.OrgFields) {
		fmt.Fprintf(out, "Champ invalide : %d (1-%d)\n", num, len(session.OrgFields))
		return
	}
	field := session.OrgFields[num-1]
	fmt.Fprintf(out, "%s : ", session.OrgFieldLabel(field))

	line, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	if value := strings.TrimSpace(line); value != "" {
		sess.SetOrgField(field, value)
	}
}
