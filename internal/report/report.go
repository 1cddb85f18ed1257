// Package report renders a scored diagnostic into the formats offered by
// the report command: colored terminal output, Markdown, HTML and JSON.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/yuin/goldmark"

	"github.com/earoncy/cyberdiag/internal/recommend"
	"github.com/earoncy/cyberdiag/internal/scoring"
	"github.com/earoncy/cyberdiag/internal/session"
)

// Report bundles everything the renderers need: the organization profile,
// the scored result, the maturity level and its recommendations.
type Report struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	Organization    session.OrgInfo   `json:"organization"`
	Result          scoring.Result    `json:"result"`
	Level           recommend.Level   `json:"level"`
	Description     string            `json:"description"`
	Recommendations []recommend.Group `json:"recommendations"`
	Partial         bool              `json:"partial,omitempty"`
}

// New assembles a report from a session and its scored result.
func New(sess *session.Session, result scoring.Result, partial bool) *Report {
	level := recommend.LevelOf(result.Percent)
	return &Report{
		GeneratedAt:     time.Now().UTC(),
		Organization:    sess.Org,
		Result:          result,
		Level:           level,
		Description:     recommend.Description(level),
		Recommendations: recommend.For(level),
		Partial:         partial,
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Markdown renders the report as a Markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("# Diagnostic de maturité cybersécurité\n\n")
	if r.Partial {
		b.WriteString("> Rapport partiel : certaines sections ne sont pas terminées.\n\n")
	}
	fmt.Fprintf(&b, "**Organisation :** %s (%s)\n\n", r.Organization.Name, r.Organization.Country)
	fmt.Fprintf(&b, "**Date :** %s\n\n", r.GeneratedAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "## Score global : %d%% — niveau %s\n\n", r.Result.Percent, r.Level)
	fmt.Fprintf(&b, "%s\n\n", r.Description)

	b.WriteString("## Détail par domaine\n\n")
	b.WriteString("| Domaine | Points | Maximum | Score |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, s := range r.Result.Sections {
		fmt.Fprintf(&b, "| %s | %.2f | %.2f | %d%% |\n", s.Title, s.Points, s.Max, s.Percent)
	}
	b.WriteString("\n## Recommandations\n\n")
	for _, g := range r.Recommendations {
		fmt.Fprintf(&b, "### %s\n\n", g.Title)
		for _, item := range g.Items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders the Markdown report to a standalone HTML document.
func (r *Report) HTML() ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(r.Markdown()), &body); err != nil {
		return nil, fmt.Errorf("render report html: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"fr\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>Diagnostic cybersécurité — %s</title>\n", htmlEscape(r.Organization.Name))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}

// RenderTerminal writes the report for interactive display. Colors are
// applied only when enabled by the caller.
func (r *Report) RenderTerminal(w io.Writer, useColor bool) {
	bold := color.New(color.Bold)
	levelPaint := levelColor(r.Level)
	if !useColor {
		bold.DisableColor()
		levelPaint.DisableColor()
	}

	fmt.Fprintln(w)
	bold.Fprintln(w, "Diagnostic de maturité cybersécurité")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Organisation : %s (%s)\n", r.Organization.Name, r.Organization.Country)
	if r.Partial {
		fmt.Fprintln(w, "Rapport partiel : certaines sections ne sont pas terminées.")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Score global : %s  Niveau : %s\n",
		levelPaint.Sprintf("%d%%", r.Result.Percent), levelPaint.Sprint(string(r.Level)))
	fmt.Fprintln(w, r.Description)
	fmt.Fprintln(w)

	for _, s := range r.Result.Sections {
		fmt.Fprintf(w, "  %-35s %s %3d%%\n", s.Title, bar(s.Percent), s.Percent)
	}
	fmt.Fprintln(w)

	bold.Fprintln(w, "Recommandations")
	for _, g := range r.Recommendations {
		fmt.Fprintf(w, "\n  %s\n", g.Title)
		for _, item := range g.Items {
			fmt.Fprintf(w, "    - %s\n", item)
		}
	}
	fmt.Fprintln(w)
}

// bar renders a 20-cell progress bar for a percentage.
func bar(percent int) string {
	filled := percent / 5
	if filled > 20 {
		filled = 20
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 20-filled) + "]"
}

func levelColor(l recommend.Level) *color.Color {
	switch l {
	case recommend.LevelOptimal:
		return color.New(color.FgGreen, color.Bold)
	case recommend.LevelAvance:
		return color.New(color.FgCyan, color.Bold)
	case recommend.LevelEssentiel:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
