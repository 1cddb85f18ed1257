// Package display holds the small terminal rendering helpers shared by the
// interactive questionnaire and the status command.
package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning is a user-facing block listing why an action was refused, e.g.
// the unanswered prompts blocking section advancement.
type Warning struct {
	Title      string   // Main message
	Items      []string // Offending prompts or fields
	Suggestion string   // Action to take (optional)
}

// Render writes the warning in yellow with indented items.
func (w Warning) Render(out io.Writer) {
	fmt.Fprintf(out, "\x1b[33m⚠ %s\n", w.Title)
	for _, item := range w.Items {
		fmt.Fprintf(out, "    - %s\n", item)
	}
	if w.Suggestion != "" {
		fmt.Fprintf(out, "  %s\n", w.Suggestion)
	}
	fmt.Fprint(out, "\x1b[0m")
}

// SectionHeader writes the banner shown above a questionnaire section.
func SectionHeader(out io.Writer, position, total int, title string, complete bool) {
	marker := " "
	if complete {
		marker = "\x1b[32m✓\x1b[0m"
	}
	fmt.Fprintf(out, "\n[%d/%d] %s %s\n", position, total, title, marker)
	fmt.Fprintln(out, strings.Repeat("-", 60))
}

// Checkbox renders the selection marker of an option.
func Checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}
