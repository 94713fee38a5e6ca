package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/triage/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// It detects light/dark backgrounds automatically.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Markdown formats a response as a markdown document.
func Markdown(resp domain.AgentResponse) string {
	var b strings.Builder

	title := resp.Subcategory
	if title == "" && resp.Category != "" {
		title = strings.ToUpper(resp.Category[:1]) + resp.Category[1:]
	}
	if title != "" {
		fmt.Fprintf(&b, "## %s\n\n", title)
	}
	b.WriteString(resp.Answer)
	b.WriteString("\n")

	if len(resp.ActionItems) > 0 {
		b.WriteString("\n### Action items\n\n")
		for _, item := range resp.ActionItems {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	if len(resp.Sources) > 0 {
		b.WriteString("\n### Sources\n\n")
		for _, s := range resp.Sources {
			if s.URL != "" {
				fmt.Fprintf(&b, "- [%s](%s)\n", s.Title, s.URL)
			} else {
				fmt.Fprintf(&b, "- %s\n", s.Title)
			}
		}
	}
	if len(resp.RelatedQuestions) > 0 {
		b.WriteString("\n### Related questions\n\n")
		for _, q := range resp.RelatedQuestions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	return b.String()
}

// ConfidenceColor maps a confidence to a traffic light color.
func ConfidenceColor(c float64) string {
	switch {
	case c >= 0.8:
		return "#22c55e"
	case c >= 0.5:
		return "#eab308"
	default:
		return "#ef4444"
	}
}

// Footer is the one-line summary printed under an answer.
func Footer(resp domain.AgentResponse) string {
	parts := []string{
		"agent=" + resp.Agent,
		fmt.Sprintf("confidence=%.2f", resp.Confidence),
		"impact=" + string(resp.Impact),
	}
	if resp.Specialist != "" {
		parts = append(parts, "specialist="+resp.Specialist)
	}
	if resp.Resolution != "" {
		parts = append(parts, "via="+string(resp.Resolution))
	}
	return strings.Join(parts, "  ")
}

// PrintResponse writes resp to w. Terminals get glamour rendering and a
// colored footer; anything else receives the raw markdown.
func PrintResponse(w io.Writer, resp domain.AgentResponse, styled bool) error {
	md := Markdown(resp)
	footer := Footer(resp)

	if !styled {
		_, err := fmt.Fprintf(w, "%s\n%s\n", md, footer)
		return err
	}

	out, err := NewRenderer()(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	p := termenv.ColorProfile()
	colored := termenv.String(footer).Foreground(p.Color(ConfidenceColor(resp.Confidence)))
	_, err = fmt.Fprintf(w, "%s%s\n", out, colored)
	return err
}
