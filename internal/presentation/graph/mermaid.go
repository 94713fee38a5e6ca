package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/triage/pkg/router"
)

// Overlay highlights the route taken by one question.
type Overlay struct {
	Decision router.Decision
}

// GenerateMermaid produces a Mermaid flowchart of a routing table.
// Shapes:
// - Question: ((Circle))
// - Default domain: [/Parallelogram/]
// - Domain: [Rectangle]
// Priority terms are labeled edges; keyword scoring is one dotted edge per domain.
func GenerateMermaid(table *router.Table, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    question((\"question\"))\n")

	for _, d := range table.Domains {
		safeID := sanitizeMermaidID(d.Name)
		opener, closer := "[", "]"
		if d.Name == table.Default {
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, d.Name, closer))
	}

	for _, p := range table.Priority {
		term := strings.ReplaceAll(p.Term, "\"", "'")
		sb.WriteString(fmt.Sprintf("    question -- \"%s\" --> %s\n", term, sanitizeMermaidID(p.Domain)))
	}
	for _, d := range table.Domains {
		sb.WriteString(fmt.Sprintf("    question -. \"%d keywords\" .-> %s\n", len(d.Keywords), sanitizeMermaidID(d.Name)))
	}
	sb.WriteString(fmt.Sprintf("    question -. \"no match\" .-> %s\n", sanitizeMermaidID(table.Default)))

	if overlay != nil && overlay.Decision.Domain != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both themes
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.Decision.Domain)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
