package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII banner shown by `triage serve`.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _        _                  ", "#818cf8"},
		{" | |_ _ __(_) __ _  __ _  ___ ", "#a78bfa"},
		{" | __| '__| |/ _` |/ _` |/ _ \\", "#c084fc"},
		{" | |_| |  | | (_| | (_| |  __/", "#e879f9"},
		{"  \\__|_|  |_|\\__,_|\\__, |\\___|", "#f472b6"},
		{"                   |___/      ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
