package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RenderText draws p for a terminal. The group list is cut to at most
// viewport lines; a trailing marker tells how many were hidden.
func RenderText(w io.Writer, p Page, viewport int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s (%s)\n", Title, p.State)
	input := p.Input
	if input == "" {
		input = Placeholder
	}
	fmt.Fprintf(bw, "> %-4s  (%s)\n", input, SubmitLabel)
	if p.Alert != "" {
		fmt.Fprintf(bw, "! %s\n", p.Alert)
	}
	fmt.Fprintln(bw, strings.Repeat("-", 32))

	if len(p.Groups) == 0 {
		fmt.Fprintln(bw, EmptyText)
		return bw.Flush()
	}

	var lines []string
	for _, g := range p.Groups {
		chips := make([]string, len(g.Digits))
		for i, d := range g.Digits {
			chips[i] = "[" + d + "]"
		}
		lines = append(lines, g.Minute, "  "+strings.Join(chips, " "))
	}

	if viewport > 0 && len(lines) > viewport {
		hidden := len(lines) - viewport
		lines = append(lines[:viewport], fmt.Sprintf("... %d more lines", hidden))
	}
	for _, l := range lines {
		fmt.Fprintln(bw, l)
	}
	return bw.Flush()
}
