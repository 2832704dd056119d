// # cmd/bagrules/summary.go
package main

import (
	"bagrules/internal/core/app"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

func printSummary(w io.Writer, r app.Report) {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Rules: %d containers, %d edges", r.Containers, r.Edges)))
	b.WriteString("\n")

	if len(r.Undefined) > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d undefined container(s): %s", len(r.Undefined), strings.Join(r.Undefined, ", "))))
		b.WriteString("\n")
	}
	for _, c := range r.Cycles {
		b.WriteString(cycleStyle.Render("cycle: " + strings.Join(c, " -> ")))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Part 1: %s containers can eventually hold %q\n", answerStyle.Render(fmt.Sprint(r.Ancestors)), r.Root))
	for _, name := range r.AncestorNames {
		b.WriteString("   " + name + "\n")
	}
	b.WriteString(fmt.Sprintf("Part 2: %s bags are required inside %q\n", answerStyle.Render(fmt.Sprint(r.NestedBags)), r.Root))

	if len(r.Chain) > 0 {
		b.WriteString("Chain: " + strings.Join(r.Chain, " -> ") + "\n")
	}

	b.WriteString(statusStyle.Render("run " + r.RunID))
	b.WriteString("\n")

	fmt.Fprint(w, b.String())
}

// printPlain writes the two answers, then any listed names and chain, with no
// decoration.
func printPlain(w io.Writer, r app.Report) {
	fmt.Fprintln(w, r.Ancestors)
	fmt.Fprintln(w, r.NestedBags)
	for _, name := range r.AncestorNames {
		fmt.Fprintln(w, name)
	}
	if len(r.Chain) > 0 {
		fmt.Fprintln(w, strings.Join(r.Chain, " -> "))
	}
}
