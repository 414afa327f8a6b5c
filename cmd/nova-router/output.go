// ABOUTME: Terminal-aware rendering of classification results
// ABOUTME: lipgloss label badges on a TTY, plain text otherwise; glamour for decision traces

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/mauromedda/nova-router/internal/intent"
)

const defaultWidth = 80

var (
	labelStyles = map[intent.UserIntent]lipgloss.Style{
		intent.IntentChat:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		intent.IntentMetadata: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		intent.IntentContent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
	dimStyle = lipgloss.NewStyle().Faint(true)
)

// terminalWidth reports whether w is a terminal and its width.
func terminalWidth(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return true, defaultWidth
	}
	return true, width
}

// formatLabel pads the label to a fixed column and styles it on a TTY.
func formatLabel(i intent.UserIntent, styled bool) string {
	label := fmt.Sprintf("%-8s", i)
	if !styled {
		return label
	}
	return labelStyles[i].Render(label)
}

// formatSource renders "(source/rule)" for a result.
func formatSource(r intent.Result, styled bool) string {
	src := string(r.Source)
	if r.Rule != "" {
		src += "/" + r.Rule
	}
	src = "(" + src + ")"
	if styled {
		return dimStyle.Render(src)
	}
	return src
}

// explainMarkdown renders one result as a markdown decision trace.
func explainMarkdown(text string, r intent.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", r.Intent)
	fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(text, "\n", " "))
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| source | `%s` |\n", r.Source)
	if r.Rule != "" {
		fmt.Fprintf(&b, "| rule | `%s` |\n", r.Rule)
	}
	fmt.Fprintf(&b, "| selection | %v |\n", r.Selection)
	if p := r.Patterns; p != nil {
		fmt.Fprintf(&b, "| patterns | %s (%.1f) |\n", p.Type, p.Confidence)
		if len(p.MatchedPatterns) > 0 {
			fmt.Fprintf(&b, "| matched | %s |\n", strings.Join(p.MatchedPatterns, ", "))
		}
	}
	return b.String()
}

// renderMarkdown styles md with glamour; on failure the raw markdown is returned.
func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n ") + "\n"
}
