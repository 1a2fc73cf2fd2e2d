package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal output for humans. Machine-readable output goes through
// writeJSON instead and never passes through these helpers.

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorText   = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	styleTitle       = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleNode        = lipgloss.NewStyle().Foreground(colorAccent)
	styleMuted       = lipgloss.NewStyle().Foreground(colorMuted)
	styleText        = lipgloss.NewStyle().Foreground(colorText)
	styleWarnText    = lipgloss.NewStyle().Foreground(colorWarn)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// A statusMark is the colored glyph that leads a status line.
type statusMark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = statusMark{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail = statusMark{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn = statusMark{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo = statusMark{"›", lipgloss.NewStyle().Foreground(colorLabel)}
)

const arrow = "→"

func (m statusMark) println(w io.Writer, text string) {
	fmt.Fprintln(w, m.style.Render(m.glyph)+" "+text)
}

func printSuccess(w io.Writer, format string, args ...any) {
	markOK.println(w, fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	markFail.println(w, fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	markWarn.println(w, styleWarnText.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	markInfo.println(w, fmt.Sprintf(format, args...))
}

// printDetail prints a muted line indented under the previous status line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleMuted.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleMuted.Render(arrow)+" "+styleText.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleLabel.Render(key)+" "+styleText.Render(value))
}

func printStats(w io.Writer, nodes, edges int) {
	printDetail(w, "%d nodes · %d edges", nodes, edges)
}

// renderPath joins node IDs with arrows, e.g. "a → b → a" for a cycle.
func renderPath(ids []string) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteString(styleMuted.Render(" " + arrow + " "))
		}
		b.WriteString(styleNode.Render(id))
	}
	return b.String()
}

// printList prints ids one per line, numbered from 1 with the numbers
// right-aligned.
func printList(w io.Writer, ids []string) {
	width := len(fmt.Sprint(len(ids)))
	for i, id := range ids {
		num := fmt.Sprintf("%*d", width, i+1)
		fmt.Fprintln(w, "  "+styleMuted.Render(num)+" "+styleNode.Render(id))
	}
}
