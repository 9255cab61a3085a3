package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iancoleman/strcase"

	"github.com/mcncl/jun/internal/analyzer"
	"github.com/mcncl/jun/internal/models"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for section headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for findings worth fixing.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(16)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printFailure(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// label turns a stats key such as "maxDepth" into "max depth".
func label(key string) string {
	return strcase.ToDelimited(key, ' ')
}

// printStats writes stats as styled sections, largest counts first.
func printStats(w io.Writer, dialect string, stats models.TreeStats) {
	fmt.Fprintln(w, StyleTitle.Render("Tree"))
	printKeyValue(w, "dialect", dialect)
	for _, row := range []struct {
		key   string
		value int
	}{
		{"nodes", stats.Nodes},
		{"maxDepth", stats.MaxDepth},
		{"leaves", stats.Leaves},
		{"emptyChildren", stats.EmptyChildren},
	} {
		fmt.Fprintln(w, styleKey.Render(label(row.key))+" "+StyleNumber.Render(fmt.Sprint(row.value)))
	}

	printCounts(w, "Variants", stats.Variants, StyleNumber)
	printCounts(w, "Common properties", stats.CommonKeys, StyleNumber)
	printCounts(w, "Legacy fields", stats.LegacyFields, StyleWarning)
	printCounts(w, "Unknown types", stats.UnknownTypes, StyleWarning)
}

func printCounts(w io.Writer, title string, counts map[string]int, style lipgloss.Style) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleTitle.Render(title))
	for _, key := range analyzer.SortedKeys(counts) {
		fmt.Fprintln(w, styleKey.Render(key)+" "+style.Render(fmt.Sprint(counts[key])))
	}
}
