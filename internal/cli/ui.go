package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/tourbnb/internal/job"
	"github.com/katalvlaran/tourbnb/tsp"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(18)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// renderReport prints a solve result for humans.
func renderReport(w io.Writer, rep job.Report) {
	title := "Tour"
	if rep.Scenario != "" {
		title += " " + rep.Scenario
	}
	fmt.Fprintln(w, StyleTitle.Render(title))

	if rep.Cost == nil {
		printWarning(w, "no feasible tour over %d cities", rep.Cities)
	} else {
		printKeyValue(w, "cost", StyleNumber.Render(fmt.Sprintf("%g", *rep.Cost)))
		printKeyValue(w, "tour", tsp.RouteString(rep.Tour))
	}

	status := "optimal"
	if rep.TimedOut {
		status = "time budget reached"
	} else if rep.Cost == nil {
		status = "exhausted"
	}
	printKeyValue(w, "search", status)
	printKeyValue(w, "elapsed", fmt.Sprintf("%.1f ms", rep.ElapsedMS))
	printKeyValue(w, "priority", rep.Priority)
	printKeyValue(w, "seeder", rep.Seeder)

	parts := []string{
		fmt.Sprintf("%d states", rep.Stats.StatesCreated),
		fmt.Sprintf("%d pruned", rep.Stats.Pruned),
		fmt.Sprintf("queue ≤ %d", rep.Stats.MaxQueueSize),
		fmt.Sprintf("%d improvements", rep.Stats.IncumbentUpdates),
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
	fmt.Fprintln(w, StyleDim.Render("run "+rep.RunID))
}
