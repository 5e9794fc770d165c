package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wallcheck/pkg/pipeline"
	"github.com/matzehuels/wallcheck/pkg/report"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, unsafe entities
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleDanger for unsafe entities.
	StyleDanger = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// safeMessage is printed when no entity is reachable.
const safeMessage = "Bug freedom achieved!"

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Stats Display
// =============================================================================

// formatStats renders entity and unsafe counts plus the cache status on a
// single line.
func formatStats(entities, unsafe int, cached bool) string {
	parts := []string{fmt.Sprintf("%d entities", entities), fmt.Sprintf("%d unsafe", unsafe)}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + statusStyle.Render(status)
}

// =============================================================================
// Reports
// =============================================================================

// writeReport prints a styled analysis summary followed by a table of the
// unsafe entities.
func writeReport(w io.Writer, res *pipeline.Result) {
	rep := res.Report
	title := "Blueprint"
	if rep.Label != "" {
		title = rep.Label
	}
	fmt.Fprintln(w, StyleTitle.Render(title))
	fmt.Fprintln(w, formatStats(rep.EntityCount, len(rep.Unsafe), res.CacheInfo.ReportHit))
	fmt.Fprintln(w)

	if rep.Safe() {
		fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+StyleSuccess.Render(safeMessage))
		return
	}

	noun := "entities are"
	if len(rep.Unsafe) == 1 {
		noun = "entity is"
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+StyleDanger.Render(fmt.Sprintf("%d %s reachable from outside", len(rep.Unsafe), noun)))
	fmt.Fprintln(w, unsafeTable(rep.Unsafe, -1))
}

// unsafeTable renders refs as a bordered table. The row at highlight, if
// any, is drawn bold.
func unsafeTable(refs []report.EntityRef, highlight int) string {
	rows := make([][]string, len(refs))
	for i, u := range refs {
		rows[i] = []string{strconv.Itoa(u.Number), u.Name, u.Position.String(), u.Direction}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Entity", "Position", "Facing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader.Padding(0, 1)
			}
			style := styleTableCell
			if col == 0 {
				style = style.Foreground(colorRed)
			}
			if row == highlight {
				style = style.Bold(true).Foreground(colorCyan)
			}
			return style
		}).
		Render()
}

// writeRecipes prints items and their ingredients.
func writeRecipes(w io.Writer, items []string, ingredients func(string) []string) {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{item, strings.Join(ingredients(item), ", ")}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Item", "Ingredients").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader.Padding(0, 1)
			}
			return styleTableCell
		})
	fmt.Fprintln(w, t.Render())
}

// writeHistory prints stored reports, newest first.
func writeHistory(w io.Writer, reports []*report.Report) {
	rows := make([][]string, len(reports))
	for i, r := range reports {
		status := StyleSuccess.Render(iconSuccess)
		if !r.Safe() {
			status = StyleDanger.Render(strconv.Itoa(len(r.Unsafe)))
		}
		rows[i] = []string{r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Label, strconv.Itoa(r.EntityCount), status}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Label", "Entities", "Unsafe").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader.Padding(0, 1)
			}
			if col == 0 {
				return styleTableCell.Foreground(colorDim)
			}
			return styleTableCell
		})
	fmt.Fprintln(w, t.Render())
}
