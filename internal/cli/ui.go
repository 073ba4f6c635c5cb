package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pkgsync/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for package headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printReport(r *pipeline.Report) {
	if out := renderReport(r); out != "" {
		fmt.Println(out)
	}
}

// isChange reports whether msg describes an edit pkgsync made itself, as
// opposed to a problem left for the user.
func isChange(msg string) bool {
	return strings.HasPrefix(msg, "Updated ") || strings.HasPrefix(msg, "Added ")
}

func countMessages(msgs []string) (changes, warnings int) {
	for _, m := range msgs {
		if isChange(m) {
			changes++
		} else {
			warnings++
		}
	}
	return changes, warnings
}

// renderReport lists the messages of every package that has any, followed
// by a summary table of all packages.
func renderReport(r *pipeline.Report) string {
	if len(r.Packages) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.WithMessages() {
		b.WriteString(StyleTitle.Render(p.Name) + " " + StyleDim.Render(p.Dir) + "\n")
		for _, m := range p.Messages {
			if isChange(m) {
				b.WriteString("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(m) + "\n")
			} else {
				b.WriteString("  " + styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(m) + "\n")
			}
		}
		b.WriteString("\n")
	}

	rows := make([][]string, 0, len(r.Packages))
	for _, p := range r.Packages {
		changes, warnings := countMessages(p.Messages)
		rows = append(rows, []string{p.Name, strconv.Itoa(changes), strconv.Itoa(warnings), status(p)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Changes", "Warnings", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 2 && rows[row][col] != "0" {
				return cell.Foreground(colorYellow)
			}
			return cell
		})
	b.WriteString(t.Render())
	return b.String()
}

func status(p pipeline.PackageReport) string {
	switch {
	case p.Halted:
		return "skipped (no tsconfig.json)"
	case p.Written:
		return "updated"
	case len(p.Messages) > 0:
		return "warnings"
	default:
		return "in sync"
	}
}
