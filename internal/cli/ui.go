package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sheetsmith/sheetsmith/pkg/sheet"
	"github.com/sheetsmith/sheetsmith/pkg/suggest"
	"github.com/sheetsmith/sheetsmith/pkg/validate"
)

// Color palette.
var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, passing scores
	colorYellow = lipgloss.Color("220") // Amber - warnings, middling scores
	colorRed    = lipgloss.Color("167") // Soft red - errors, failing scores
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// Public styles.
var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
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

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleScoreGood = lipgloss.NewStyle().Foreground(colorGreen)
	styleScoreFair = lipgloss.NewStyle().Foreground(colorYellow)
	styleScorePoor = lipgloss.NewStyle().Foreground(colorRed)
)

// Icons.
const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// Score thresholds for coloring.
const (
	scoreGoodMin = 90
	scoreFairMin = 70
)

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

// printStats prints template statistics on a single line.
func printStats(regionCount int, cached bool) {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf("%d regions", regionCount)) +
		StyleDim.Render(" · ") + statusStyle.Render(status))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// scoreStyle picks the style for a 0-100 quality score.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= scoreGoodMin:
		return styleScoreGood
	case score >= scoreFairMin:
		return styleScoreFair
	default:
		return styleScorePoor
	}
}

// renderScore formats a score with its quality color.
func renderScore(score float64) string {
	return scoreStyle(score).Render(fmt.Sprintf("%.1f", score))
}

// printReport prints a validation report: overall score, a per-region
// metrics table, and the aggregated issues and suggestions.
func printReport(report *validate.Report, tpl *sheet.Template) {
	fmt.Println(StyleTitle.Render("Validation Report") + "  " + renderScore(report.OverallScore))
	printNewline()
	printMetricsTable(report, tpl)

	if len(report.Issues) > 0 {
		printNewline()
		for _, issue := range report.Issues {
			printWarning("%s", issue)
		}
	}
	if len(report.Suggestions) > 0 {
		printNewline()
		for _, s := range report.Suggestions {
			printDetail("%s", s)
		}
	}
}

// printMetricsTable renders per-region metrics in template order.
func printMetricsTable(report *validate.Report, tpl *sheet.Template) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(report.PerRegion))
	ids := regionOrder(report, tpl)
	for _, id := range ids {
		m := report.PerRegion[id]
		kind := ""
		if r, ok := tpl.Region(id); ok {
			kind = string(r.Kind)
		}
		rows = append(rows, []string{
			id,
			kind,
			fmt.Sprintf("%.0f", m.SizeCompliance),
			fmt.Sprintf("%.0f", m.PositionAccuracy),
			fmt.Sprintf("%.0f", m.OMRStandard),
			fmt.Sprintf("%.0f", m.OverallScore),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Region", "Kind", "Size", "Position", "OMR", "Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 5 && row < len(rows) {
				var score float64
				fmt.Sscanf(rows[row][5], "%f", &score)
				return scoreStyle(score)
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
}

// regionOrder lists report region ids in template order, with any ids
// missing from the template appended alphabetically.
func regionOrder(report *validate.Report, tpl *sheet.Template) []string {
	seen := make(map[string]bool, len(report.PerRegion))
	var ids []string
	for _, r := range tpl.Regions {
		if _, ok := report.PerRegion[r.ID]; ok && !seen[r.ID] {
			ids = append(ids, r.ID)
			seen[r.ID] = true
		}
	}
	var extra []string
	for id := range report.PerRegion {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}

// printSuggestion prints one ranked suggestion.
func printSuggestion(s suggest.Suggestion, index int) {
	confidence := StyleDim.Render(fmt.Sprintf("%.0f%%", s.Confidence*100))
	fmt.Printf("%s %s %s\n", StyleDim.Render(fmt.Sprintf("%d.", index+1)), StyleValue.Render(s.Title), confidence)
	printDetail("[%s] %s", s.Category, s.Description)
}
