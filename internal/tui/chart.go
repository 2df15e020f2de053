package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/reflex/internal/store"
)

const chartHeight = 12

// HistoryChart draws focus minutes per day as a bar chart, one bar per row
// of days, oldest on the left.
func HistoryChart(days []store.DayTotals, width int) string {
	if len(days) == 0 {
		return Muted("No history yet")
	}
	if width < 20 {
		width = 20
	}

	chart := barchart.New(width, chartHeight)

	bars := make([]barchart.BarData, 0, len(days))
	total := 0
	for _, d := range days {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if d.FocusMinutes == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: d.Date.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  "focus",
				Value: float64(d.FocusMinutes),
				Style: style,
			}},
		})
		total += d.FocusMinutes
	}

	chart.PushAll(bars)
	chart.Draw()

	from, to := days[0].Date, days[len(days)-1].Date
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Focus minutes"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s to %s", from.Format("Jan 02"), to.Format("Jan 02, 2006"))),
	)
	footer := mutedStyle.Render(fmt.Sprintf("%d min over %d days", total, len(days)))
	return lipgloss.JoinVertical(lipgloss.Left, header, "", chart.View(), "", footer)
}
