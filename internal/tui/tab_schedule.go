package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/tui/components"
	"github.com/theirongolddev/buyrent/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// scheduleChrome is the number of lines around the schedule rows:
// tab bar, pill, status bar, card border and title, header, rule and legend.
const scheduleChrome = 10

// scheduleRows returns how many yearly rows fit on screen.
func (a App) scheduleRows() int {
	n := a.height - scheduleChrome
	if n < minContentHeight {
		n = minContentHeight
	}
	return n
}

func (a App) renderScheduleTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	buyStyle := lipgloss.NewStyle().Foreground(t.Buy).Background(t.Surface)
	rentStyle := lipgloss.NewStyle().Foreground(t.Rent).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sched := cli.ScheduleTable(a.yearly, a.currency)

	// Year column is narrow; the rest share the remaining width.
	const yearW = 6
	cols := len(sched.Headers) - 1
	colW := (innerW - yearW) / cols
	if colW < 10 {
		colW = 10
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s", yearW, sched.Headers[0])))
	for _, h := range sched.Headers[1:] {
		body.WriteString(headerStyle.Render(fmt.Sprintf("%*s", colW, h)))
	}
	body.WriteString("\n")
	body.WriteString(dimStyle.Render(strings.Repeat("─", yearW+colW*cols)))
	body.WriteString("\n")

	if len(sched.Rows) == 0 {
		body.WriteString(dimStyle.Render("No projection yet"))
		return components.ContentCard("Yearly Schedule", body.String(), cw)
	}

	start := a.scheduleOffset
	end := start + a.scheduleRows()
	if end > len(sched.Rows) {
		end = len(sched.Rows)
	}
	if start > end {
		start = end
	}

	breakevenYear := 0
	if m := a.result.Summary.BreakevenMonth; m > 0 {
		breakevenYear = (m + 11) / 12
	}

	for i, row := range sched.Rows[start:end] {
		y := a.yearly[start+i]
		marker := " "
		if y.Year == breakevenYear {
			marker = "◆"
		}
		// The year takes the color of whichever side leads at its end.
		yearStyle := lipgloss.NewStyle().Foreground(t.Lead(y.BuyWealth - y.RentPortfolio)).Background(t.Surface)
		body.WriteString(yearStyle.Render(fmt.Sprintf("%-*s", yearW, row[0]+marker)))
		for c, cell := range row[1:] {
			style := valueStyle
			switch c {
			case 2:
				style = buyStyle
			case 3:
				style = rentStyle
			}
			body.WriteString(style.Render(fmt.Sprintf("%*s", colW, cell)))
		}
		if i < end-start-1 {
			body.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Yearly Schedule (%d-%d of %d)", start+1, end, len(sched.Rows))
	if breakevenYear > 0 {
		body.WriteString("\n")
		body.WriteString(dimStyle.Render("◆ buying pulls ahead after " + cli.FormatMonths(a.result.Summary.BreakevenMonth)))
	}
	return components.ContentCard(title, body.String(), cw)
}
