package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"
	"github.com/theirongolddev/buyrent/internal/tui/components"
	"github.com/theirongolddev/buyrent/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.result.Summary
	cur := a.currency
	var b strings.Builder

	if a.projErr != nil {
		b.WriteString(a.renderErrorCard(cw))
		b.WriteString("\n")
	}

	// Row 1: Metric cards
	verdictColor := t.TextPrimary
	switch s.Winner {
	case model.WinnerBuy:
		verdictColor = t.Buy
	case model.WinnerRent:
		verdictColor = t.Rent
	}

	cards := []components.Metric{
		{
			Label: "Mortgage Payment",
			Value: cli.FormatMoney(s.MonthlyPayment, cur),
			Delta: cli.FormatMoney(s.InitialBuyOutlay, cur) + " first month",
		},
		{
			Label: "Wealth if Buying",
			Value: cli.FormatMoneyWhole(s.FinalBuyWealth, cur),
			Delta: "equity " + cli.FormatMoneyCompact(s.FinalEquity, cur),
			Color: t.Buy,
		},
		{
			Label: "Wealth if Renting",
			Value: cli.FormatMoneyWhole(s.FinalRentPortfolio, cur),
			Delta: "invested " + cli.FormatMoneyCompact(s.TotalRentInvested, cur),
			Color: t.Rent,
		},
		{
			Label: "Verdict",
			Value: s.Winner.Label(),
			Delta: fmt.Sprintf("%s · ahead %s", cli.FormatDelta(s.WealthDifference, cur), cli.FormatMonths(s.BreakevenMonth)),
			Color: verdictColor,
		},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	if len(a.yearly) == 0 {
		return b.String()
	}

	// Row 2: Yearly wealth bars, one card per side
	labels := make([]string, len(a.yearly))
	buyVals := make([]float64, len(a.yearly))
	rentVals := make([]float64, len(a.yearly))
	for i, y := range a.yearly {
		labels[i] = fmt.Sprintf("%d", y.Year)
		buyVals[i] = y.BuyWealth
		rentVals[i] = y.RentPortfolio
	}

	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}

	axis := components.MoneyAxis(a.currency)
	halves := components.LayoutRow(cw, 2)
	buyCard := components.ContentCard("Wealth if Buying (yearly)",
		components.BarChart(buyVals, labels, t.Buy, axis, components.CardInnerWidth(halves[0]), chartH),
		halves[0])
	rentCard := components.ContentCard("Wealth if Renting (yearly)",
		components.BarChart(rentVals, labels, t.Rent, axis, components.CardInnerWidth(halves[1]), chartH),
		halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Wealth if Buying (yearly)",
			components.BarChart(buyVals, labels, t.Buy, axis, components.CardInnerWidth(cw), chartH), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Wealth if Renting (yearly)",
			components.BarChart(rentVals, labels, t.Rent, axis, components.CardInnerWidth(cw), chartH), cw))
	} else {
		b.WriteString(components.CardRow([]string{buyCard, rentCard}))
	}
	b.WriteString("\n")

	// Row 3: Monthly trends as sparklines
	b.WriteString(components.ContentCard("Monthly Trend", a.renderTrendBody(components.CardInnerWidth(cw)), cw))

	return b.String()
}

// renderTrendBody renders one sparkline per monthly series, sampled to fit.
func (a App) renderTrendBody(innerW int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	const labelW = 16
	const valueW = 10
	sparkW := innerW - labelW - valueW - 2
	if sparkW < 8 {
		sparkW = 8
	}

	series := []struct {
		label string
		snaps []model.MonthlySnapshot
		fn    func(model.MonthlySnapshot) float64
		color lipgloss.Color
	}{
		{"Wealth (buy)", a.result.Buy, func(s model.MonthlySnapshot) float64 { return s.Wealth }, t.Buy},
		{"Wealth (rent)", a.result.Rent, func(s model.MonthlySnapshot) float64 { return s.Wealth }, t.Rent},
		{"House value", a.result.Buy, func(s model.MonthlySnapshot) float64 { return s.HouseValue }, t.Cyan},
		{"Mortgage", a.result.Buy, func(s model.MonthlySnapshot) float64 { return s.MortgageBalance }, t.Orange},
		{"Rent", a.result.Rent, func(s model.MonthlySnapshot) float64 { return s.Outlay }, t.Yellow},
	}

	var body strings.Builder
	for i, sr := range series {
		vals := projection.Series(sr.snaps, sr.fn)
		last := 0.0
		if len(vals) > 0 {
			last = vals[len(vals)-1]
		}
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, sr.label)))
		body.WriteString(spaceStyle.Render(" "))
		body.WriteString(components.Sparkline(projection.Sample(vals, sparkW), sr.color))
		body.WriteString(spaceStyle.Render(" "))
		body.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueW, cli.FormatMoneyCompact(last, a.currency))))
		if i < len(series)-1 {
			body.WriteString("\n")
		}
	}
	return body.String()
}

func (a App) renderErrorCard(cw int) string {
	t := theme.Active
	warnStyle := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var body strings.Builder
	for _, line := range strings.Split(a.projErr.Error(), "\n") {
		body.WriteString(warnStyle.Render(line))
		body.WriteString("\n")
	}
	body.WriteString(dimStyle.Render("Showing the last valid scenario. Press [e] to edit."))
	return components.ContentCard("Scenario Rejected", body.String(), cw)
}
