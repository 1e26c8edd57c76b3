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

// maxCostBarYears caps the comparison bars; longer horizons are sampled.
const maxCostBarYears = 12

func (a App) renderCostsTab(cw int) string {
	t := theme.Active
	s := a.result.Summary
	p := a.result.Params
	cur := a.currency

	var b strings.Builder

	// Row 1: Cost metric cards
	costGap := s.TotalBuyCost - s.TotalRentCost
	costCards := []components.Metric{
		{Label: "Paid if Buying", Value: cli.FormatMoneyWhole(s.TotalBuyCost, cur),
			Delta: "incl. " + cli.FormatMoneyWhole(p.DownPayment, cur) + " down", Color: t.Buy},
		{Label: "Paid if Renting", Value: cli.FormatMoneyWhole(s.TotalRentCost, cur),
			Delta: "rent now " + cli.FormatMoneyWhole(projection.RentAt(p, p.Months()), cur), Color: t.Rent},
		{Label: "Invested (buy)", Value: cli.FormatMoneyWhole(s.TotalBuyInvested, cur),
			Delta: "portfolio " + cli.FormatMoneyCompact(s.FinalBuyPortfolio, cur)},
		{Label: "Invested (rent)", Value: cli.FormatMoneyWhole(s.TotalRentInvested, cur),
			Delta: "cost gap " + cli.FormatDelta(costGap, cur)},
	}
	b.WriteString(components.MetricCardRow(costCards, cw))
	b.WriteString("\n")

	if len(a.yearly) == 0 {
		return b.String()
	}

	// Row 2: Cumulative cost per year, buy vs rent
	rows := a.yearly
	if len(rows) > maxCostBarYears {
		step := (len(rows) + maxCostBarYears - 1) / maxCostBarYears
		sampled := make([]model.YearRow, 0, maxCostBarYears+1)
		for i := step - 1; i < len(rows); i += step {
			sampled = append(sampled, rows[i])
		}
		if sampled[len(sampled)-1].Year != rows[len(rows)-1].Year {
			sampled = append(sampled, rows[len(rows)-1])
		}
		rows = sampled
	}

	labels := make([]string, len(rows))
	buyCost := make([]float64, len(rows))
	rentCost := make([]float64, len(rows))
	for i, y := range rows {
		labels[i] = fmt.Sprintf("Y%d", y.Year)
		buyCost[i] = y.BuyCost
		rentCost[i] = y.RentCost
	}

	legendStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	legend := lipgloss.NewStyle().Foreground(t.Buy).Background(t.Surface).Render("█ buy") +
		legendStyle.Render("  ") +
		lipgloss.NewStyle().Foreground(t.Rent).Background(t.Surface).Render("█ rent")

	body := components.ComparisonBars(labels, buyCost, rentCost, t.Buy, t.Rent, components.MoneyAxis(cur), components.CardInnerWidth(cw)) +
		"\n" + legend
	b.WriteString(components.ContentCard("Cumulative Cost", body, cw))
	b.WriteString("\n")

	// Row 3: Ownership shares + final figures
	halves := components.LayoutRow(cw, 2)
	innerW := components.CardInnerWidth(halves[0])
	const labelW = 18
	barW := innerW - labelW - 6

	ownedShare := 0.0
	if s.FinalHouseValue > 0 {
		ownedShare = s.FinalEquity / s.FinalHouseValue
	}
	repaid := 1.0
	if principal := p.Principal(); principal > 0 {
		repaid = 1 - s.FinalBalance/principal
	}
	equityShare := 0.0
	if s.FinalBuyWealth > 0 {
		equityShare = s.FinalEquity / s.FinalBuyWealth
	}
	rentShare := 0.0
	if s.TotalRentCost > 0 {
		rentShare = s.TotalRentCost / (s.TotalRentCost + s.TotalRentInvested)
	}

	var shareBody strings.Builder
	shareBody.WriteString(components.ShareBar("House owned", ownedShare, t.Buy, labelW, barW))
	shareBody.WriteString("\n")
	shareBody.WriteString(components.ShareBar("Principal repaid", repaid, t.Cyan, labelW, barW))
	shareBody.WriteString("\n")
	shareBody.WriteString(components.ShareBar("Wealth in house", equityShare, t.Magenta, labelW, barW))
	shareBody.WriteString("\n")
	shareBody.WriteString(components.ShareBar("Renter spend", rentShare, t.Rent, labelW, barW))
	shareCard := components.ContentCard("Shares", shareBody.String(), halves[0])

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	figures := [][]string{
		{"Final house value", cli.FormatMoneyWhole(s.FinalHouseValue, cur)},
		{"Remaining mortgage", cli.FormatMoneyWhole(s.FinalBalance, cur)},
		{"Final equity", cli.FormatMoneyWhole(s.FinalEquity, cur)},
		{"Buyer portfolio", cli.FormatMoneyWhole(s.FinalBuyPortfolio, cur)},
	}
	var figBody strings.Builder
	for i, f := range figures {
		figBody.WriteString(labelStyle.Render(fmt.Sprintf("%-20s", f[0])))
		figBody.WriteString(valueStyle.Render(fmt.Sprintf(" %14s", f[1])))
		if i < len(figures)-1 {
			figBody.WriteString("\n")
		}
	}
	figCard := components.ContentCard("House", figBody.String(), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Shares", shareBody.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("House", figBody.String(), cw))
	} else {
		b.WriteString(components.CardRow([]string{shareCard, figCard}))
	}

	return b.String()
}
