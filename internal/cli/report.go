package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"
)

// InputRows lists the projection inputs as label/value rows.
func InputRows(p model.Parameters, code string) [][]string {
	downPct := 0.0
	if p.HousePrice > 0 {
		downPct = p.DownPayment / p.HousePrice
	}
	return [][]string{
		{"House Price", FormatMoneyWhole(p.HousePrice, code)},
		{"Down Payment", fmt.Sprintf("%s (%s)", FormatMoneyWhole(p.DownPayment, code), FormatPercent(downPct))},
		{"Mortgage Rate", FormatPercent(p.MortgageInterestRateAnnual) + " annual"},
		{"Mortgage Term", fmt.Sprintf("%d years", p.MortgageTermYears)},
		{"ETF Yield", fmt.Sprintf("%s monthly (%s annual)",
			FormatPercent(p.ETFMonthlyYield), FormatPercent(projection.AnnualRateFromMonthly(p.ETFMonthlyYield)))},
		{"House Appreciation", fmt.Sprintf("%s monthly (%s annual)",
			FormatPercent(p.HousePriceMonthlyYield), FormatPercent(projection.AnnualRateFromMonthly(p.HousePriceMonthlyYield)))},
		{"Maintenance", FormatPercent(p.HouseMaintenancePercentAnnual) + " of value annually"},
		{"Monthly Rent", FormatMoneyWhole(p.MonthlyRent, code)},
		{"Rent Increase", FormatPercent(p.RentIncreaseAnnual) + " annually"},
		{"Horizon", fmt.Sprintf("%d years", p.SimulationYears)},
	}
}

// SummaryRows lists the comparison figures, with "---" separators.
func SummaryRows(s model.Summary, code string) [][]string {
	return [][]string{
		{"Monthly Mortgage Payment", FormatMoney(s.MonthlyPayment, code)},
		{"Initial Monthly Cost (buy)", FormatMoney(s.InitialBuyOutlay, code)},
		{"---"},
		{"Final House Value", FormatMoneyWhole(s.FinalHouseValue, code)},
		{"Remaining Mortgage", FormatMoneyWhole(s.FinalBalance, code)},
		{"Final Equity", FormatMoneyWhole(s.FinalEquity, code)},
		{"Buyer Portfolio", FormatMoneyWhole(s.FinalBuyPortfolio, code)},
		{"Renter Portfolio", FormatMoneyWhole(s.FinalRentPortfolio, code)},
		{"---"},
		{"Total Cost (buy)", FormatMoneyWhole(s.TotalBuyCost, code)},
		{"Total Cost (rent)", FormatMoneyWhole(s.TotalRentCost, code)},
		{"Total Invested (buy)", FormatMoneyWhole(s.TotalBuyInvested, code)},
		{"Total Invested (rent)", FormatMoneyWhole(s.TotalRentInvested, code)},
		{"---"},
		{"Final Wealth (buy)", FormatMoneyWhole(s.FinalBuyWealth, code)},
		{"Final Wealth (rent)", FormatMoneyWhole(s.FinalRentPortfolio, code)},
		{"Wealth Difference", FormatDelta(s.WealthDifference, code)},
		{"Buying Pulls Ahead", FormatMonths(s.BreakevenMonth)},
		{"Better Option", s.Winner.Label()},
	}
}

// ScheduleTable renders the yearly roll-up as a table.
func ScheduleTable(rows []model.YearRow, code string) Table {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fmt.Sprintf("%d", r.Year),
			FormatMoneyWhole(r.HouseValue, code),
			FormatMoneyWhole(r.MortgageBalance, code),
			FormatMoneyWhole(r.BuyWealth, code),
			FormatMoneyWhole(r.RentPortfolio, code),
			FormatMoneyWhole(r.BuyCost, code),
			FormatMoneyWhole(r.RentCost, code),
		})
	}
	return Table{
		Headers: []string{"Year", "House", "Mortgage", "Wealth (buy)", "Wealth (rent)", "Paid (buy)", "Paid (rent)"},
		Rows:    out,
	}
}

// RenderMarkdownReport renders a complete comparison as markdown.
func RenderMarkdownReport(res model.Result, code string) string {
	var b strings.Builder
	s := res.Summary

	fmt.Fprintf(&b, "# Buy vs Rent: %d Year Analysis\n\n", res.Params.SimulationYears)
	fmt.Fprintf(&b, "**%s is better** by %s after %d years.\n\n",
		s.Winner.Label(), FormatMoneyWhole(absf(s.WealthDifference), code), res.Params.SimulationYears)

	b.WriteString("## Inputs\n\n")
	writeMarkdownTable(&b, []string{"Parameter", "Value"}, InputRows(res.Params, code))

	b.WriteString("\n## Summary\n\n")
	var rows [][]string
	for _, r := range SummaryRows(s, code) {
		if len(r) == 2 {
			rows = append(rows, r)
		}
	}
	writeMarkdownTable(&b, []string{"Figure", "Value"}, rows)

	b.WriteString("\n## Yearly Schedule\n\n")
	sched := ScheduleTable(projection.Yearly(res), code)
	writeMarkdownTable(&b, sched.Headers, sched.Rows)

	return b.String()
}

func writeMarkdownTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	seps := make([]string, len(headers))
	for i := range seps {
		if i == 0 {
			seps[i] = "---"
		} else {
			seps[i] = "---:"
		}
	}
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, r := range rows {
		b.WriteString("| " + strings.Join(r, " | ") + " |\n")
	}
}

// RenderTerminalMarkdown renders markdown for the terminal with glamour.
// style is a glamour standard style name, or "auto" to detect.
func RenderTerminalMarkdown(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// GlamourStyle maps a TUI theme name to the closest glamour style.
func GlamourStyle(theme string) string {
	switch theme {
	case "tokyo-night":
		return "tokyo-night"
	case "terminal":
		return "auto"
	default:
		return "dark"
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
