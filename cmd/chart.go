package cmd

import (
	"fmt"
	"math"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"

	"github.com/spf13/cobra"
)

var flagChartWidth int

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Sparklines and yearly wealth bars",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().IntVar(&flagChartWidth, "width", 60, "Chart width in columns")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	p, cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	code, err := resolveCurrency(cfg)
	if err != nil {
		return err
	}
	res, err := project(p)
	if err != nil {
		return err
	}

	width := flagChartWidth
	if width < 10 {
		width = 10
	}

	wealth := func(s model.MonthlySnapshot) float64 { return s.Wealth }
	series := []struct {
		label string
		vals  []float64
	}{
		{"Wealth (buy) ", projection.Series(res.Buy, wealth)},
		{"Wealth (rent)", projection.Series(res.Rent, wealth)},
		{"House value  ", projection.Series(res.Buy, func(s model.MonthlySnapshot) float64 { return s.HouseValue })},
		{"Mortgage     ", projection.Series(res.Buy, func(s model.MonthlySnapshot) float64 { return s.MortgageBalance })},
		{"Rent         ", projection.Series(res.Rent, func(s model.MonthlySnapshot) float64 { return s.Outlay })},
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TRENDS  %d months", p.Months())))
	fmt.Println()
	for _, s := range series {
		last := 0.0
		if len(s.vals) > 0 {
			last = s.vals[len(s.vals)-1]
		}
		fmt.Printf("  %s  %s  %s\n", s.label, cli.RenderSparkline(projection.Sample(s.vals, width)), cli.Muted(cli.FormatMoneyCompact(last, code)))
	}
	fmt.Println()

	yearly := projection.Yearly(res)
	peak := 0.0
	for _, y := range yearly {
		peak = math.Max(peak, math.Max(y.BuyWealth, y.RentPortfolio))
	}

	fmt.Println(cli.Muted("  Wealth at year end   ") + cli.BuyStyle.Render("█ buy") + "  " + cli.RentStyle.Render("█ rent"))
	for _, y := range yearly {
		fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%3d", y.Year), y.BuyWealth, peak, width, cli.BuyStyle) +
			" " + cli.Muted(cli.FormatMoneyWhole(y.BuyWealth, code)))
		fmt.Println(cli.RenderHorizontalBar("   ", y.RentPortfolio, peak, width, cli.RentStyle) +
			" " + cli.Muted(cli.FormatMoneyWhole(y.RentPortfolio, code)))
	}
	fmt.Println()
	return nil
}
