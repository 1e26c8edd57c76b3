package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"

	"github.com/spf13/cobra"
)

var flagSweep string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare buying and renting (default command)",
	Long: "Project both scenarios and print inputs, terminal figures and the verdict.\n\n" +
		"--sweep field=lo:hi:count re-projects with one parameter varied, e.g.\n" +
		"  buyrent compare --sweep mortgage_interest_rate_annual=0.01:0.05:5",
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&flagSweep, "sweep", "", "Vary one parameter: field=lo:hi:count")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	p, cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	code, err := resolveCurrency(cfg)
	if err != nil {
		return err
	}

	if flagSweep != "" {
		return runSweep(p, code)
	}

	res, err := project(p)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(struct {
			Params  model.Parameters `json:"params"`
			Summary model.Summary    `json:"summary"`
		}{res.Params, res.Summary})
	}

	s := res.Summary
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUY VS RENT  %d years", p.SimulationYears)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Inputs",
		Headers: []string{"Parameter", "Value"},
		Rows:    cli.InputRows(p, code),
	}))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Outcome",
		Headers: []string{"Figure", "Value"},
		Rows:    cli.SummaryRows(s, code),
	}))
	fmt.Println()

	verdict := fmt.Sprintf("  %s is better by %s after %d years",
		s.Winner.Label(), cli.FormatMoneyWhole(absf(s.WealthDifference), code), p.SimulationYears)
	switch s.Winner {
	case model.WinnerBuy:
		fmt.Println(cli.BuyStyle.Render(verdict))
	case model.WinnerRent:
		fmt.Println(cli.RentStyle.Render(verdict))
	default:
		fmt.Println(cli.Muted("  Buying and renting end level"))
	}
	fmt.Println()
	return nil
}

func runSweep(p model.Parameters, code string) error {
	field, values, err := parseSweep(flagSweep)
	if err != nil {
		return err
	}

	points, err := projection.Sweep(p, field, values)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(struct {
			Field  string                  `json:"field"`
			Points []projection.SweepPoint `json:"points"`
		}{field, points})
	}

	rows := make([][]string, 0, len(points))
	for _, pt := range points {
		s := pt.Summary
		rows = append(rows, []string{
			strconv.FormatFloat(pt.Value, 'g', 6, 64),
			cli.FormatMoney(s.MonthlyPayment, code),
			cli.FormatMoneyWhole(s.FinalBuyWealth, code),
			cli.FormatMoneyWhole(s.FinalRentPortfolio, code),
			cli.FormatDelta(s.WealthDifference, code),
			cli.FormatMonths(s.BreakevenMonth),
			s.Winner.Label(),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SWEEP  %s", field)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{field, "Payment", "Wealth (buy)", "Wealth (rent)", "Difference", "Ahead", "Better"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

// parseSweep parses "field=lo:hi:count".
func parseSweep(arg string) (string, []float64, error) {
	field, rng, ok := strings.Cut(arg, "=")
	if !ok || field == "" {
		return "", nil, fmt.Errorf("invalid --sweep %q: want field=lo:hi:count", arg)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("invalid --sweep range %q: want lo:hi:count", rng)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid --sweep low bound %q", parts[0])
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid --sweep high bound %q", parts[1])
	}
	count, err := strconv.Atoi(parts[2])
	if err != nil || count < 1 || count > 100 {
		return "", nil, fmt.Errorf("invalid --sweep count %q: want 1-100", parts[2])
	}
	return strings.TrimSpace(field), projection.Steps(lo, hi, count), nil
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
