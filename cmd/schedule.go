package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"

	"github.com/spf13/cobra"
)

var flagMonthly bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Year-by-year (or month-by-month) projection table",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&flagMonthly, "monthly", false, "Print every month instead of year ends")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
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

	if flagMonthly {
		return printMonthly(res, code)
	}

	yearly := projection.Yearly(res)
	if flagJSON {
		return printJSON(yearly)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SCHEDULE  %d years", p.SimulationYears)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.ScheduleTable(yearly, code)))
	fmt.Println()
	return nil
}

func printMonthly(res model.Result, code string) error {
	if flagJSON {
		return printJSON(struct {
			Buy  []model.MonthlySnapshot `json:"buy"`
			Rent []model.MonthlySnapshot `json:"rent"`
		}{res.Buy, res.Rent})
	}

	rows := make([][]string, 0, len(res.Buy)+len(res.Buy)/12)
	for i := range res.Buy {
		b, r := res.Buy[i], res.Rent[i]
		rows = append(rows, []string{
			strconv.Itoa(b.Month),
			cli.FormatMoney(b.Outlay, code),
			cli.FormatMoney(r.Outlay, code),
			cli.FormatMoneyWhole(b.MortgageBalance, code),
			cli.FormatMoney(b.Contribution, code),
			cli.FormatMoney(r.Contribution, code),
			cli.FormatMoneyWhole(b.Wealth, code),
			cli.FormatMoneyWhole(r.Wealth, code),
		})
		if b.Month%12 == 0 && i < len(res.Buy)-1 {
			rows = append(rows, []string{"---"})
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Outlay (buy)", "Rent", "Mortgage", "Invest (buy)", "Invest (rent)", "Wealth (buy)", "Wealth (rent)"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
