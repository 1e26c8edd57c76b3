package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/source"
	"github.com/theirongolddev/buyrent/internal/store"

	"github.com/spf13/cobra"
)

var flagBatchSave bool

var batchCmd = &cobra.Command{
	Use:   "batch DIR",
	Short: "Project every scenario file in a directory",
	Long: "Each *.toml file under DIR is layered over the configured scenario and\n" +
		"projected. Files that fail to parse or validate are reported and skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&flagBatchSave, "save", false, "Store every projected scenario under its file name")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	base, cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	code, err := resolveCurrency(cfg)
	if err != nil {
		return err
	}

	progressf("  Scanning %s...\n", args[0])
	result, err := source.LoadAll(args[0], base, func(current, total int) {
		if current%10 == 0 || current == total {
			progressf("\r  Projecting [%d/%d]", current, total)
		}
	})
	if err != nil {
		return err
	}
	if result.TotalFiles > 0 {
		progressf("\r  Projected %d of %d scenarios    \n", len(result.Entries), result.TotalFiles)
	}

	if flagBatchSave && len(result.Entries) > 0 {
		if err := saveEntries(cfg, result.Entries); err != nil {
			return err
		}
	}

	for _, fe := range result.FileErrors {
		fmt.Fprintf(os.Stderr, "  skipped %s\n", fe.Error())
	}

	if flagJSON {
		type row struct {
			Name    string           `json:"name"`
			Params  model.Parameters `json:"params"`
			Summary model.Summary    `json:"summary"`
		}
		rows := make([]row, 0, len(result.Entries))
		for _, e := range result.Entries {
			rows = append(rows, row{e.File.Name, e.Result.Params, e.Result.Summary})
		}
		return printJSON(rows)
	}

	if len(result.Entries) == 0 {
		fmt.Printf("\n  No scenario files projected in %s.\n", args[0])
		return nil
	}

	rows := make([][]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		s := e.Result.Summary
		rows = append(rows, []string{
			e.File.Name,
			cli.FormatMoney(s.MonthlyPayment, code),
			cli.FormatMoneyWhole(s.FinalBuyWealth, code),
			cli.FormatMoneyWhole(s.FinalRentPortfolio, code),
			cli.FormatDelta(s.WealthDifference, code),
			cli.FormatMonths(s.BreakevenMonth),
			s.Winner.Label(),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BATCH  %d scenarios", len(rows))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Payment", "Wealth (buy)", "Wealth (rent)", "Difference", "Ahead", "Better"},
		Rows:    rows,
	}))

	if len(result.FileErrors) > 0 {
		fmt.Fprintf(os.Stderr, "\n  %d files could not be used\n", len(result.FileErrors))
	}
	return nil
}

func saveEntries(cfg config.Config, entries []source.Entry) error {
	st, err := store.Open(config.DBPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	for _, e := range entries {
		if err := st.SaveScenario(e.File.Name, e.Result.Params, e.Result.Summary); err != nil {
			return err
		}
	}
	progressf("  Saved %d scenarios to %s\n", len(entries), config.DBPath(cfg))
	return nil
}
