package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/store"

	"github.com/spf13/cobra"
)

var scenarioCmd = &cobra.Command{
	Use:     "scenario",
	Aliases: []string{"sc"},
	Short:   "Save, list, show and delete named scenarios",
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Project the current scenario and store it as NAME",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioSave,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	Args:  cobra.NoArgs,
	RunE:  runScenarioList,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Re-project a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioShow,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

var scenarioExportCmd = &cobra.Command{
	Use:   "export NAME FILE",
	Short: "Write a saved scenario to a TOML file usable with --file",
	Args:  cobra.ExactArgs(2),
	RunE:  runScenarioExport,
}

func init() {
	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioListCmd, scenarioShowCmd, scenarioDeleteCmd, scenarioExportCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	st, err := store.Open(config.DBPath(cfg))
	if err != nil {
		return nil, cfg, err
	}
	return st, cfg, nil
}

func runScenarioSave(cmd *cobra.Command, args []string) error {
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

	st, err := store.Open(config.DBPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.SaveScenario(args[0], p, res.Summary); err != nil {
		return err
	}

	fmt.Printf("  Saved %q: %s better by %s\n", args[0],
		res.Summary.Winner.Label(), cli.FormatMoneyWhole(absf(res.Summary.WealthDifference), code))
	return nil
}

func runScenarioList(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	scenarios, err := st.ListScenarios()
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(scenarios)
	}
	if len(scenarios) == 0 {
		fmt.Println("\n  No saved scenarios. Use `buyrent scenario save NAME`.")
		return nil
	}

	code, err := resolveCurrency(cfg)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(scenarios))
	for _, s := range scenarios {
		rows = append(rows, []string{
			s.Name,
			cli.FormatMoneyWhole(s.Params.HousePrice, code),
			cli.FormatMoneyWhole(s.Params.MonthlyRent, code),
			fmt.Sprintf("%dy", s.Params.SimulationYears),
			cli.FormatMoneyWhole(s.BuyWealth, code),
			cli.FormatMoneyWhole(s.RentWealth, code),
			s.Winner.Label(),
			s.SavedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Saved Scenarios (%d)", len(rows)),
		Headers: []string{"Name", "House", "Rent", "Horizon", "Wealth (buy)", "Wealth (rent)", "Better", "Saved"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runScenarioShow(_ *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sc, err := st.LoadScenario(args[0])
	if err != nil {
		return notFoundHint(err)
	}
	code, err := resolveCurrency(cfg)
	if err != nil {
		return err
	}
	res, err := project(sc.Params)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(struct {
			Scenario store.Scenario `json:"scenario"`
			Current  model.Summary  `json:"current"`
		}{sc, res.Summary})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %d years", sc.Name, sc.Params.SimulationYears)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Inputs",
		Headers: []string{"Parameter", "Value"},
		Rows:    cli.InputRows(sc.Params, code),
	}))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Outcome",
		Headers: []string{"Figure", "Value"},
		Rows:    cli.SummaryRows(res.Summary, code),
	}))
	fmt.Printf("\n  %s\n\n", cli.Muted("Saved "+sc.SavedAt.Local().Format("2006-01-02 15:04")))
	return nil
}

func runScenarioDelete(_ *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.DeleteScenario(args[0]); err != nil {
		return notFoundHint(err)
	}
	fmt.Printf("  Deleted %q\n", args[0])
	return nil
}

func runScenarioExport(_ *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sc, err := st.LoadScenario(args[0])
	if err != nil {
		return notFoundHint(err)
	}
	if err := config.SaveScenarioFile(args[1], sc.Params); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", args[1])
	return nil
}

func notFoundHint(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w (see `buyrent scenario list`)", err)
	}
	return err
}
