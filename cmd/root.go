package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"

	"github.com/spf13/cobra"
)

var (
	flagFile     string
	flagYears    int
	flagCurrency string
	flagJSON     bool
	flagQuiet    bool

	flagPrice        float64
	flagDown         float64
	flagRate         float64
	flagTerm         int
	flagETF          float64
	flagAppreciation float64
	flagMaintenance  float64
	flagRent         float64
	flagRentIncrease float64
)

var rootCmd = &cobra.Command{
	Use:   "buyrent",
	Short: "Buy vs rent wealth projection",
	Long: "Project household wealth month by month for buying a house with a mortgage\n" +
		"versus renting and investing the difference in an ETF.",
	RunE:         runCompare,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagFile, "file", "f", "", "Scenario TOML file layered over the config")
	pf.IntVarP(&flagYears, "years", "y", 0, "Simulation horizon in years")
	pf.StringVar(&flagCurrency, "currency", "", "ISO currency code for output (default from config)")
	pf.BoolVar(&flagJSON, "json", false, "Print JSON instead of tables")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")

	pf.Float64Var(&flagPrice, "price", 0, "House price")
	pf.Float64Var(&flagDown, "down", 0, "Down payment")
	pf.Float64Var(&flagRate, "rate", 0, "Mortgage interest rate, annual fraction (0.03 = 3%)")
	pf.IntVar(&flagTerm, "term", 0, "Mortgage term in years")
	pf.Float64Var(&flagETF, "etf", 0, "ETF return, annual fraction (converted to monthly)")
	pf.Float64Var(&flagAppreciation, "appreciation", 0, "House price growth, annual fraction (converted to monthly)")
	pf.Float64Var(&flagMaintenance, "maintenance", 0, "Maintenance cost, annual fraction of house value")
	pf.Float64Var(&flagRent, "rent", 0, "Monthly rent")
	pf.Float64Var(&flagRentIncrease, "rent-increase", 0, "Rent increase, annual fraction")
}

// loadScenario is the shared parameter resolution path used by all
// commands: config (or preset), then --file, then parameter flags.
func loadScenario(cmd *cobra.Command) (model.Parameters, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return model.Parameters{}, cfg, err
	}

	p := cfg.Scenario.Parameters()
	if flagFile != "" {
		p, err = config.LoadScenarioFile(flagFile, p)
		if err != nil {
			return p, cfg, err
		}
	}

	applyParamFlags(cmd, &p)
	return p, cfg, nil
}

// applyParamFlags overrides p with every parameter flag the user set.
func applyParamFlags(cmd *cobra.Command, p *model.Parameters) {
	flags := cmd.Flags()
	if flags.Changed("price") {
		p.HousePrice = flagPrice
	}
	if flags.Changed("down") {
		p.DownPayment = flagDown
	}
	if flags.Changed("rate") {
		p.MortgageInterestRateAnnual = flagRate
	}
	if flags.Changed("term") {
		p.MortgageTermYears = flagTerm
	}
	if flags.Changed("etf") {
		p.ETFMonthlyYield = projection.MonthlyRateFromAnnual(flagETF)
	}
	if flags.Changed("appreciation") {
		p.HousePriceMonthlyYield = projection.MonthlyRateFromAnnual(flagAppreciation)
	}
	if flags.Changed("maintenance") {
		p.HouseMaintenancePercentAnnual = flagMaintenance
	}
	if flags.Changed("rent") {
		p.MonthlyRent = flagRent
	}
	if flags.Changed("rent-increase") {
		p.RentIncreaseAnnual = flagRentIncrease
	}
	if flags.Changed("years") {
		p.SimulationYears = flagYears
	}
}

// resolveCurrency picks --currency over the configured one.
func resolveCurrency(cfg config.Config) (string, error) {
	code := cfg.General.Currency
	if flagCurrency != "" {
		code = flagCurrency
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return cli.DefaultCurrency, nil
	}
	if !cli.KnownCurrency(code) {
		return "", fmt.Errorf("unknown currency %q", code)
	}
	return code, nil
}

// project runs the engine and rewords validation failures for the terminal.
func project(p model.Parameters) (model.Result, error) {
	res, err := projection.Project(p)
	if errors.Is(err, projection.ErrInvalidParameter) {
		return res, fmt.Errorf("scenario rejected:\n%w", err)
	}
	return res, err
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
