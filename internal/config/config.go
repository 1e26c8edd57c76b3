package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"
)

// Config holds all buyrent configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Scenario   ScenarioConfig   `toml:"scenario"`
	Appearance AppearanceConfig `toml:"appearance"`
	Store      StoreConfig      `toml:"store"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency"`
	Preset   string `toml:"preset,omitempty"`
}

// ScenarioConfig holds the default projection inputs. The annual yield
// fields, when set, take precedence over their monthly counterparts.
type ScenarioConfig struct {
	HousePrice                    float64 `toml:"house_price"`
	DownPayment                   float64 `toml:"down_payment"`
	MortgageInterestRateAnnual    float64 `toml:"mortgage_interest_rate_annual"`
	MortgageTermYears             int     `toml:"mortgage_term_years"`
	ETFMonthlyYield               float64 `toml:"etf_monthly_yield"`
	HousePriceMonthlyYield        float64 `toml:"house_price_monthly_yield"`
	HouseMaintenancePercentAnnual float64 `toml:"house_maintenance_percent_annual"`
	MonthlyRent                   float64 `toml:"monthly_rent"`
	RentIncreaseAnnual            float64 `toml:"rent_increase_annual"`
	SimulationYears               int     `toml:"simulation_years"`

	ETFAnnualYield        *float64 `toml:"etf_annual_yield,omitempty"`
	HousePriceAnnualYield *float64 `toml:"house_price_annual_yield,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// StoreConfig locates the saved-scenario database.
type StoreConfig struct {
	Path string `toml:"path,omitempty"`
}

// ServerConfig holds settings for `buyrent serve`.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	IntervalSec int    `toml:"interval_sec"`
}

// Interval returns the poll interval of the scenario watcher.
func (s ServerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSec) * time.Second
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "CHF",
		},
		Scenario: FromParameters(DefaultParameters()),
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8788",
			IntervalSec: 5,
		},
	}
}

// DefaultParameters is the reference scenario used when nothing is configured.
func DefaultParameters() model.Parameters {
	p, _ := LookupPreset("swiss-example")
	return p
}

// Parameters resolves the scenario into engine inputs.
func (s ScenarioConfig) Parameters() model.Parameters {
	p := model.Parameters{
		HousePrice:                    s.HousePrice,
		DownPayment:                   s.DownPayment,
		MortgageInterestRateAnnual:    s.MortgageInterestRateAnnual,
		MortgageTermYears:             s.MortgageTermYears,
		ETFMonthlyYield:               s.ETFMonthlyYield,
		HousePriceMonthlyYield:        s.HousePriceMonthlyYield,
		HouseMaintenancePercentAnnual: s.HouseMaintenancePercentAnnual,
		MonthlyRent:                   s.MonthlyRent,
		RentIncreaseAnnual:            s.RentIncreaseAnnual,
		SimulationYears:               s.SimulationYears,
	}
	if s.ETFAnnualYield != nil {
		p.ETFMonthlyYield = projection.MonthlyRateFromAnnual(*s.ETFAnnualYield)
	}
	if s.HousePriceAnnualYield != nil {
		p.HousePriceMonthlyYield = projection.MonthlyRateFromAnnual(*s.HousePriceAnnualYield)
	}
	return p
}

// FromParameters is the inverse of ScenarioConfig.Parameters, always
// storing monthly yields.
func FromParameters(p model.Parameters) ScenarioConfig {
	return ScenarioConfig{
		HousePrice:                    p.HousePrice,
		DownPayment:                   p.DownPayment,
		MortgageInterestRateAnnual:    p.MortgageInterestRateAnnual,
		MortgageTermYears:             p.MortgageTermYears,
		ETFMonthlyYield:               p.ETFMonthlyYield,
		HousePriceMonthlyYield:        p.HousePriceMonthlyYield,
		HouseMaintenancePercentAnnual: p.HouseMaintenancePercentAnnual,
		MonthlyRent:                   p.MonthlyRent,
		RentIncreaseAnnual:            p.RentIncreaseAnnual,
		SimulationYears:               p.SimulationYears,
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "buyrent")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "buyrent")
}

// Path returns the full path to the config file. BUYRENT_CONFIG overrides it.
func Path() string {
	if ov, err := readEnv(); err == nil && ov.ConfigPath != "" {
		return ov.ConfigPath
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.General.Preset != "" {
		p, ok := LookupPreset(cfg.General.Preset)
		if !ok {
			return cfg, fmt.Errorf("unknown preset %q", cfg.General.Preset)
		}
		cfg.Scenario = FromParameters(p)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DBPath returns the saved-scenario database location.
func DBPath(cfg Config) string {
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	return filepath.Join(dataDir(), "scenarios.db")
}

func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "buyrent")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "buyrent")
}
