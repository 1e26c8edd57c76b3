package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/buyrent/internal/projection"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	for _, k := range []string{"BUYRENT_CONFIG", "BUYRENT_THEME", "BUYRENT_CURRENCY", "BUYRENT_DB", "BUYRENT_ADDR", "BUYRENT_INTERVAL"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Exists() {
		t.Fatal("Exists() = true without a config file")
	}
	if cfg.General.Currency != "CHF" {
		t.Fatalf("Currency = %q, want CHF", cfg.General.Currency)
	}
	if got := cfg.Scenario.Parameters(); got != DefaultParameters() {
		t.Fatalf("scenario = %+v, want defaults", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.Scenario.MonthlyRent = 3_100
	cfg.Scenario.RentIncreaseAnnual = 0.01
	cfg.Appearance.Theme = "tokyo-night"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "buyrent", "config.toml"); Path() != want {
		t.Fatalf("Path() = %q, want %q", Path(), want)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Scenario.MonthlyRent != 3_100 || got.Scenario.RentIncreaseAnnual != 0.01 {
		t.Fatalf("scenario not round-tripped: %+v", got.Scenario)
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Fatalf("Theme = %q, want tokyo-night", got.Appearance.Theme)
	}
}

func TestLoad_AnnualYieldsConverted(t *testing.T) {
	isolate(t)
	writeFile(t, Path(), `
[scenario]
house_price = 900000
down_payment = 180000
mortgage_interest_rate_annual = 0.02
mortgage_term_years = 25
etf_annual_yield = 0.08
house_price_annual_yield = 0.03
house_maintenance_percent_annual = 0.01
monthly_rent = 2000
simulation_years = 25
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := cfg.Scenario.Parameters()
	if math.Abs(p.ETFMonthlyYield-projection.MonthlyRateFromAnnual(0.08)) > 1e-15 {
		t.Fatalf("ETFMonthlyYield = %v", p.ETFMonthlyYield)
	}
	if math.Abs(p.HousePriceMonthlyYield-projection.MonthlyRateFromAnnual(0.03)) > 1e-15 {
		t.Fatalf("HousePriceMonthlyYield = %v", p.HousePriceMonthlyYield)
	}
	if p.HousePrice != 900_000 || p.MortgageTermYears != 25 {
		t.Fatalf("scenario = %+v", p)
	}
}

func TestLoad_Preset(t *testing.T) {
	isolate(t)
	writeFile(t, Path(), "[general]\npreset = \"Winterthur\"\ncurrency = \"CHF\"\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want, _ := LookupPreset("winterthur")
	if cfg.Scenario.Parameters() != want {
		t.Fatalf("scenario = %+v, want winterthur preset", cfg.Scenario.Parameters())
	}
}

func TestLoad_UnknownPreset(t *testing.T) {
	isolate(t)
	writeFile(t, Path(), "[general]\npreset = \"atlantis\"\n")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "atlantis") {
		t.Fatalf("Load error = %v, want unknown preset", err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	isolate(t)
	writeFile(t, Path(), "[scenario\nhouse_price = ")

	_, err := Load()
	if err == nil || !strings.HasPrefix(err.Error(), "parsing config:") {
		t.Fatalf("Load error = %v, want parsing config error", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	custom := filepath.Join(dir, "elsewhere.toml")
	writeFile(t, custom, "[appearance]\ntheme = \"terminal\"\n")

	t.Setenv("BUYRENT_CONFIG", custom)
	t.Setenv("BUYRENT_CURRENCY", "EUR")
	t.Setenv("BUYRENT_DB", filepath.Join(dir, "x.db"))
	t.Setenv("BUYRENT_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Path() != custom {
		t.Fatalf("Path() = %q, want %q", Path(), custom)
	}
	if cfg.Appearance.Theme != "terminal" {
		t.Fatalf("Theme = %q, want value from BUYRENT_CONFIG file", cfg.Appearance.Theme)
	}
	if cfg.General.Currency != "EUR" {
		t.Fatalf("Currency = %q, want EUR", cfg.General.Currency)
	}
	if DBPath(cfg) != filepath.Join(dir, "x.db") {
		t.Fatalf("DBPath = %q", DBPath(cfg))
	}
	if cfg.Server.Interval() != 30*time.Second {
		t.Fatalf("Interval = %v, want 30s", cfg.Server.Interval())
	}
}

func TestLoad_BadEnvDuration(t *testing.T) {
	isolate(t)
	t.Setenv("BUYRENT_INTERVAL", "soon")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("Load error = %v, want parse env error", err)
	}
}

func TestScenarioFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flat.toml")
	writeFile(t, path, "monthly_rent = 4000\nsimulation_years = 30\n")

	base := DefaultParameters()
	p, err := LoadScenarioFile(path, base)
	if err != nil {
		t.Fatalf("LoadScenarioFile: %v", err)
	}
	if p.MonthlyRent != 4_000 || p.SimulationYears != 30 {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if p.HousePrice != base.HousePrice {
		t.Fatalf("HousePrice = %v, want base %v", p.HousePrice, base.HousePrice)
	}

	out := filepath.Join(dir, "out.toml")
	if err := SaveScenarioFile(out, p); err != nil {
		t.Fatalf("SaveScenarioFile: %v", err)
	}
	again, err := LoadScenarioFile(out, DefaultParameters())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again != p {
		t.Fatalf("reloaded %+v, want %+v", again, p)
	}
}

func TestScenarioFile_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.toml")
	writeFile(t, path, "montly_rent = 4000\n")

	_, err := LoadScenarioFile(path, DefaultParameters())
	if err == nil || !strings.Contains(err.Error(), "montly_rent") {
		t.Fatalf("error = %v, want unknown key montly_rent", err)
	}
}
