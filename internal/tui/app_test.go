package tui

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func referenceParams() model.Parameters {
	return model.Parameters{
		HousePrice:                    1_000_000,
		DownPayment:                   200_000,
		MortgageInterestRateAnnual:    0.03,
		MortgageTermYears:             20,
		ETFMonthlyYield:               0.007,
		HousePriceMonthlyYield:        0.002,
		HouseMaintenancePercentAnnual: 0.01,
		MonthlyRent:                   2_500,
		SimulationYears:               20,
	}
}

func TestParamValuesRoundTrip(t *testing.T) {
	p := referenceParams()
	got, err := newParamValues(p, "flexoki-dark").apply()
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got.HousePrice != p.HousePrice || got.DownPayment != p.DownPayment || got.MonthlyRent != p.MonthlyRent {
		t.Fatalf("amounts changed: %+v", got)
	}
	if got.MortgageTermYears != 20 || got.SimulationYears != 20 {
		t.Fatalf("years changed: %+v", got)
	}
	if got != p {
		t.Fatalf("untouched form changed parameters:\n got %+v\nwant %+v", got, p)
	}
}

func TestParamValuesRepeatedSavesKeepYields(t *testing.T) {
	p := referenceParams()
	p.ETFMonthlyYield = projection.MonthlyRateFromAnnual(0.0712345678)
	for i := 0; i < 5; i++ {
		next, err := newParamValues(p, "").apply()
		if err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
		if next.ETFMonthlyYield != p.ETFMonthlyYield {
			t.Fatalf("save %d: etf = %v, want %v", i, next.ETFMonthlyYield, p.ETFMonthlyYield)
		}
		p = next
	}
}

func TestParamValuesEditedYieldIsParsed(t *testing.T) {
	v := newParamValues(referenceParams(), "")
	v.etf = "6"
	v.rate = "2.5"

	got, err := v.apply()
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if want := projection.MonthlyRateFromAnnual(0.06); math.Abs(got.ETFMonthlyYield-want) > 1e-15 {
		t.Errorf("etf = %v, want %v", got.ETFMonthlyYield, want)
	}
	if math.Abs(got.MortgageInterestRateAnnual-0.025) > 1e-15 {
		t.Errorf("rate = %v, want 0.025", got.MortgageInterestRateAnnual)
	}
	if got.HousePriceMonthlyYield != referenceParams().HousePriceMonthlyYield {
		t.Errorf("untouched appreciation changed to %v", got.HousePriceMonthlyYield)
	}
}

func TestParamValuesApplyErrors(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(v *paramValues)
		wantErr string
	}{
		{"not a number", func(v *paramValues) { v.price = "lots" }, "house price: not a number"},
		{"empty", func(v *paramValues) { v.rent = "" }, "rent: required"},
		{"fractional years", func(v *paramValues) { v.years = "2.5" }, "horizon: not a whole number"},
		{"down exceeds price", func(v *paramValues) { v.down = "2000000" }, "down_payment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newParamValues(referenceParams(), "")
			tt.edit(v)
			_, err := v.apply()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParamValuesValidationIsParamError(t *testing.T) {
	v := newParamValues(referenceParams(), "")
	v.down = "2000000"
	_, err := v.apply()
	if !errors.Is(err, projection.ErrInvalidParameter) {
		t.Fatalf("error %v is not ErrInvalidParameter", err)
	}
}

func TestParseNumberSeparators(t *testing.T) {
	for _, in := range []string{"1,000,000", "1'000'000", "1_000_000", " 1000000 "} {
		got, err := parseNumber(in)
		if err != nil || got != 1_000_000 {
			t.Errorf("parseNumber(%q) = %v, %v", in, got, err)
		}
	}
}

func projected(t *testing.T) App {
	t.Helper()
	p := referenceParams()
	res, err := projection.Project(p)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	a := App{params: p, currency: "USD", width: 140, height: 50}
	m, _ := a.Update(ProjectedMsg{Result: res})
	return m.(App)
}

func TestProjectedMsgLoadsYearly(t *testing.T) {
	a := projected(t)
	if !a.loaded {
		t.Fatal("app not marked loaded")
	}
	if len(a.yearly) != 20 {
		t.Fatalf("yearly rows = %d, want 20", len(a.yearly))
	}
	if a.result.Summary.MonthlyPayment == 0 {
		t.Fatal("summary missing")
	}
}

func TestProjectedErrorKeepsLastResult(t *testing.T) {
	a := projected(t)
	before := a.result.Summary

	m, _ := a.Update(ProjectedMsg{Err: errors.New("bad input")})
	a = m.(App)
	if a.projErr == nil {
		t.Fatal("projErr not set")
	}
	if a.result.Summary != before {
		t.Fatal("result replaced by failed run")
	}
	if !strings.Contains(a.renderOverviewTab(a.contentWidth()), "Scenario Rejected") {
		t.Fatal("overview does not show the rejection card")
	}
}

func TestScheduleScrollClamps(t *testing.T) {
	a := projected(t)
	a.height = 20 // 10 visible rows

	a.activeTab = tabSchedule
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	a = m.(App)
	if want := 20 - a.scheduleRows(); a.scheduleOffset != want {
		t.Fatalf("offset after G = %d, want %d", a.scheduleOffset, want)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	a = m.(App)
	if a.scheduleOffset != 0 {
		t.Fatalf("offset after g = %d, want 0", a.scheduleOffset)
	}

	a.scrollSchedule(-5)
	if a.scheduleOffset != 0 {
		t.Fatalf("offset went negative: %d", a.scheduleOffset)
	}
}

func TestTabKeysSwitchTabs(t *testing.T) {
	a := projected(t)
	for key, want := range map[rune]int{'s': tabSchedule, 'c': tabCosts, 'x': tabSettings, 'o': tabOverview} {
		m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
		if got := m.(App).activeTab; got != want {
			t.Errorf("key %q -> tab %d, want %d", key, got, want)
		}
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := projected(t)
	for tab := tabOverview; tab <= tabSettings; tab++ {
		a.activeTab = tab
		out := a.View()
		if got := lipgloss.Height(out); got != a.height {
			t.Errorf("tab %d: view height = %d, want %d", tab, got, a.height)
		}
	}
}

func TestSettingsRejectsUnknownCurrency(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := projected(t)
	a.settings.cursor = settingsFieldCurrency
	a.settings.input = newSettingsInput()
	a.settings.input.SetValue("XXQ")

	if cmd := a.settingsSave(); cmd != nil {
		t.Fatal("currency change should not re-project")
	}
	if a.settings.saveErr == nil {
		t.Fatal("expected unknown currency error")
	}
	if a.currency != "USD" {
		t.Fatalf("currency changed to %q", a.currency)
	}
}

func TestSettingsRejectsHorizonAboveMaximum(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := projected(t)
	a.settings.cursor = settingsFieldHorizon
	a.settings.input = newSettingsInput()
	a.settings.input.SetValue(strconv.Itoa(projection.MaxYears + 1))

	if cmd := a.settingsSave(); cmd != nil {
		t.Fatal("rejected horizon should not re-project")
	}
	if a.settings.saveErr == nil {
		t.Fatal("expected horizon error")
	}
	if a.params.SimulationYears != referenceParams().SimulationYears {
		t.Fatalf("horizon changed to %d", a.params.SimulationYears)
	}
}

func TestSettingsPresetReprojects(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := projected(t)
	a.settings.cursor = settingsFieldPreset
	a.settings.input = newSettingsInput()
	a.settings.input.SetValue("Cautious")

	if cmd := a.settingsSave(); cmd == nil {
		t.Fatal("preset change should re-project")
	}
	want, _ := config.LookupPreset("cautious")
	if a.params != want {
		t.Fatalf("params = %+v, want cautious preset", a.params)
	}
	if a.settings.saveErr != nil {
		t.Fatalf("save: %v", a.settings.saveErr)
	}
}
