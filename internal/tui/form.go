package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"
	"github.com/theirongolddev/buyrent/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// paramValues holds the editable form fields as text. Rates are entered
// as annual percentages.
type paramValues struct {
	price        string
	down         string
	rate         string
	term         string
	maintenance  string
	appreciation string
	rent         string
	rentIncrease string
	etf          string
	years        string
	theme        string

	orig  model.Parameters
	shown *paramValues // field text as first displayed
}

func newParamValues(p model.Parameters, themeName string) *paramValues {
	pct := func(v float64) string {
		return strconv.FormatFloat(roundTo(v*100, 4), 'f', -1, 64)
	}
	num := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	v := &paramValues{
		price:        num(p.HousePrice),
		down:         num(p.DownPayment),
		rate:         pct(p.MortgageInterestRateAnnual),
		term:         strconv.Itoa(p.MortgageTermYears),
		maintenance:  pct(p.HouseMaintenancePercentAnnual),
		appreciation: pct(projection.AnnualRateFromMonthly(p.HousePriceMonthlyYield)),
		rent:         num(p.MonthlyRent),
		rentIncrease: pct(p.RentIncreaseAnnual),
		etf:          pct(projection.AnnualRateFromMonthly(p.ETFMonthlyYield)),
		years:        strconv.Itoa(p.SimulationYears),
		theme:        themeName,
		orig:         p,
	}
	shown := *v
	v.shown = &shown
	return v
}

// apply parses the fields into a validated parameter set.
func (v *paramValues) apply() (model.Parameters, error) {
	var errs []error
	num := func(field, s string) float64 {
		f, err := parseNumber(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return f
	}
	pct := func(field, s string) float64 {
		return num(field, s) / 100
	}
	whole := func(field, s string) int {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: not a whole number", field))
		}
		return n
	}

	// Rates are shown rounded, so a field whose text is unchanged keeps
	// its original value instead of the rounded one.
	var shown paramValues
	if v.shown != nil {
		shown = *v.shown
	}
	rate := func(field, text, was string, orig float64, monthly bool) float64 {
		if v.shown != nil && text == was {
			return orig
		}
		r := pct(field, text)
		if monthly {
			r = projection.MonthlyRateFromAnnual(r)
		}
		return r
	}

	o := v.orig
	p := model.Parameters{
		HousePrice:                    num("house price", v.price),
		DownPayment:                   num("down payment", v.down),
		MortgageInterestRateAnnual:    rate("mortgage rate", v.rate, shown.rate, o.MortgageInterestRateAnnual, false),
		MortgageTermYears:             whole("mortgage term", v.term),
		HouseMaintenancePercentAnnual: rate("maintenance", v.maintenance, shown.maintenance, o.HouseMaintenancePercentAnnual, false),
		HousePriceMonthlyYield:        rate("appreciation", v.appreciation, shown.appreciation, o.HousePriceMonthlyYield, true),
		MonthlyRent:                   num("rent", v.rent),
		RentIncreaseAnnual:            rate("rent increase", v.rentIncrease, shown.rentIncrease, o.RentIncreaseAnnual, false),
		ETFMonthlyYield:               rate("ETF return", v.etf, shown.etf, o.ETFMonthlyYield, true),
		SimulationYears:               whole("horizon", v.years),
	}
	if len(errs) > 0 {
		return model.Parameters{}, errors.Join(errs...)
	}
	if err := projection.Validate(p); err != nil {
		return model.Parameters{}, err
	}
	return p, nil
}

// parseNumber accepts plain numbers with optional thousands separators
// ("1,000,000", "1'000'000", "1_000_000").
func parseNumber(s string) (float64, error) {
	s = strings.NewReplacer(",", "", "'", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return 0, errors.New("required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	return f, nil
}

func roundTo(v float64, places int) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	return f
}

func validNumber(s string) error {
	_, err := parseNumber(s)
	return err
}

func validWhole(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 || n > projection.MaxYears {
		return fmt.Errorf("enter a whole number of years from 1 to %d", projection.MaxYears)
	}
	return nil
}

// newParamForm builds the scenario editor. firstRun adds a theme picker.
func newParamForm(v *paramValues, firstRun bool) *huh.Form {
	purchase := huh.NewGroup(
		huh.NewInput().Title("House price").Value(&v.price).Validate(validNumber),
		huh.NewInput().Title("Down payment").Value(&v.down).Validate(validNumber),
		huh.NewInput().Title("Mortgage rate (% per year)").Value(&v.rate).Validate(validNumber),
		huh.NewInput().Title("Mortgage term (years)").Value(&v.term).Validate(validWhole),
		huh.NewInput().Title("Maintenance (% of value per year)").Value(&v.maintenance).Validate(validNumber),
		huh.NewInput().Title("House appreciation (% per year)").Value(&v.appreciation).Validate(validNumber),
	).Title("Purchase")

	renting := huh.NewGroup(
		huh.NewInput().Title("Monthly rent").Value(&v.rent).Validate(validNumber),
		huh.NewInput().Title("Rent increase (% per year)").Value(&v.rentIncrease).Validate(validNumber),
		huh.NewInput().Title("ETF return (% per year)").Value(&v.etf).Validate(validNumber),
		huh.NewInput().Title("Horizon (years)").Value(&v.years).Validate(validWhole),
	).Title("Renting & investing")

	groups := []*huh.Group{purchase, renting}
	if firstRun {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dashboard theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.theme),
		).Title("Appearance"))
	}

	return huh.NewForm(groups...).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
}

func (a App) openForm(firstRun bool) (tea.Model, tea.Cmd) {
	a.needSetup = false
	a.formVals = newParamValues(a.params, theme.Active.Name)
	a.form = newParamForm(a.formVals, firstRun)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.form = nil
		a.formVals = nil
		return a, nil
	}

	m, cmd := a.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.applyForm()
	case huh.StateAborted:
		a.form = nil
		a.formVals = nil
		return a, nil
	}
	return a, cmd
}

// applyForm re-projects with the edited parameters. A first-run form
// also writes the config file so setup is not offered again.
func (a App) applyForm() (tea.Model, tea.Cmd) {
	vals := a.formVals
	a.form = nil
	a.formVals = nil

	p, err := vals.apply()
	if err != nil {
		a.projErr = err
		return a, nil
	}
	a.params = p

	if vals.theme != "" && vals.theme != theme.Active.Name {
		theme.SetActive(vals.theme)
	}

	if !config.Exists() {
		cfg := loadConfigOrDefault()
		cfg.Scenario = config.FromParameters(p)
		cfg.Appearance.Theme = theme.Active.Name
		if err := config.Save(cfg); err != nil {
			a.flash = "Save failed: " + err.Error()
		} else {
			a.flash = "Saved to " + config.Path()
		}
	} else {
		a.dirty = true
	}

	return a, projectCmd(p)
}

func (a App) viewForm() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	hintStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	body := titleStyle.Render("◈ buyrent scenario") + "\n\n" +
		a.form.View() + "\n" +
		hintStyle.Render("Esc cancels · rates in % per year")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceBackground(t.Background))
}
