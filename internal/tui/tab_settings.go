package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/projection"
	"github.com/theirongolddev/buyrent/internal/tui/components"
	"github.com/theirongolddev/buyrent/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldPreset
	settingsFieldHorizon
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(theme.Active.Name)
	case settingsFieldCurrency:
		ti.Placeholder = "CHF, USD, EUR, ..."
		ti.SetValue(a.currency)
	case settingsFieldPreset:
		ti.Placeholder = strings.Join(config.PresetNames(), ", ")
		ti.SetValue(cfg.General.Preset)
	case settingsFieldHorizon:
		ti.Placeholder = "20 (years)"
		ti.SetValue(strconv.Itoa(a.params.SimulationYears))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cmd := a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, cmd
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited field and persists it. Changes that
// alter the scenario return a projection command.
func (a *App) settingsSave() tea.Cmd {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	var cmd tea.Cmd
	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return nil
		}
		cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldCurrency:
		code := strings.ToUpper(val)
		if !cli.KnownCurrency(code) {
			a.settings.saveErr = fmt.Errorf("unknown currency %q", val)
			return nil
		}
		cfg.General.Currency = code
		a.currency = code
	case settingsFieldPreset:
		if val == "" {
			cfg.General.Preset = ""
			break
		}
		p, ok := config.LookupPreset(val)
		if !ok {
			a.settings.saveErr = fmt.Errorf("unknown preset %q", val)
			return nil
		}
		cfg.General.Preset = config.NormalizePresetName(val)
		a.params = p
		a.dirty = false
		cmd = projectCmd(p)
	case settingsFieldHorizon:
		years, err := strconv.Atoi(val)
		if err != nil || years <= 0 || years > projection.MaxYears {
			a.settings.saveErr = fmt.Errorf("horizon must be 1-%d years", projection.MaxYears)
			return nil
		}
		a.params.SimulationYears = years
		cfg.Scenario.SimulationYears = years
		cmd = projectCmd(a.params)
	}

	a.settings.saveErr = config.Save(cfg)
	return cmd
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	preset := cfg.General.Preset
	if preset == "" {
		preset = "(custom scenario)"
	}

	fields := []field{
		{"Theme", theme.Active.Name},
		{"Currency", a.currency},
		{"Preset", preset},
		{"Horizon", fmt.Sprintf("%d years", a.params.SimulationYears)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			padLen := components.CardInnerWidth(cw) - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("Scenario store:  ") + valueStyle.Render(config.DBPath(cfg)) + "\n")
	infoBody.WriteString(labelStyle.Render("Presets:         ") + valueStyle.Render(strings.Join(config.PresetNames(), ", ")) + "\n")
	infoBody.WriteString(labelStyle.Render("Months:          ") + valueStyle.Render(cli.FormatNumber(int64(a.result.Summary.Months))) + "\n")
	infoBody.WriteString(labelStyle.Render("Projection time: ") + valueStyle.Render(a.elapsed.String()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
