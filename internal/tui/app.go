// Package tui provides the interactive Bubble Tea dashboard for buyrent.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"
	"github.com/theirongolddev/buyrent/internal/tui/components"
	"github.com/theirongolddev/buyrent/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ProjectedMsg is sent when a projection run finishes.
type ProjectedMsg struct {
	Result  model.Result
	Err     error
	Elapsed time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	params   model.Parameters
	result   model.Result
	yearly   []model.YearRow
	loaded   bool
	projErr  error // last rejected parameter set; result keeps the previous run
	elapsed  time.Duration
	currency string
	dirty    bool // params differ from the saved config

	// UI state
	width          int
	height         int
	activeTab      int
	showHelp       bool
	scheduleOffset int
	flash          string

	settings settingsState

	// Parameter editor and first-run setup (huh form)
	form      *huh.Form
	formVals  *paramValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	// Scroll navigation
	scrollOverhead    = 10 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1  // minimum lines for half-page scroll
	minContentHeight  = 5  // minimum content area height

	tabOverview = 0
	tabSchedule = 1
	tabCosts    = 2
	tabSettings = 3
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model projecting params.
func NewApp(params model.Parameters, currency string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		params:    params,
		currency:  currency,
		needSetup: !config.Exists(),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		projectCmd(a.params),
	)
}

func projectCmd(p model.Parameters) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		res, err := projection.Project(p)
		return ProjectedMsg{Result: res, Err: err, Elapsed: time.Since(start)}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabSchedule {
				a.scrollSchedule(-1)
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabSchedule {
				a.scrollSchedule(1)
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar is the first line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// Form intercepts all keys
		if a.form != nil {
			return a.updateForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.flash = ""

		if a.activeTab == tabSchedule {
			halfPage := (a.height - scrollOverhead) / 2
			if halfPage < minHalfPageScroll {
				halfPage = minHalfPageScroll
			}
			switch key {
			case "j", "down":
				a.scrollSchedule(1)
				return a, nil
			case "k", "up":
				a.scrollSchedule(-1)
				return a, nil
			case "g":
				a.scheduleOffset = 0
				return a, nil
			case "G":
				a.scrollSchedule(len(a.yearly))
				return a, nil
			case "ctrl+d":
				a.scrollSchedule(halfPage)
				return a, nil
			case "ctrl+u":
				a.scrollSchedule(-halfPage)
				return a, nil
			}
		}

		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "e":
			return a.openForm(false)
		case "w":
			a.saveScenario()
			return a, nil
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil

	case ProjectedMsg:
		a.loaded = true
		a.elapsed = msg.Elapsed
		if msg.Err != nil {
			a.projErr = msg.Err
		} else {
			a.projErr = nil
			a.result = msg.Result
			a.yearly = projection.Yearly(msg.Result)
			a.scrollSchedule(0)
		}

		// First run: ask for a scenario once the defaults are on screen.
		if a.needSetup && a.form == nil {
			return a.openForm(true)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}

	return a, nil
}

func (a *App) scrollSchedule(delta int) {
	a.scheduleOffset += delta
	maxOffset := len(a.yearly) - a.scheduleRows()
	if a.scheduleOffset > maxOffset {
		a.scheduleOffset = maxOffset
	}
	if a.scheduleOffset < 0 {
		a.scheduleOffset = 0
	}
}

// saveScenario writes the current parameters to the [scenario] table.
func (a *App) saveScenario() {
	cfg := loadConfigOrDefault()
	cfg.Scenario = config.FromParameters(a.params)
	cfg.General.Preset = ""
	if err := config.Save(cfg); err != nil {
		a.flash = "Save failed: " + err.Error()
		return
	}
	a.dirty = false
	a.flash = "Scenario saved to " + config.Path()
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  buyrent needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ buyrent"))
	b.WriteString(subtitleStyle.Render(" · Buy vs Rent"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(fmt.Sprintf(" Projecting %d years...", a.params.SimulationYears)))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o s c x", "Jump to tab"},
			{"← → Tab", "Previous / Next tab"},
			{"j k", "Scroll schedule / settings"},
			{"g G", "Schedule top / bottom"},
			{"^d ^u", "Half-page scroll"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"e", "Edit scenario"},
			{"w", "Save scenario to config"},
			{"Enter", "Edit setting"},
			{"Esc", "Cancel"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + scenario pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	p := a.params
	pill := pillStyle.Render(" ") +
		pillAccentStyle.Render(cli.FormatMoneyWhole(p.HousePrice, a.currency)) +
		pillStyle.Render(" house │ ") +
		pillAccentStyle.Render(cli.FormatMoneyWhole(p.MonthlyRent, a.currency)) +
		pillStyle.Render("/mo rent │ ") +
		pillAccentStyle.Render(fmt.Sprintf("%dy", p.SimulationYears))
	if a.dirty {
		pill += pillStyle.Render(" │ ") + lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("modified")
	}

	header := components.RenderTabBar(a.activeTab, w) +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	info := fmt.Sprintf("%s · %s", a.result.Summary.Winner.Label(), a.elapsed.Round(time.Microsecond))
	if a.flash != "" {
		info = a.flash
	}
	statusBar := components.RenderStatusBar(w, "[e]dit  [w]rite  [?]help  [q]uit", info)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabSchedule:
		content = a.renderScheduleTab(cw)
	case tabCosts:
		content = a.renderCostsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
