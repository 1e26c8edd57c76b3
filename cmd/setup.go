package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const customPreset = "custom"

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	currency := cfg.General.Currency
	preset := cfg.General.Preset
	if preset == "" {
		preset = customPreset
	}
	themeName := cfg.Appearance.Theme

	presetOpts := []huh.Option[string]{huh.NewOption("Keep my [scenario] values", customPreset)}
	for _, name := range config.PresetNames() {
		presetOpts = append(presetOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to buyrent!").
				Description("Settings are saved to "+config.Path()+"\nScenario values can be edited later with `buyrent tui`."),
			huh.NewInput().
				Title("Currency").
				Description("ISO code used for all amounts").
				Value(&currency).
				Validate(func(s string) error {
					if !cli.KnownCurrency(s) {
						return fmt.Errorf("unknown currency %q", s)
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Starting scenario").
				Options(presetOpts...).
				Value(&preset),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.General.Currency = strings.ToUpper(strings.TrimSpace(currency))
	cfg.Appearance.Theme = themeName
	if preset == customPreset {
		cfg.General.Preset = ""
	} else {
		cfg.General.Preset = preset
		if p, ok := config.LookupPreset(preset); ok {
			cfg.Scenario = config.FromParameters(p)
		}
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `buyrent setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
