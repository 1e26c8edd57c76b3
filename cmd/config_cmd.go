// Package cmd implements the buyrent CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cfg)
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency: %s\n", cfg.General.Currency)
	if cfg.General.Preset != "" {
		fmt.Printf("    Preset:   %s\n", cfg.General.Preset)
	} else {
		fmt.Println("    Preset:   none (custom scenario)")
	}
	fmt.Println()

	fmt.Println("  [Scenario]")
	code, err := resolveCurrency(cfg)
	if err != nil {
		code = cli.DefaultCurrency
	}
	for _, row := range cli.InputRows(cfg.Scenario.Parameters(), code) {
		fmt.Printf("    %-19s %s\n", row[0]+":", row[1])
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Database: %s\n", config.DBPath(cfg))
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:  %s\n", cfg.Server.Addr)
	fmt.Printf("    Interval: %s\n", cfg.Server.Interval())
	fmt.Println()

	fmt.Printf("  Presets: %v\n", config.PresetNames())
	fmt.Println("  Run `buyrent setup` to reconfigure.")
	return nil
}
