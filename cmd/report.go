package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/buyrent/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagReportRaw    bool
	flagReportOutput string
	flagReportWidth  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Markdown report of the comparison",
	Long:  "Render a markdown report in the terminal, print it raw, or write it to a file.",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagReportRaw, "raw", false, "Print markdown source instead of rendering it")
	reportCmd.Flags().StringVarP(&flagReportOutput, "output", "o", "", "Write markdown to this file")
	reportCmd.Flags().IntVar(&flagReportWidth, "width", 100, "Word wrap width for terminal rendering")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
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

	md := cli.RenderMarkdownReport(res, code)

	if flagReportOutput != "" {
		if err := os.WriteFile(flagReportOutput, []byte(md), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		progressf("  Wrote %s\n", flagReportOutput)
		return nil
	}

	if flagReportRaw {
		fmt.Print(md)
		return nil
	}

	out, err := cli.RenderTerminalMarkdown(md, cli.GlamourStyle(cfg.Appearance.Theme), flagReportWidth)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
