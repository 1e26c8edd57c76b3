package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func sampleResult(t *testing.T) model.Result {
	t.Helper()
	res, err := projection.Project(model.Parameters{
		HousePrice:                    1_000_000,
		DownPayment:                   200_000,
		MortgageInterestRateAnnual:    0.03,
		MortgageTermYears:             20,
		ETFMonthlyYield:               0.007,
		HousePriceMonthlyYield:        0.002,
		HouseMaintenancePercentAnnual: 0.01,
		MonthlyRent:                   2_500,
		SimulationYears:               20,
	})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	return res
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Summary",
		Headers: []string{"Figure", "Value"},
		Rows: [][]string{
			{"Short", "1"},
			{"---"},
			{"A longer label", "12,345"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[1])
	for i, line := range lines[1:] {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width %d, want %d:\n%s", i+1, w, width, out)
		}
	}
	if !strings.Contains(lines[5], "├") {
		t.Fatalf("separator row not rendered as rule: %q", lines[5])
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 50, 100})
	if got != "▁▄█" {
		t.Fatalf("RenderSparkline = %q, want ▁▄█", got)
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("RenderSparkline(nil) should be empty")
	}
}

func TestRenderHorizontalBar_Clamps(t *testing.T) {
	bar := RenderHorizontalBar("x", 200, 100, 10, BuyStyle)
	if strings.Count(bar, "█") != 10 || strings.Contains(bar, "░") {
		t.Fatalf("bar not clamped to width: %q", bar)
	}
	bar = RenderHorizontalBar("x", -5, 100, 10, BuyStyle)
	if strings.Count(bar, "░") != 10 {
		t.Fatalf("negative value should render empty bar: %q", bar)
	}
}

func TestRenderMarkdownReport(t *testing.T) {
	res := sampleResult(t)
	md := RenderMarkdownReport(res, "USD")

	for _, want := range []string{
		"# Buy vs Rent: 20 Year Analysis",
		"## Inputs",
		"## Summary",
		"## Yearly Schedule",
		"| Monthly Mortgage Payment | $4,436.78 |",
		"| Better Option | " + res.Summary.Winner.Label() + " |",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}
	// Header, alignment row, then one row per year.
	if got := strings.Count(md[strings.Index(md, "## Yearly Schedule"):], "\n|"); got != 20+2 {
		t.Fatalf("yearly table has %d rows after header, want 22", got)
	}
}

func TestRenderTerminalMarkdown(t *testing.T) {
	out, err := RenderTerminalMarkdown("# Title\n\nSome **bold** text.", "notty", 60)
	if err != nil {
		t.Fatalf("RenderTerminalMarkdown: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Fatalf("rendered output lost content: %q", out)
	}
}

func TestGlamourStyle(t *testing.T) {
	tests := map[string]string{
		"tokyo-night":  "tokyo-night",
		"terminal":     "auto",
		"flexoki-dark": "dark",
		"":             "dark",
	}
	for in, want := range tests {
		if got := GlamourStyle(in); got != want {
			t.Fatalf("GlamourStyle(%q) = %q, want %q", in, got, want)
		}
	}
}
