package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/buyrent/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("Test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Errorf("Joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}

	// Padding below the short card must be styled, not bare terminal cells.
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("Line %d has no ANSI codes: %q", i, lines[i])
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	want := lipgloss.Width(tallCard) + lipgloss.Width(shortCard)
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("Line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestMetricCardRowSumsToWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Payment", Value: "CHF 4,437"},
		{Label: "Buy", Value: "2.1M", Delta: "equity 1.2M"},
		{Label: "Rent", Value: "1.9M", Color: theme.Active.Green},
	}, 91)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 91 {
			t.Fatalf("line %d width = %d, want 91", i, w)
		}
	}
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(10, 3)
	if len(widths) != 3 || widths[0] != 4 || widths[1] != 3 || widths[2] != 3 {
		t.Fatalf("LayoutRow(10, 3) = %v, want [4 3 3]", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(10, 0) should be nil")
	}
}

func TestTabBarWidthMatchesTabVisualWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	for active := range Tabs {
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
			if i < len(Tabs)-1 {
				want++ // separator
			}
		}
		bar := strings.TrimSuffix(RenderTabBar(active, want), "\n")
		if got := lipgloss.Width(bar); got != want {
			t.Fatalf("active=%d: tab bar width %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('x'); got != 3 {
		t.Fatalf("TabIdxByKey('x') = %d, want 3", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestComparisonBars(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := ComparisonBars([]string{"Y1", "Y2"}, []float64{100, 50}, []float64{50, 0}, theme.Active.Blue, theme.Active.Green, MoneyAxis("EUR"), 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 40 {
			t.Fatalf("line %d width = %d, want 40", i, w)
		}
	}
	if strings.Count(lines[0], "█") <= strings.Count(lines[1], "█") {
		t.Fatal("larger value should render a longer bar")
	}
	if ComparisonBars([]string{"Y1"}, []float64{1, 2}, []float64{1}, "", "", nil, 40) != "" {
		t.Fatal("mismatched series should render nothing")
	}
}

func TestBarChartMoneyAxis(t *testing.T) {
	theme.SetActive("flexoki-dark")

	values := []float64{150_000, 420_000, 910_000}
	out := BarChart(values, []string{"1", "2", "3"}, theme.Active.Blue, MoneyAxis("USD"), 40, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 6 rows + axis + labels", len(lines))
	}
	if !strings.Contains(lines[0], "$1.0M│") {
		t.Fatalf("top tick = %q, want $1.0M", lines[0])
	}
	if !strings.Contains(lines[6], "$0└") {
		t.Fatalf("axis line = %q, want $0 floor", lines[6])
	}
	for i, line := range lines[:7] {
		if w := lipgloss.Width(line); w > 40 {
			t.Fatalf("line %d width = %d, exceeds 40", i, w)
		}
	}
	if !strings.Contains(lines[7], "3") {
		t.Fatalf("label line = %q, want last label", lines[7])
	}
}

func TestBarChartNegativeFloor(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := BarChart([]float64{-20_000, 10_000, 40_000}, nil, theme.Active.Blue, MoneyAxis("USD"), 40, 6)
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[len(lines)-1], "-$20.0K└") {
		t.Fatalf("axis line = %q, want the lowest value as floor", lines[len(lines)-1])
	}
}

func TestSparklineUsesOwnRange(t *testing.T) {
	theme.SetActive("flexoki-dark")

	got := Sparkline([]float64{1_000_000, 1_000_500, 1_001_000}, theme.Active.Blue)
	if !strings.Contains(got, "▁▅█") {
		t.Fatalf("Sparkline = %q, want low-mid-high", got)
	}
	if flat := Sparkline([]float64{7, 7}, theme.Active.Blue); !strings.Contains(flat, "▄▄") {
		t.Fatalf("flat Sparkline = %q, want mid height", flat)
	}
}

func TestShareBarClamps(t *testing.T) {
	theme.SetActive("flexoki-dark")

	full := ShareBar("Owned", 1.7, theme.Active.Green, 8, 20)
	if !strings.Contains(full, "100%") {
		t.Fatalf("ShareBar over 1 should clamp to 100%%: %q", full)
	}
	empty := ShareBar("Owned", -0.3, theme.Active.Green, 8, 20)
	if !strings.Contains(empty, "  0%") {
		t.Fatalf("ShareBar below 0 should clamp to 0%%: %q", empty)
	}
}
