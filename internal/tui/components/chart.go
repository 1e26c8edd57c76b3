package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/buyrent/internal/cli"
	"github.com/theirongolddev/buyrent/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// AxisFormat renders a value for an axis tick or a bar label.
type AxisFormat func(float64) string

// MoneyAxis formats chart values as compact amounts in a currency.
func MoneyAxis(code string) AxisFormat {
	return func(v float64) string { return cli.FormatMoneyCompact(v, code) }
}

func plainAxis(v float64) string { return cli.FormatCompact(v) }

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values scaled between their own low and high, so a
// slow climb on a large base still shows its shape. A flat series renders
// at mid height.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := valueRange(values)
	top := len(sparkBlocks) - 1

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := top / 2
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		buf.WriteRune(sparkBlocks[min(max(idx, 0), top)])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// BarChart renders one vertical bar per value over a labelled y axis.
// Bars grow from zero, or from the lowest value when the series dips below
// it. Too many values for the width are thinned, keeping the last one.
func BarChart(values []float64, labels []string, color lipgloss.Color, format AxisFormat, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	if format == nil {
		format = plainAxis
	}
	t := theme.Active

	lo, hi := valueRange(values)
	floor := math.Min(0, lo)
	step := chartTickStep(hi - floor)
	ceiling := floor + math.Ceil((hi-floor)/step)*step
	if ceiling <= floor {
		ceiling = floor + 1
	}

	// Ticks at the top, the middle and the floor.
	ticks := map[int]string{
		height:     format(ceiling),
		height / 2: format(floor + (ceiling-floor)/2),
	}
	axisW := lipgloss.Width(format(floor))
	for _, l := range ticks {
		axisW = max(axisW, lipgloss.Width(l))
	}

	plotW := max(width-axisW-1, 5)
	values, labels = thinBars(values, labels, (plotW+1)/3)
	n := len(values)
	barW := min(max((plotW-(n-1))/n, 2), 6)
	plotLen := n*barW + n - 1

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	finalStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface) // last year
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	span := ceiling - floor
	for row := height; row >= 1; row-- {
		top := floor + span*float64(row)/float64(height)
		bottom := floor + span*float64(row-1)/float64(height)

		b.WriteString(axisStyle.Render(padLeft(ticks[row], axisW) + "│"))
		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(" "))
			}
			style := barStyle
			if i == n-1 {
				style = finalStyle
			}
			switch {
			case v >= top:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v > bottom:
				frac := (v - bottom) / (top - bottom)
				idx := min(max(int(frac*float64(len(sparkBlocks))), 0), len(sparkBlocks)-1)
				b.WriteString(style.Render(strings.Repeat(string(sparkBlocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(padLeft(format(floor), axisW) + "└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", plotLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", axisW+1)))
		b.WriteString(axisStyle.Render(barLabels(labels, barW, plotLen)))
	}
	return b.String()
}

// thinBars keeps at most limit values, evenly spaced, always ending on the
// last value.
func thinBars(values []float64, labels []string, limit int) ([]float64, []string) {
	n := len(values)
	if limit < 2 || n <= limit {
		return values, labels
	}
	keepLabels := len(labels) == n
	outV := make([]float64, limit)
	var outL []string
	if keepLabels {
		outL = make([]string, limit)
	}
	for i := range outV {
		src := i * (n - 1) / (limit - 1)
		outV[i] = values[src]
		if keepLabels {
			outL[i] = labels[src]
		}
	}
	return outV, outL
}

// barLabels places labels under their bars, skipping any that would
// collide with the previous one. The last label always wins its slot.
func barLabels(labels []string, barW, plotLen int) string {
	line := []rune(strings.Repeat(" ", plotLen))
	place := func(pos int, lbl string) {
		r := []rune(lbl)
		if pos+len(r) > plotLen {
			pos = max(plotLen-len(r), 0)
		}
		for k := 0; k < len(r) && pos+k < plotLen; k++ {
			line[pos+k] = r[k]
		}
	}

	last := len(labels) - 1
	lastPos := last * (barW + 1)
	nextFree := 0
	for i, lbl := range labels[:last] {
		pos := i * (barW + 1)
		if pos < nextFree || pos+len([]rune(lbl)) >= lastPos {
			continue
		}
		place(pos, lbl)
		nextFree = pos + len([]rune(lbl)) + 1
	}
	place(lastPos, labels[last])
	return strings.TrimRight(string(line), " ")
}

// padLeft right-aligns s in w cells; currency symbols may be multi-byte.
func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(w-lipgloss.Width(s), 0)) + s
}

func valueRange(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// ComparisonBars renders one row pair per label comparing series a and b
// on a shared scale, e.g. yearly buy vs rent costs.
func ComparisonBars(labels []string, a, b []float64, colorA, colorB lipgloss.Color, format AxisFormat, width int) string {
	if len(labels) == 0 || len(a) != len(labels) || len(b) != len(labels) {
		return ""
	}
	t := theme.Active

	maxVal := 0.0
	labelW := 0
	for i, l := range labels {
		maxVal = math.Max(maxVal, math.Max(a[i], b[i]))
		if w := lipgloss.Width(l); w > labelW {
			labelW = w
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	if format == nil {
		format = plainAxis
	}
	valueW := 0
	for i := range labels {
		valueW = max(valueW, lipgloss.Width(format(a[i])), lipgloss.Width(format(b[i])))
	}
	valueW++
	barMax := width - labelW - valueW - 2
	if barMax < 1 {
		barMax = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	row := func(label string, v float64, color lipgloss.Color) string {
		n := int(v / maxVal * float64(barMax))
		if n < 0 {
			n = 0
		}
		barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
		return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
			spaceStyle.Render(" ") +
			barStyle.Render(strings.Repeat("█", n)) +
			spaceStyle.Render(strings.Repeat(" ", barMax-n+1)) +
			valStyle.Render(padLeft(format(v), valueW))
	}

	var out strings.Builder
	for i, l := range labels {
		out.WriteString(row(l, a[i], colorA))
		out.WriteString("\n")
		out.WriteString(row("", b[i], colorB))
		if i < len(labels)-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}

// chartTickStep returns a 1, 2 or 5 multiple of a power of ten that splits
// span into roughly two intervals.
func chartTickStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	rough := span / 2
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}
