package visualization

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"github.com/nvandessel/lifsim/internal/lif"
)

// Terminal plot dimensions, in character cells.
const (
	asciiHeight = 15
	asciiWidth  = 72
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// ASCIISeries draws values as a terminal line plot with a caption.
// Empty input yields an empty string.
func ASCIISeries(values []float64, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(asciiHeight),
		asciigraph.Width(asciiWidth),
		asciigraph.Caption(caption),
	)
}

// ASCIITrace draws the voltage of a trace.
func ASCIITrace(tr lif.Trace, caption string) string {
	return ASCIISeries(tr.Voltage, caption)
}

// NoiseRow is one line of a noise summary table.
type NoiseRow struct {
	Sigma float64
	lif.SpikeStats
}

// SummaryTable renders per-sigma spike statistics.
func SummaryTable(rows []NoiseRow) string {
	t := newTable("σ", "Spikes", "Rate (Hz)", "CV")
	for _, r := range rows {
		t.Row(
			strconv.FormatFloat(r.Sigma, 'g', -1, 64),
			strconv.Itoa(r.Count),
			fmt.Sprintf("%.2f", r.Rate),
			fmt.Sprintf("%.3f", r.CV),
		)
	}
	return t.Render()
}

// SweepTable renders a sweep result. The CV column is shown only when the
// result carries CVs.
func SweepTable(res lif.SweepResult, condition string) string {
	hasCV := len(res.CV) == res.Len() && res.Len() > 0
	headers := []string{condition, "Rate (Hz)"}
	if hasCV {
		headers = append(headers, "CV")
	}

	t := newTable(headers...)
	for i := range res.Condition {
		row := []string{
			strconv.FormatFloat(res.Condition[i], 'g', 6, 64),
			fmt.Sprintf("%.2f", res.Rate[i]),
		}
		if hasCV {
			row = append(row, fmt.Sprintf("%.3f", res.CV[i]))
		}
		t.Row(row...)
	}
	return t.Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
