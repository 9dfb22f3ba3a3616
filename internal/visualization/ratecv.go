package visualization

import (
	"fmt"

	"github.com/nvandessel/lifsim/internal/constants"
	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RateCVChart plots firing rate (left axis) and CV (right axis) against
// noise sigma for a noise sweep.
func RateCVChart(res lif.SweepResult) (Chart, error) {
	if res.Len() == 0 {
		return nil, fmt.Errorf("rate/cv chart: %w", ErrNoData)
	}
	if len(res.CV) != res.Len() {
		return nil, fmt.Errorf("rate/cv chart: have %d CV values for %d conditions", len(res.CV), res.Len())
	}

	graph := chart.Chart{
		Title:  "Firing Rate and CV vs Noise",
		Width:  int(constants.ChartWidthInches * constants.ChartDPI),
		Height: int(constants.ChartHeightInches * constants.ChartDPI),
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Noise σ",
			Range: axisRange(res.Condition, false),
		},
		YAxis: chart.YAxis{
			Name:  "Firing Rate (Hz)",
			Range: axisRange(res.Rate, true),
		},
		YAxisSecondary: chart.YAxis{
			Name:  "CV",
			Range: axisRange(res.CV, true),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Firing rate",
				XValues: res.Condition,
				YValues: res.Rate,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("d62728"), StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "CV",
				XValues: res.Condition,
				YValues: res.CV,
				YAxis:   chart.YAxisSecondary,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("1f77b4"), StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return &goChart{name: "rate-cv", c: graph}, nil
}

// axisRange spans values with a non-zero width, since go-chart refuses
// degenerate ranges. fromZero pins the lower bound at 0.
func axisRange(values []float64, fromZero bool) *chart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if fromZero {
		lo = min(lo, 0)
		hi *= 1.05
	}
	if hi <= lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
