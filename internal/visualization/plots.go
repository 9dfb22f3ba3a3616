package visualization

import (
	"fmt"
	"image/color"

	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/neuron"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	voltageColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	rateColor    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	histColor    = color.RGBA{R: 148, G: 103, B: 189, A: 255}

	// refColors maps reference potentials to line colors.
	refColors = map[string]color.RGBA{
		"V_thresh": {R: 255, G: 127, B: 14, A: 255},
		"V_reset":  {R: 44, G: 160, B: 44, A: 255},
		"V_rest":   {R: 127, G: 127, B: 127, A: 255},
		"V_spike":  {R: 23, G: 190, B: 207, A: 255},
	}
)

// TraceChart plots a membrane trace with dashed lines at the threshold,
// reset, rest and spike potentials.
func TraceChart(tr lif.Trace, p neuron.Params) (Chart, error) {
	if tr.Len() == 0 {
		return nil, fmt.Errorf("trace chart: %w", ErrNoData)
	}

	pl := plot.New()
	pl.Title.Text = "Membrane Potential"
	pl.X.Label.Text = "Time (ms)"
	pl.Y.Label.Text = "Membrane Potential (mV)"
	pl.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys(tr.Time, tr.Voltage))
	if err != nil {
		return nil, fmt.Errorf("trace chart: %w", err)
	}
	line.Color = voltageColor
	pl.Add(line)

	refs := []struct {
		name  string
		value float64
	}{
		{"V_thresh", p.VThresh},
		{"V_reset", p.VReset},
		{"V_rest", p.VRest},
		{"V_spike", p.VSpike},
	}
	for _, ref := range refs {
		fn := hline(ref.value, refColors[ref.name])
		pl.Add(fn)
		pl.Legend.Add(ref.name, fn)
	}
	pl.Legend.Top = true

	pl.X.Min = 0
	pl.X.Max = tr.Time[len(tr.Time)-1]
	pl.Y.Min = p.VReset - 5
	pl.Y.Max = p.VSpike + 5

	return &plotChart{name: "trace", p: pl}, nil
}

// RateChart plots firing rate against input current.
func RateChart(res lif.SweepResult) (Chart, error) {
	if res.Len() == 0 {
		return nil, fmt.Errorf("rate chart: %w", ErrNoData)
	}

	pl := plot.New()
	pl.Title.Text = "F-I Curve"
	pl.X.Label.Text = "Input Current"
	pl.Y.Label.Text = "Firing Rate (Hz)"
	pl.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys(res.Condition, res.Rate))
	if err != nil {
		return nil, fmt.Errorf("rate chart: %w", err)
	}
	line.Color = rateColor
	pl.Add(line)
	pl.Y.Min = 0

	return &plotChart{name: "rate", p: pl}, nil
}

// ISIHistogram plots the inter-spike interval distribution of one noise
// condition. An empty interval set returns ErrNoData so callers can skip it.
func ISIHistogram(isi []float64, sigma, cv float64, bins int) (Chart, error) {
	if len(isi) == 0 {
		return nil, fmt.Errorf("isi histogram σ=%g: %w", sigma, ErrNoData)
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("ISI Histogram, σ=%g, CV=%.2f", sigma, cv)
	pl.X.Label.Text = "ISI (ms)"
	pl.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(isi), bins)
	if err != nil {
		return nil, fmt.Errorf("isi histogram σ=%g: %w", sigma, err)
	}
	h.FillColor = histColor
	pl.Add(h)

	return &plotChart{name: fmt.Sprintf("isi-sigma-%g", sigma), p: pl}, nil
}

// MembraneChart plots the first limit samples of a noisy trace.
func MembraneChart(tr lif.Trace, sigma float64, limit int) (Chart, error) {
	head := tr.Head(limit)
	if head.Len() == 0 {
		return nil, fmt.Errorf("membrane chart σ=%g: %w", sigma, ErrNoData)
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Membrane Potential, σ=%g", sigma)
	pl.X.Label.Text = "Time (ms)"
	pl.Y.Label.Text = "Membrane Potential (mV)"

	line, err := plotter.NewLine(xys(head.Time, head.Voltage))
	if err != nil {
		return nil, fmt.Errorf("membrane chart σ=%g: %w", sigma, err)
	}
	line.Color = voltageColor
	pl.Add(line)

	return &plotChart{name: fmt.Sprintf("membrane-sigma-%g", sigma), p: pl}, nil
}

func hline(y float64, c color.Color) *plotter.Function {
	fn := plotter.NewFunction(func(float64) float64 { return y })
	fn.Color = c
	fn.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return fn
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
