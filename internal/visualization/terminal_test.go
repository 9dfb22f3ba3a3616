package visualization

import (
	"strings"
	"testing"

	"github.com/nvandessel/lifsim/internal/lif"
)

func TestASCIISeries(t *testing.T) {
	out := ASCIISeries([]float64{-65, -60, -55, -50, 40, -70}, "membrane")
	if !strings.Contains(out, "membrane") {
		t.Errorf("expected caption in output:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines < asciiHeight {
		t.Errorf("expected at least %d lines, got %d", asciiHeight, lines)
	}

	if got := ASCIISeries(nil, "empty"); got != "" {
		t.Errorf("empty series should render nothing, got %q", got)
	}
}

func TestASCIITrace(t *testing.T) {
	tr, _ := spikingTrace(t)
	if out := ASCIITrace(tr, "V(t)"); !strings.Contains(out, "V(t)") {
		t.Errorf("expected caption in output:\n%s", out)
	}
}

func TestSummaryTable(t *testing.T) {
	rows := []NoiseRow{
		{Sigma: 0.1, SpikeStats: lif.SpikeStats{Count: 12, Rate: 2.4, CV: 0.05}},
		{Sigma: 10, SpikeStats: lif.SpikeStats{Count: 300, Rate: 60, CV: 0.8}},
	}

	out := SummaryTable(rows)
	for _, want := range []string{"σ", "Spikes", "Rate (Hz)", "CV", "0.1", "12", "2.40", "300", "60.00", "0.800"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestSweepTable(t *testing.T) {
	withCV := lif.SweepResult{
		Condition: []float64{0, 0.5},
		Rate:      []float64{0, 3.2},
		CV:        []float64{0, 0.25},
	}
	out := SweepTable(withCV, "σ")
	for _, want := range []string{"σ", "Rate (Hz)", "CV", "3.20", "0.250"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	noCV := lif.SweepResult{Condition: []float64{1.5}, Rate: []float64{40}}
	out = SweepTable(noCV, "Current")
	if strings.Contains(out, "CV") {
		t.Errorf("CV column shown without CV values:\n%s", out)
	}
	if !strings.Contains(out, "Current") || !strings.Contains(out, "40.00") {
		t.Errorf("unexpected table:\n%s", out)
	}
}
