package visualization

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/neuron"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func spikingTrace(t *testing.T) (lif.Trace, neuron.Params) {
	t.Helper()
	p := neuron.Default().WithRunTime(50)
	tr, err := lif.RunTrace(p.VRest, 2.5, p)
	if err != nil {
		t.Fatalf("RunTrace: %v", err)
	}
	return tr, p
}

func assertRenders(t *testing.T, c Chart) {
	t.Helper()

	var png bytes.Buffer
	if err := c.Render(&png, FormatPNG); err != nil {
		t.Fatalf("%s: render png: %v", c.Name(), err)
	}
	if !bytes.HasPrefix(png.Bytes(), pngMagic) {
		t.Errorf("%s: png output lacks PNG header", c.Name())
	}

	var svg bytes.Buffer
	if err := c.Render(&svg, FormatSVG); err != nil {
		t.Fatalf("%s: render svg: %v", c.Name(), err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Errorf("%s: svg output lacks <svg element", c.Name())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"SVG", FormatSVG, false},
		{"gif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTraceChart(t *testing.T) {
	tr, p := spikingTrace(t)

	c, err := TraceChart(tr, p)
	if err != nil {
		t.Fatalf("TraceChart: %v", err)
	}
	if c.Name() != "trace" {
		t.Errorf("Name() = %q", c.Name())
	}

	pc := c.(*plotChart)
	if pc.p.Y.Min != p.VReset-5 || pc.p.Y.Max != p.VSpike+5 {
		t.Errorf("y range = [%v, %v], want [%v, %v]", pc.p.Y.Min, pc.p.Y.Max, p.VReset-5, p.VSpike+5)
	}
	if pc.p.X.Min != 0 || pc.p.X.Max != tr.Time[tr.Len()-1] {
		t.Errorf("x range = [%v, %v]", pc.p.X.Min, pc.p.X.Max)
	}
	assertRenders(t, c)
}

func TestRateChart(t *testing.T) {
	p := neuron.Default().WithRunTime(200)
	res, err := lif.RunRate(p.VRest, p, 2.5, 0.25)
	if err != nil {
		t.Fatalf("RunRate: %v", err)
	}

	c, err := RateChart(res)
	if err != nil {
		t.Fatalf("RateChart: %v", err)
	}
	assertRenders(t, c)
}

func TestISIHistogram(t *testing.T) {
	isi := []float64{10.2, 11.5, 9.8, 12.1, 10.9, 10.0}

	c, err := ISIHistogram(isi, 0.5, lif.CV(isi), 20)
	if err != nil {
		t.Fatalf("ISIHistogram: %v", err)
	}
	if c.Name() != "isi-sigma-0.5" {
		t.Errorf("Name() = %q", c.Name())
	}
	if want := "ISI Histogram, σ=0.5, CV="; !strings.HasPrefix(c.Title(), want) {
		t.Errorf("Title() = %q, want prefix %q", c.Title(), want)
	}
	assertRenders(t, c)
}

func TestISIHistogram_TitleFormatsCV(t *testing.T) {
	c, err := ISIHistogram([]float64{1, 2}, 10, 0.123456, 20)
	if err != nil {
		t.Fatalf("ISIHistogram: %v", err)
	}
	if want := "ISI Histogram, σ=10, CV=0.12"; c.Title() != want {
		t.Errorf("Title() = %q, want %q", c.Title(), want)
	}
}

func TestISIHistogram_Empty(t *testing.T) {
	_, err := ISIHistogram(nil, 0.1, 0, 20)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestMembraneChart_Truncates(t *testing.T) {
	tr, _ := spikingTrace(t)

	c, err := MembraneChart(tr, 1, 100)
	if err != nil {
		t.Fatalf("MembraneChart: %v", err)
	}
	if c.Name() != "membrane-sigma-1" {
		t.Errorf("Name() = %q", c.Name())
	}
	assertRenders(t, c)

	if _, err := MembraneChart(lif.Trace{}, 1, 100); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData for empty trace, got %v", err)
	}
}

func TestRateCVChart(t *testing.T) {
	res := lif.SweepResult{
		Condition: []float64{0, 0.5, 1, 1.5},
		Rate:      []float64{0, 4, 9, 15},
		CV:        []float64{0, 0.4, 0.6, 0.7},
	}

	c, err := RateCVChart(res)
	if err != nil {
		t.Fatalf("RateCVChart: %v", err)
	}
	if c.Name() != "rate-cv" {
		t.Errorf("Name() = %q", c.Name())
	}
	assertRenders(t, c)
}

func TestRateCVChart_FlatSeries(t *testing.T) {
	res := lif.SweepResult{
		Condition: []float64{2},
		Rate:      []float64{0},
		CV:        []float64{0},
	}

	c, err := RateCVChart(res)
	if err != nil {
		t.Fatalf("RateCVChart: %v", err)
	}
	assertRenders(t, c)
}

func TestRateCVChart_Errors(t *testing.T) {
	if _, err := RateCVChart(lif.SweepResult{}); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}

	missingCV := lif.SweepResult{Condition: []float64{1}, Rate: []float64{1}}
	if _, err := RateCVChart(missingCV); err == nil {
		t.Error("expected error when CV is missing")
	}
}

func TestAxisRange(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		fromZero bool
		wantMin  float64
		wantMax  float64
	}{
		{"spread", []float64{2, 8, 4}, false, 2, 8},
		{"constant", []float64{3, 3}, false, 3, 4},
		{"from zero", []float64{2, 10}, true, 0, 10.5},
		{"all zero", []float64{0, 0}, true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := axisRange(tt.values, tt.fromZero)
			if math.Abs(r.Min-tt.wantMin) > 1e-9 || math.Abs(r.Max-tt.wantMax) > 1e-9 {
				t.Errorf("axisRange = [%v, %v], want [%v, %v]", r.Min, r.Max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestReport_Write(t *testing.T) {
	tr, p := spikingTrace(t)
	trace, err := TraceChart(tr, p)
	if err != nil {
		t.Fatalf("TraceChart: %v", err)
	}
	hist, err := ISIHistogram([]float64{5, 6, 7}, 1, 0.1, 20)
	if err != nil {
		t.Fatalf("ISIHistogram: %v", err)
	}

	report := NewReport("LIF <run>")
	report.Params = "tau: 20"
	report.Add(trace, nil, hist)

	dir := filepath.Join(t.TempDir(), "report")
	index, err := report.Write(dir, FormatSVG)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if index != filepath.Join(dir, ReportIndex) {
		t.Errorf("index = %q", index)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read report dir: %v", err)
	}
	var written []string
	for _, e := range entries {
		written = append(written, e.Name())
	}
	// The nil chart is skipped: two charts plus the index.
	want := []string{"index.html", "isi-sigma-1.svg", "trace.svg"}
	if !slices.Equal(written, want) {
		t.Errorf("report files = %v, want %v", written, want)
	}

	html, err := os.ReadFile(index)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	page := string(html)
	for _, want := range []string{`src="trace.svg"`, `src="isi-sigma-1.svg"`, "tau: 20", "LIF &lt;run&gt;"} {
		if !strings.Contains(page, want) {
			t.Errorf("index.html missing %q", want)
		}
	}
}
