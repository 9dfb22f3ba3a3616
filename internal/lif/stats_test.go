package lif

import (
	"math"
	"testing"
)

func TestISI(t *testing.T) {
	tests := []struct {
		name   string
		spikes []float64
		want   []float64
	}{
		{"none", nil, []float64{}},
		{"single", []float64{5}, []float64{}},
		{"pair", []float64{5, 12}, []float64{7}},
		{"several", []float64{1, 3, 6, 10}, []float64{2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ISI(tt.spikes)
			if got == nil {
				t.Fatal("ISI returned nil, want non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ISI(%v) = %v, want %v", tt.spikes, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ISI[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name    string
		spikes  []float64
		runTime float64
		want    float64
	}{
		{"no spikes", nil, 1000, 0},
		{"five per second", []float64{1, 2, 3, 4, 5}, 1000, 5},
		{"short window", []float64{10, 20}, 100, 20},
		{"zero window", []float64{1}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.spikes, tt.runTime); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Rate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCV(t *testing.T) {
	tests := []struct {
		name string
		isi  []float64
		want float64
	}{
		{"no intervals", []float64{}, 0},
		{"one interval", []float64{7}, 0},
		{"regular", []float64{5, 5, 5, 5}, 0},
		{"two values", []float64{2, 3}, 0.2},
		{"spread", []float64{1, 2, 3, 4}, math.Sqrt(1.25) / 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CV(tt.isi)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CV(%v) = %v, want %v", tt.isi, got, tt.want)
			}
		})
	}
}

func TestSummarize_DegenerateTrainsHaveZeroCV(t *testing.T) {
	for _, spikes := range [][]float64{nil, {3}, {3, 9}} {
		st := Summarize(spikes, 1000)
		if st.CV != 0 {
			t.Errorf("%d spikes: CV = %v, want exactly 0", len(spikes), st.CV)
		}
		if st.Count != len(spikes) {
			t.Errorf("Count = %d, want %d", st.Count, len(spikes))
		}
	}
}

func TestSummarize(t *testing.T) {
	st := Summarize([]float64{10, 20, 40, 50}, 100)

	if st.Count != 4 {
		t.Errorf("Count = %d, want 4", st.Count)
	}
	if math.Abs(st.Rate-40) > 1e-9 {
		t.Errorf("Rate = %v, want 40", st.Rate)
	}
	if len(st.ISI) != 3 {
		t.Fatalf("ISI = %v, want 3 intervals", st.ISI)
	}
	if st.CV <= 0 || math.IsNaN(st.CV) || math.IsInf(st.CV, 0) {
		t.Errorf("CV = %v, want positive finite", st.CV)
	}
}
