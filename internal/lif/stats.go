package lif

import "gonum.org/v1/gonum/stat"

// SpikeStats summarizes one spike train.
type SpikeStats struct {
	Count int       `json:"count"`
	Rate  float64   `json:"rate"`
	CV    float64   `json:"cv"`
	ISI   []float64 `json:"isi"`
}

// ISI returns the successive differences of spike timestamps. Fewer than
// two spikes give an empty, non-nil slice.
func ISI(spikes []float64) []float64 {
	if len(spikes) < 2 {
		return []float64{}
	}
	isi := make([]float64, len(spikes)-1)
	for i := range isi {
		isi[i] = spikes[i+1] - spikes[i]
	}
	return isi
}

// Rate returns the firing rate in Hz of a spike train over runTime ms.
func Rate(spikes []float64, runTime float64) float64 {
	return firingRate(len(spikes), runTime)
}

// CV returns the coefficient of variation (population std / mean) of a set
// of intervals. It is exactly 0 when fewer than two intervals exist.
func CV(isi []float64) float64 {
	if len(isi) < 2 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(isi, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// Summarize computes the ISI, rate and CV of a spike train.
func Summarize(spikes []float64, runTime float64) SpikeStats {
	isi := ISI(spikes)
	return SpikeStats{
		Count: len(spikes),
		Rate:  Rate(spikes, runTime),
		CV:    CV(isi),
		ISI:   isi,
	}
}
