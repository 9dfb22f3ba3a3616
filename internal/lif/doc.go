// Package lif integrates a leaky integrate-and-fire neuron with the forward
// Euler method.
//
// Two spike models live side by side and are deliberately not merged:
//
//   - The artifact model ([RunTrace], [RunRate]) draws a stylized spike on
//     the trace. A threshold crossing is followed by a peak at VSpike and a
//     forced repolarization to VReset, driven by [SpikeState].
//   - The true-spike model ([RunNoisy], [SweepNoise]) records a timestamp
//     and resets to VReset on the step the threshold is reached. Its input
//     current is redrawn from N(I, sigma) every step.
//
// Usage:
//
//	p := neuron.Default().WithRunTime(200)
//	tr, err := lif.RunTrace(p.VRest, 2.5, p)
//
//	cfg := lif.DefaultNoiseConfig()
//	sigmas, err := lif.Arange(0, 100, 0.5)
//	res, err := lif.SweepNoise(ctx, sigmas, cfg, lif.SweepOptions{})
package lif
