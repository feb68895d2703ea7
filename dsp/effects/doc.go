// Package effects provides the tone and output-stage processors of the
// mastering rack.
//
// Subpackages:
//   - github.com/cwbudde/algo-master/dsp/effects/dynamics
//   - github.com/cwbudde/algo-master/dsp/effects/modulation
//   - github.com/cwbudde/algo-master/dsp/effects/spatial
//
// Effects in this package:
//   - ParametricEQ: low shelf, peaking mid and high shelf.
//   - Saturation: analog-flavoured drive (tape, tube, fuzz).
//   - Distortion: 2x oversampled waveshaper (tanh, atan, cubic).
//   - BitCrusher: amplitude quantisation with sample-and-hold decimation.
//   - Dither: TPDF dither with optional noise shaping.
//   - CabSim: partitioned-convolution cabinet simulation.
//
// Every effect processes frames (one sample per channel) in place with
// per-channel state allocated at construction.
package effects
