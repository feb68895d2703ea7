// Package biquad provides the second-order IIR filter primitive used by every
// equaliser, crossover and weighting stage in the engine.
//
// A [Section] runs Direct Form II Transposed processing for one set of
// [Coefficients] and recovers from numeric blow-ups by clearing its state.
// A [Filter] wraps a Section with the Audio EQ Cookbook designs selected by
// [Type] and can retune its gain alone via [Filter.SetGain], which dynamic
// EQ calls once per sample.
package biquad
