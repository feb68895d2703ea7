// Package crossover provides the 4th-order Linkwitz-Riley band splitters used
// by the multiband compressor, the de-esser and the stereo imager.
//
// Each branch of a [Crossover] is two cascaded Butterworth biquads, so both
// outputs sit at -6.02 dB at the split frequency and low+high sums to an
// all-pass response with flat magnitude. [ThreeBand] chains two crossovers
// and phase-aligns the low band so all three bands sum to the same all-pass.
//
// Example:
//
//	xo, _ := crossover.New(1000, 48000)
//	lo, hi := xo.ProcessSample(inputSample)
//	sum := lo + hi // all-pass filtered input
package crossover
