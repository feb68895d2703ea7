// Package resample converts whole signals between integer sample rates.
//
// A Converter upsamples by L, filters with a Kaiser-windowed sinc and
// decimates by M, evaluated as a polyphase filter so that only the taps
// that meet non-zero input are computed. The filter delay is removed:
// output sample m lines up with input time m·M/L, and a signal of n frames
// converts to round(n·L/M) frames.
//
// Quality modes:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
package resample
