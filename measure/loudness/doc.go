// Package loudness implements K-weighted loudness metering after
// ITU-R BS.1770 and EBU R128: momentary, short-term and gated integrated
// loudness in LUFS, plus sample peaks.
//
// The K-weighting front end comes from
// github.com/cwbudde/algo-master/dsp/filter/weighting and approximates the
// reference filters; readings are meant for relative feedback, not
// certified measurement.
package loudness
