// Package conv provides the convolution used by the cabinet simulator.
//
// [Partitioned] is a uniformly partitioned overlap-save convolver. The
// impulse response is cut into partitions of P samples whose spectra are
// precomputed; each completed input partition costs one forward and one
// inverse FFT of size 2P plus a spectral multiply-accumulate over the
// frequency-domain delay line. Input is accepted one sample at a time and
// the output is delayed by exactly P samples, independent of how the caller
// blocks its audio.
//
// [Direct] is the time-domain reference used to verify it.
package conv
