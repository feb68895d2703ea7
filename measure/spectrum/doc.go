// Package spectrum provides a streaming FFT spectrum analyser for metering
// displays: the most recent frames are windowed and transformed on demand,
// and the bin powers are aggregated into log-spaced bands.
package spectrum
