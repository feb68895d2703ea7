// Package param provides parameter descriptors and the lock-free smoothed
// value cells that carry control-thread edits to the audio thread.
//
// A [Smoothed] cell has a single writer (the control thread, via
// [Smoothed.Set]) and a single reader (the audio thread, via
// [Smoothed.Next]). The target is stored atomically; the smoothing state is
// owned by the audio thread. Values are clamped to their [Descriptor] range
// on write, so out-of-range input is never an error.
package param
