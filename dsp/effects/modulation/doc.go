// Package modulation provides the time-varying effects of the mastering
// rack.
//
// Included processors:
//   - Chorus: modulated delay with feedback.
//   - Phaser: swept first-order all-pass cascade.
//   - Tremolo: LFO amplitude modulation with stereo spread.
//   - AutoWah: envelope-driven band-pass sweep.
//   - FeedbackDelay: echo with feedback.
//
// Every processor works on frames (one sample per channel) in place and
// keeps its own per-channel state, allocated at construction.
package modulation
