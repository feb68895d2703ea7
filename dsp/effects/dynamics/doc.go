// Package dynamics provides the gain-computer based processors of the
// mastering chain.
//
// A single [GainComputer] (static curve plus attack/release ballistics) is
// shared by the broadband [Compressor], each band of [Multiband], the
// frequency-selective [DeEsser] and, without ballistics, the [DynamicEQ].
// Four [Topology] variants change where the detector listens (feed-forward
// or feedback), how release behaves (program dependent) or how the ratio
// behaves (level dependent).
//
// All processors work on frames: one sample per channel, processed in place,
// with an optional sidechain frame of the same width.
package dynamics
