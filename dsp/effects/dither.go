package effects

import "github.com/cwbudde/algo-master/dsp/dither"

// Dither is the multi-channel output quantiser: one [dither.Quantizer] per
// channel, each with its own deterministic noise sequence.
type Dither struct {
	quantizers []*dither.Quantizer
}

// NewDither returns a 24-bit TPDF ditherer without noise shaping.
func NewDither(sampleRate float64, channels int) (*Dither, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}
	d := &Dither{quantizers: make([]*dither.Quantizer, channels)}
	for ch := range d.quantizers {
		q, err := dither.NewQuantizer(dither.WithSeed(dither.DefaultSeed + uint64(ch)))
		if err != nil {
			return nil, err
		}
		d.quantizers[ch] = q
	}
	return d, nil
}

// SetBitDepth sets the target bit depth, clamped to [8, 32].
func (d *Dither) SetBitDepth(bits int) {
	bits = max(dither.MinBitDepth, min(dither.MaxBitDepth, bits))
	for _, q := range d.quantizers {
		// The range is checked above.
		_ = q.SetBitDepth(bits)
	}
}

// SetShaping enables or disables first-order noise shaping.
func (d *Dither) SetShaping(on bool) {
	for _, q := range d.quantizers {
		q.SetShaping(on)
	}
}

// BitDepth returns the target bit depth.
func (d *Dither) BitDepth() int { return d.quantizers[0].BitDepth() }

// Shaping reports whether noise shaping is enabled.
func (d *Dither) Shaping() bool { return d.quantizers[0].Shaping() }

// ProcessFrame quantises one frame in place.
func (d *Dither) ProcessFrame(frame []float64) {
	n := frameWidth(frame, len(d.quantizers))
	for ch := range n {
		frame[ch] = d.quantizers[ch].ProcessSample(frame[ch])
	}
}

// Reset clears shaping memory and restarts every noise sequence.
func (d *Dither) Reset() {
	for _, q := range d.quantizers {
		q.Reset()
	}
}
