package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
)

// Compressor is a broadband multi-channel compressor built on a
// [GainComputer].
//
// Channels are compressed independently unless linked, in which case the
// loudest channel drives one shared gain reduction.
type Compressor struct {
	GainComputer

	makeupDB float64
	makeup   float64
	mix      float64
	linked   bool

	reduction []float64
	feedback  []float64
}

// NewCompressor returns a compressor for the given number of channels.
func NewCompressor(sampleRate float64, channels int) (*Compressor, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if channels <= 0 {
		return nil, fmt.Errorf("dynamics: channel count must be positive: %d", channels)
	}

	c := &Compressor{
		makeup:    1,
		mix:       1,
		reduction: make([]float64, channels),
		feedback:  make([]float64, channels),
	}
	c.init(sampleRate)
	return c, nil
}

// SetMakeupGain sets the output makeup gain in dB.
func (c *Compressor) SetMakeupGain(db float64) {
	if !core.IsFinite(db) {
		db = 0
	}
	c.makeupDB = db
	c.makeup = core.DBToLinear(db)
}

// SetMix sets the dry/wet ratio in [0, 1].
func (c *Compressor) SetMix(mix float64) {
	c.mix = core.Clamp(mix, 0, 1)
	if math.IsNaN(mix) {
		c.mix = 1
	}
}

// SetLinked selects linked (shared) or independent channel detection.
func (c *Compressor) SetLinked(linked bool) { c.linked = linked }

// MakeupGain returns the makeup gain in dB.
func (c *Compressor) MakeupGain() float64 { return c.makeupDB }

// Mix returns the dry/wet ratio.
func (c *Compressor) Mix() float64 { return c.mix }

// Linked reports whether channel detection is linked.
func (c *Compressor) Linked() bool { return c.linked }

// Channels returns the channel count.
func (c *Compressor) Channels() int { return len(c.reduction) }

// GainReduction returns the largest current gain reduction in dB.
func (c *Compressor) GainReduction() float64 {
	m := 0.0
	for _, r := range c.reduction {
		if r > m {
			m = r
		}
	}
	return m
}

// ProcessFrame compresses one frame in place. sidechain supplies external
// detector samples per channel; nil or missing channels use the frame.
func (c *Compressor) ProcessFrame(frame, sidechain []float64) {
	n := len(frame)
	if n > len(c.reduction) {
		n = len(c.reduction)
	}

	if c.linked {
		det := 0.0
		for ch := range n {
			if d := math.Abs(c.detector(ch, frame[ch], sidechain)); d > det {
				det = d
			}
		}
		r := c.Next(c.reduction[0], det)
		for ch := range n {
			c.reduction[ch] = r
			frame[ch] = c.apply(ch, frame[ch], r)
		}
		return
	}

	for ch := range n {
		r := c.Next(c.reduction[ch], c.detector(ch, frame[ch], sidechain))
		c.reduction[ch] = r
		frame[ch] = c.apply(ch, frame[ch], r)
	}
}

// ProcessSample compresses one sample of channel ch with an explicit
// detector sample, ignoring linking.
func (c *Compressor) ProcessSample(ch int, x, detector float64) float64 {
	if c.topology == FET {
		detector = c.feedback[ch]
	}
	r := c.Next(c.reduction[ch], detector)
	c.reduction[ch] = r
	return c.apply(ch, x, r)
}

func (c *Compressor) detector(ch int, x float64, sidechain []float64) float64 {
	if c.topology == FET {
		return c.feedback[ch]
	}
	if ch < len(sidechain) {
		return sidechain[ch]
	}
	return x
}

func (c *Compressor) apply(ch int, x, reduction float64) float64 {
	processed := x * ReductionGain(reduction) * c.makeup
	c.feedback[ch] = processed
	return x*(1-c.mix) + processed*c.mix
}

// ResetBallistics clears gain reduction and feedback state.
func (c *Compressor) ResetBallistics() {
	core.Zero(c.reduction)
	core.Zero(c.feedback)
}

// Reset clears all state.
func (c *Compressor) Reset() { c.ResetBallistics() }
