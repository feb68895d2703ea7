package effects

import (
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
)

const (
	defaultBitCrusherBits = 8.0
	minBitCrusherBits     = 1.0
	maxBitCrusherBits     = 16.0
	minBitCrusherNormFreq = 0.01
)

// BitCrusher reduces amplitude resolution and effective sample rate.
//
//   - Quantisation snaps each held sample to a grid of step 2^-bits.
//     Fractional bit depths are allowed so the control sweeps smoothly.
//   - Decimation accumulates normFreq per sample and takes a new sample
//     whenever the accumulator wraps, holding it in between. normFreq 1
//     samples every input.
type BitCrusher struct {
	bits     float64
	step     float64
	normFreq float64
	mix      float64

	phase float64
	held  []float64
}

// NewBitCrusher returns an 8-bit crusher without decimation, fully wet.
func NewBitCrusher(sampleRate float64, channels int) (*BitCrusher, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}
	bc := &BitCrusher{normFreq: 1, mix: 1, held: make([]float64, channels)}
	bc.SetBits(defaultBitCrusherBits)
	return bc, nil
}

// SetBits sets the bit depth in [1, 16].
func (bc *BitCrusher) SetBits(bits float64) {
	bc.bits = bounded(bits, minBitCrusherBits, maxBitCrusherBits, defaultBitCrusherBits)
	bc.step = math.Pow(0.5, bc.bits)
}

// SetNormFreq sets the sample-and-hold rate as a fraction of the sample
// rate, in [0.01, 1].
func (bc *BitCrusher) SetNormFreq(f float64) { bc.normFreq = bounded(f, minBitCrusherNormFreq, 1, 1) }

// SetMix sets the dry/wet ratio in [0, 1].
func (bc *BitCrusher) SetMix(mix float64) { bc.mix = bounded(mix, 0, 1, 1) }

// Bits returns the bit depth.
func (bc *BitCrusher) Bits() float64 { return bc.bits }

// NormFreq returns the normalised hold rate.
func (bc *BitCrusher) NormFreq() float64 { return bc.normFreq }

// Mix returns the dry/wet ratio.
func (bc *BitCrusher) Mix() float64 { return bc.mix }

// ProcessFrame crushes one frame in place.
func (bc *BitCrusher) ProcessFrame(frame []float64) {
	n := frameWidth(frame, len(bc.held))

	bc.phase += bc.normFreq
	sample := bc.phase >= 1
	if sample {
		bc.phase -= 1
	}

	for ch := range n {
		x := frame[ch]
		if sample {
			bc.held[ch] = bc.step * math.Floor(x/bc.step+0.5)
		}
		frame[ch] = x*(1-bc.mix) + bc.held[ch]*bc.mix
	}
}

// Reset clears the hold state.
func (bc *BitCrusher) Reset() {
	bc.phase = 0
	core.Zero(bc.held)
}
