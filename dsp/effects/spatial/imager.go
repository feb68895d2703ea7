package spatial

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/filter/crossover"
)

// Band indexes the three [Imager] bands.
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh

	// NumBands is the number of imager bands.
	NumBands = 3
)

const (
	defaultImagerLowFreq  = 150.0
	defaultImagerHighFreq = 2500.0
)

var defaultImagerWidths = [NumBands]float64{0, 1, 1.2}

// Imager is a three-band stereo width processor.
//
// The side signal s = (l-r)/2 is split into three complementary bands whose
// sum is s itself: the low band is the Linkwitz-Riley low-pass of s, the mid
// band the low-pass of the remainder at the upper split, and the high band
// what is left. Each band's width w_b is applied as a correction on top of
// the untouched input:
//
//	l' = l + Σ (w_b-1)·s_b
//	r' = r - Σ (w_b-1)·s_b
//
// With every width at 1 the output equals the input exactly; with every
// width at 0 it is the mid signal on both sides.
type Imager struct {
	lower  *crossover.Crossover
	upper  *crossover.Crossover
	widths [NumBands]float64
}

// NewImager returns an imager with splits at 150 Hz and 2.5 kHz and widths
// 0 (mono bass), 1 and 1.2.
func NewImager(sampleRate float64) (*Imager, error) {
	lower, err := crossover.New(defaultImagerLowFreq, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("spatial: imager crossover: %w", err)
	}
	upper, err := crossover.New(defaultImagerHighFreq, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("spatial: imager crossover: %w", err)
	}
	return &Imager{lower: lower, upper: upper, widths: defaultImagerWidths}, nil
}

// SetWidth sets the width of band b in [0, MaxWidth].
func (im *Imager) SetWidth(b Band, width float64) {
	im.widths[b] = clampWidth(width, defaultImagerWidths[b])
}

// Width returns the width of band b.
func (im *Imager) Width(b Band) float64 { return im.widths[b] }

// SetCrossovers sets the two split frequencies in Hz. Inverted pairs are
// swapped.
func (im *Imager) SetCrossovers(lowFreq, highFreq float64) {
	if lowFreq > highFreq {
		lowFreq, highFreq = highFreq, lowFreq
	}
	if lowFreq != im.lower.Freq() {
		im.lower.SetCutoff(lowFreq)
	}
	if highFreq != im.upper.Freq() {
		im.upper.SetCutoff(highFreq)
	}
}

// Crossovers returns the split frequencies in Hz.
func (im *Imager) Crossovers() (lowFreq, highFreq float64) {
	return im.lower.Freq(), im.upper.Freq()
}

// ProcessFrame processes one frame in place.
func (im *Imager) ProcessFrame(frame []float64) {
	if !isStereo(frame) {
		return
	}
	l, r := frame[0], frame[1]
	_, side := Encode(l, r)

	var bands [NumBands]float64
	bands[BandLow], _ = im.lower.ProcessSample(side)
	rest := side - bands[BandLow]
	bands[BandMid], _ = im.upper.ProcessSample(rest)
	bands[BandHigh] = rest - bands[BandMid]

	delta := 0.0
	for b, w := range im.widths {
		if w != 1 {
			delta += (w - 1) * bands[b]
		}
	}
	frame[0], frame[1] = l+delta, r-delta
}

// Reset clears crossover state.
func (im *Imager) Reset() {
	im.lower.Reset()
	im.upper.Reset()
}
