package crossover

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

// ThreeBand splits a signal into low, mid and high bands with two LR4
// crossovers. The low band runs through the all-pass of the upper split so
// that low+mid+high equals the all-pass response of both crossovers.
type ThreeBand struct {
	lower *Crossover
	upper *Crossover
	align biquad.Filter
}

// NewThreeBand returns a splitter with split points lowFreq < highFreq.
func NewThreeBand(lowFreq, highFreq, sampleRate float64) (*ThreeBand, error) {
	if lowFreq >= highFreq {
		return nil, fmt.Errorf("crossover: low split %v must be below high split %v", lowFreq, highFreq)
	}

	lower, err := New(lowFreq, sampleRate)
	if err != nil {
		return nil, err
	}

	upper, err := New(highFreq, sampleRate)
	if err != nil {
		return nil, err
	}

	tb := &ThreeBand{lower: lower, upper: upper}
	tb.align.SetParams(upper.Freq(), 0, butterworthQ, sampleRate, biquad.Allpass)
	return tb, nil
}

// SetCutoffs moves both split points. If lowFreq is not below highFreq the
// two are swapped.
func (t *ThreeBand) SetCutoffs(lowFreq, highFreq float64) {
	if lowFreq > highFreq {
		lowFreq, highFreq = highFreq, lowFreq
	}
	t.lower.SetCutoff(lowFreq)

	prev := t.upper.Freq()
	t.upper.SetCutoff(highFreq)
	if t.upper.Freq() != prev {
		t.align.SetParams(t.upper.Freq(), 0, butterworthQ, t.upper.SampleRate(), biquad.Allpass)
	}
}

// ProcessSample splits x into three bands.
func (t *ThreeBand) ProcessSample(x float64) (lo, mid, hi float64) {
	lo, rest := t.lower.ProcessSample(x)
	mid, hi = t.upper.ProcessSample(rest)
	lo = t.align.ProcessSample(lo)
	return lo, mid, hi
}

// Cutoffs returns the current split frequencies.
func (t *ThreeBand) Cutoffs() (lowFreq, highFreq float64) {
	return t.lower.Freq(), t.upper.Freq()
}

// Reset clears all filter state.
func (t *ThreeBand) Reset() {
	t.lower.Reset()
	t.upper.Reset()
	t.align.Reset()
}
