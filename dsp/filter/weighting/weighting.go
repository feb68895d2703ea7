package weighting

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

// K-weighting stage parameters.
const (
	ShelfFreq = 1681.974450955533
	ShelfGain = 3.999843853973347
	ShelfQ    = 0.7071752369554196

	HighpassFreq = 38.13547087602444
	HighpassQ    = 0.5003270373238773
)

// K is a single-channel K-weighting filter.
type K struct {
	shelf biquad.Filter
	rlb   biquad.Filter
}

// NewK returns a K-weighting filter for sampleRate.
func NewK(sampleRate float64) (*K, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("weighting: sample rate must be positive and finite, got %v", sampleRate)
	}

	k := &K{}
	k.shelf.SetParams(ShelfFreq, ShelfGain, ShelfQ, sampleRate, biquad.HighShelf)
	k.rlb.SetParams(HighpassFreq, 0, HighpassQ, sampleRate, biquad.Highpass)
	return k, nil
}

// ProcessSample filters one sample.
func (k *K) ProcessSample(x float64) float64 {
	return k.rlb.ProcessSample(k.shelf.ProcessSample(x))
}

// ProcessBlock filters buf in place.
func (k *K) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = k.ProcessSample(x)
	}
}

// MagnitudeDB returns the combined response in dB at freqHz.
func (k *K) MagnitudeDB(freqHz float64) float64 {
	return k.shelf.MagnitudeDB(freqHz) + k.rlb.MagnitudeDB(freqHz)
}

// Reset clears both filter stages.
func (k *K) Reset() {
	k.shelf.Reset()
	k.rlb.Reset()
}
