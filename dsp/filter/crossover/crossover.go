package crossover

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

// butterworthQ is the Q of a 2nd-order Butterworth section.
const butterworthQ = 1 / math.Sqrt2

// Crossover is a two-way LR4 network that splits an input signal into
// complementary lowpass and highpass outputs.
type Crossover struct {
	lp [2]biquad.Filter
	hp [2]biquad.Filter

	freq float64
	sr   float64
}

// New creates an LR4 crossover at freq Hz.
func New(freq, sampleRate float64) (*Crossover, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("crossover: sample rate must be positive and finite, got %v", sampleRate)
	}
	if !(freq > 0) || freq >= sampleRate/2 {
		return nil, fmt.Errorf("crossover: frequency must be in (0, %v), got %v", sampleRate/2, freq)
	}

	c := &Crossover{sr: sampleRate}
	c.SetCutoff(freq)
	return c, nil
}

// SetCutoff moves the split frequency. Values outside (0, Nyquist) are
// limited to the nearest usable frequency. Filter state is preserved.
func (c *Crossover) SetCutoff(freq float64) {
	if !(freq > 1) {
		freq = 1
	}
	if limit := 0.49 * c.sr; freq > limit {
		freq = limit
	}
	if freq == c.freq {
		return
	}
	c.freq = freq

	for i := range c.lp {
		c.lp[i].SetParams(freq, 0, butterworthQ, c.sr, biquad.Lowpass)
		c.hp[i].SetParams(freq, 0, butterworthQ, c.sr, biquad.Highpass)
	}
}

// ProcessSample splits x into its low and high bands.
func (c *Crossover) ProcessSample(x float64) (lo, hi float64) {
	lo = c.lp[1].ProcessSample(c.lp[0].ProcessSample(x))
	hi = c.hp[1].ProcessSample(c.hp[0].ProcessSample(x))
	return lo, hi
}

// ProcessBlock splits input into lo and hi. All slices must have equal length.
func (c *Crossover) ProcessBlock(input, lo, hi []float64) {
	for i, x := range input {
		lo[i], hi[i] = c.ProcessSample(x)
	}
}

// Freq returns the split frequency in Hz.
func (c *Crossover) Freq() float64 { return c.freq }

// SampleRate returns the sample rate in Hz.
func (c *Crossover) SampleRate() float64 { return c.sr }

// LowCoefficients returns the two cascaded lowpass sections.
func (c *Crossover) LowCoefficients() [2]biquad.Coefficients {
	return [2]biquad.Coefficients{c.lp[0].Coefficients, c.lp[1].Coefficients}
}

// HighCoefficients returns the two cascaded highpass sections.
func (c *Crossover) HighCoefficients() [2]biquad.Coefficients {
	return [2]biquad.Coefficients{c.hp[0].Coefficients, c.hp[1].Coefficients}
}

// Reset clears all filter state.
func (c *Crossover) Reset() {
	for i := range c.lp {
		c.lp[i].Reset()
		c.hp[i].Reset()
	}
}
