// Package allpass provides the first-order all-pass stage that phasers
// cascade to build their moving notches.
package allpass

import "math"

// Stage is a first-order all-pass filter
//
//	y[n] = a*x[n] + x[n-1] - a*y[n-1]
//
// with unity magnitude at all frequencies and -90 degrees of phase at its
// break frequency.
type Stage struct {
	a      float64
	x1, y1 float64
}

// Coefficient returns the all-pass coefficient whose break frequency is
// freqHz at sampleRate. freqHz is limited to (0, 0.49*sampleRate).
func Coefficient(freqHz, sampleRate float64) float64 {
	if !(freqHz > 0) {
		freqHz = 1e-3
	}
	if limit := 0.49 * sampleRate; freqHz > limit {
		freqHz = limit
	}
	t := math.Tan(math.Pi * freqHz / sampleRate)
	return (t - 1) / (t + 1)
}

// SetCoefficient sets the raw coefficient a, expected in (-1, 1).
func (s *Stage) SetCoefficient(a float64) { s.a = a }

// SetFrequency sets the break frequency.
func (s *Stage) SetFrequency(freqHz, sampleRate float64) {
	s.a = Coefficient(freqHz, sampleRate)
}

// Coefficient returns the current coefficient.
func (s *Stage) Coefficient() float64 { return s.a }

// ProcessSample filters one sample. Non-finite results clear the state and
// yield 0.
func (s *Stage) ProcessSample(x float64) float64 {
	y := s.a*x + s.x1 - s.a*s.y1
	if y-y != 0 {
		s.Reset()
		return 0
	}
	s.x1 = x
	s.y1 = y
	return y
}

// Reset clears the filter state.
func (s *Stage) Reset() {
	s.x1 = 0
	s.y1 = 0
}
