package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(z) on the unit circle at freqHz.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}

// MagnitudeDB returns 20·log10|H| at freqHz.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// CascadeResponse multiplies the responses of several sections.
func CascadeResponse(freqHz, sampleRate float64, sections ...Coefficients) complex128 {
	h := complex(1, 0)
	for i := range sections {
		h *= sections[i].Response(freqHz, sampleRate)
	}
	return h
}

// ImpulseResponse runs n samples of a unit impulse through the section.
// The section's state is left as it was.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := s.State()
	defer s.SetState(saved)

	s.Reset()
	ir := make([]float64, n)
	for i := range ir {
		x := 0.0
		if i == 0 {
			x = 1
		}
		ir[i] = s.ProcessSample(x)
	}
	return ir
}
