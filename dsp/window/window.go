// Package window provides the analysis windows used by the spectrum
// analyser, with helpers to apply them and to compute their gain figures.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
	TypeFlatTop

	typeCount
)

var typeNames = [typeCount]string{
	"rectangular", "hann", "hamming", "blackman", "blackman-harris", "flat-top",
}

// String returns the lower-case window name.
func (t Type) String() string {
	if t >= 0 && t < typeCount {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Valid reports whether t is a known window.
func (t Type) Valid() bool { return t >= 0 && t < typeCount }

// ParseType resolves a window name as returned by [Type.String].
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("window: unknown window %q", name)
}

// cosineTerms returns the generalised cosine-sum coefficients of t:
// w = a0 - a1·cos(x) + a2·cos(2x) - ...
func cosineTerms(t Type) []float64 {
	switch t {
	case TypeHann:
		return []float64{0.5, 0.5}
	case TypeHamming:
		return []float64{0.54, 0.46}
	case TypeBlackman:
		return []float64{0.42, 0.5, 0.08}
	case TypeBlackmanHarris:
		return []float64{0.35875, 0.48829, 0.14128, 0.01168}
	case TypeFlatTop:
		return []float64{0.21557895, 0.41663158, 0.277263158, 0.083578947, 0.006947368}
	default:
		return []float64{1}
	}
}

var errMismatchedLength = errors.New("window: samples and coefficients must have same length")

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form used for FFT framing instead of
// the symmetric form used for filter design.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns size coefficients of window t. Unknown types yield a
// rectangular window.
func Generate(t Type, size int, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window: size must be > 0: %d", size)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	terms := cosineTerms(t)

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}

	denom := float64(size - 1)
	if cfg.periodic {
		denom = float64(size)
	}

	for n := range out {
		x := 2 * math.Pi * float64(n) / denom
		v, sign := 0.0, 1.0
		for k, a := range terms {
			v += sign * a * math.Cos(float64(k)*x)
			sign = -sign
		}
		out[n] = v
	}

	return out, nil
}

// ApplyInPlace multiplies samples by coeffs.
func ApplyInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// Apply writes samples·coeffs to dst.
func Apply(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(samples) {
		return errMismatchedLength
	}

	vecmath.MulBlock(dst, samples, coeffs)

	return nil
}

// CoherentGain returns the mean coefficient, the amplitude gain of the
// window for a bin-centred sinusoid.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}

// EquivalentNoiseBandwidth returns the ENBW in bins.
func EquivalentNoiseBandwidth(coeffs []float64) float64 {
	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum)
}
