package resample

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRate is returned for a non-positive sample rate.
var ErrInvalidRate = errors.New("resample: invalid sample rate")

// Quality selects the anti-aliasing filter.
type Quality int

const (
	// QualityFast uses short filters.
	QualityFast Quality = iota
	// QualityBalanced is the default.
	QualityBalanced
	// QualityBest maximises stopband attenuation.
	QualityBest
)

type profile struct {
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

func (q Quality) profile() profile {
	switch q {
	case QualityFast:
		return profile{tapsPerPhase: 16, cutoffScale: 0.88, kaiserBeta: 5}
	case QualityBest:
		return profile{tapsPerPhase: 64, cutoffScale: 0.96, kaiserBeta: 9}
	default:
		return profile{tapsPerPhase: 32, cutoffScale: 0.92, kaiserBeta: 7.5}
	}
}

// Option configures a Converter.
type Option func(*profile)

// WithQuality selects a filter profile. Options given after it refine the
// profile.
func WithQuality(q Quality) Option {
	return func(p *profile) { *p = q.profile() }
}

// WithTapsPerPhase overrides the filter length per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(p *profile) {
		if n > 0 {
			p.tapsPerPhase = n
		}
	}
}

// Converter resamples by the rational factor up/down.
type Converter struct {
	up     int
	down   int
	phases [][]float64
	delay  int
}

// New returns a converter from inRate to outRate.
func New(inRate, outRate int, opts ...Option) (*Converter, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, inRate, outRate)
	}

	p := QualityBalanced.profile()
	for _, opt := range opts {
		opt(&p)
	}

	g := gcd(inRate, outRate)
	c := &Converter{up: outRate / g, down: inRate / g}
	if c.up == 1 && c.down == 1 {
		return c, nil
	}

	taps := design(c.up, c.down, p)
	c.delay = (len(taps) - 1) / 2
	c.phases = make([][]float64, c.up)
	for i, h := range taps {
		c.phases[i%c.up] = append(c.phases[i%c.up], h)
	}

	return c, nil
}

// Ratio returns the reduced conversion factors.
func (c *Converter) Ratio() (up, down int) { return c.up, c.down }

// OutputLen returns the number of frames Convert produces for n input
// frames.
func (c *Converter) OutputLen(n int) int {
	return int(math.Round(float64(n) * float64(c.up) / float64(c.down)))
}

// Convert resamples x. Samples beyond either end of x read as zero.
func (c *Converter) Convert(x []float64) []float64 {
	out := make([]float64, c.OutputLen(len(x)))
	if c.phases == nil {
		copy(out, x)
		return out
	}

	for m := range out {
		t := m*c.down + c.delay
		base := t / c.up

		var y float64
		for k, h := range c.phases[t%c.up] {
			i := base - k
			if i < 0 {
				break
			}
			if i < len(x) {
				y += h * x[i]
			}
		}
		out[m] = y
	}

	return out
}

// Planar converts every channel of a planar signal.
func Planar(channels [][]float64, inRate, outRate int, opts ...Option) ([][]float64, error) {
	c, err := New(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(channels))
	for ch, x := range channels {
		out[ch] = c.Convert(x)
	}

	return out, nil
}
