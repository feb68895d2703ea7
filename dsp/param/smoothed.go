package param

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-master/dsp/core"
)

// DefaultSmoothingTime is the time constant, in seconds, of parameter
// smoothing.
const DefaultSmoothingTime = 0.01

// Smoothed is a single-writer/single-reader parameter cell.
type Smoothed struct {
	desc   Descriptor
	target atomic.Uint64

	current float64
	coeff   float64
}

// Init prepares the cell for desc, starting settled at the default value.
// It must not race with Set or Next.
func (s *Smoothed) Init(desc Descriptor, smoothingTime, sampleRate float64) {
	s.desc = desc
	s.coeff = 0
	if smoothingTime > 0 && sampleRate > 0 {
		s.coeff = core.TimeCoeff(smoothingTime, sampleRate)
	}

	v := desc.Clamp(desc.Default)
	s.target.Store(math.Float64bits(v))
	s.current = v
}

// Descriptor returns the cell's descriptor.
func (s *Smoothed) Descriptor() Descriptor { return s.desc }

// Set clamps v and publishes it as the new target. Safe to call from any
// single control goroutine while the audio thread calls Next.
func (s *Smoothed) Set(v float64) float64 {
	v = s.desc.Clamp(v)
	s.target.Store(math.Float64bits(v))
	return v
}

// Target returns the most recently published target.
func (s *Smoothed) Target() float64 {
	return math.Float64frombits(s.target.Load())
}

// Next advances the smoother by one sample and returns the current value.
// Stepped parameters jump straight to their target.
func (s *Smoothed) Next() float64 {
	target := s.Target()
	if s.current == target {
		return target
	}

	if s.desc.Stepped || s.coeff == 0 {
		s.current = target
		return target
	}

	s.current = target + s.coeff*(s.current-target)
	if math.Abs(s.current-target) <= 1e-9*math.Max(1, math.Abs(target)) {
		s.current = target
	}

	return s.current
}

// Current returns the value last produced by Next.
func (s *Smoothed) Current() float64 { return s.current }

// Settled reports whether the current value has reached the target.
func (s *Smoothed) Settled() bool { return s.current == s.Target() }

// Snap jumps the current value to the target. Audio thread only.
func (s *Smoothed) Snap() { s.current = s.Target() }
