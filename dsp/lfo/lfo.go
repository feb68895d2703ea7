// Package lfo provides the low-frequency oscillator that drives chorus,
// phaser and tremolo modulation.
package lfo

import (
	"fmt"
	"math"
)

// Waveform selects the LFO shape.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Square
	Saw

	waveformCount
)

var waveformNames = [waveformCount]string{"sine", "triangle", "square", "saw"}

// String returns the lower-case waveform name.
func (w Waveform) String() string {
	if w >= 0 && w < waveformCount {
		return waveformNames[w]
	}
	return fmt.Sprintf("Waveform(%d)", w)
}

// Valid reports whether w is a known waveform.
func (w Waveform) Valid() bool {
	return w >= 0 && w < waveformCount
}

// LFO is a phase-accumulating oscillator. Phase is measured in cycles,
// in [0, 1).
type LFO struct {
	sampleRate float64
	rate       float64
	inc        float64
	phase      float64
	wave       Waveform
}

// New returns a sine LFO running at rateHz.
func New(rateHz, sampleRate float64) (*LFO, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lfo: sample rate must be positive and finite, got %v", sampleRate)
	}

	l := &LFO{sampleRate: sampleRate}
	l.SetRate(rateHz)
	return l, nil
}

// SetRate sets the frequency in Hz. Negative or non-finite rates stop the
// oscillator.
func (l *LFO) SetRate(rateHz float64) {
	if !(rateHz >= 0) || math.IsInf(rateHz, 0) {
		rateHz = 0
	}
	l.rate = rateHz
	l.inc = rateHz / l.sampleRate
}

// SetWaveform selects the shape. Unknown values fall back to [Sine].
func (l *LFO) SetWaveform(w Waveform) {
	if !w.Valid() {
		w = Sine
	}
	l.wave = w
}

// Rate returns the frequency in Hz.
func (l *LFO) Rate() float64 { return l.rate }

// Waveform returns the current shape.
func (l *LFO) Waveform() Waveform { return l.wave }

// Phase returns the current phase in cycles.
func (l *LFO) Phase() float64 { return l.phase }

// SetPhase sets the phase in cycles; the value is wrapped into [0, 1).
func (l *LFO) SetPhase(phase float64) {
	l.phase = wrap(phase)
}

// ValueAt returns the bipolar output at the current phase plus offset
// cycles without advancing.
func (l *LFO) ValueAt(offset float64) float64 {
	return Shape(l.wave, wrap(l.phase+offset))
}

// Advance moves the phase forward by one sample.
func (l *LFO) Advance() {
	l.phase += l.inc
	if l.phase >= 1 {
		l.phase -= math.Floor(l.phase)
	}
}

// Next returns the bipolar output at the current phase and advances.
func (l *LFO) Next() float64 {
	v := Shape(l.wave, l.phase)
	l.Advance()
	return v
}

// Reset returns the phase to zero.
func (l *LFO) Reset() { l.phase = 0 }

// Shape evaluates waveform w at phase (cycles, [0, 1)) in the range [-1, 1].
// Every shape starts at its zero crossing, rising, except [Square], which
// starts high.
func Shape(w Waveform, phase float64) float64 {
	switch w {
	case Triangle:
		switch {
		case phase < 0.25:
			return 4 * phase
		case phase < 0.75:
			return 2 - 4*phase
		default:
			return 4*phase - 4
		}
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Saw:
		if phase < 0.5 {
			return 2 * phase
		}
		return 2*phase - 2
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Unipolar maps a bipolar value in [-1, 1] to [0, 1].
func Unipolar(v float64) float64 {
	return 0.5 * (1 + v)
}

func wrap(phase float64) float64 {
	phase -= math.Floor(phase)
	if phase >= 1 {
		phase = 0
	}
	return phase
}
