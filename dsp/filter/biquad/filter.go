package biquad

import (
	"fmt"
	"math"
)

// Type selects the Audio EQ Cookbook response a [Filter] is designed for.
type Type int

const (
	Lowpass Type = iota
	Highpass
	// Bandpass has a constant 0 dB peak gain at the centre frequency.
	Bandpass
	Peaking
	LowShelf
	HighShelf
	Notch
	Allpass

	typeCount
)

var typeNames = [typeCount]string{
	"lowpass", "highpass", "bandpass", "peaking", "lowshelf", "highshelf", "notch", "allpass",
}

// String returns the lower-case name of the filter type.
func (t Type) String() string {
	if t >= 0 && t < typeCount {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Valid reports whether t is a known filter type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// UsesGain reports whether the design depends on the gain argument.
func (t Type) UsesGain() bool {
	return t == Peaking || t == LowShelf || t == HighShelf
}

const (
	minQ         = 1e-4
	maxFreqRatio = 0.499
)

// Filter is a [Section] designed from musical parameters.
//
// The frequency-dependent terms of the last design are cached so that
// [Filter.SetGain] only redoes the gain-dependent arithmetic.
type Filter struct {
	Section

	typ        Type
	freq       float64
	gainDB     float64
	q          float64
	sampleRate float64

	cosW  float64
	alpha float64
}

// New returns a Filter designed with the given parameters.
func New(typ Type, freq, gainDB, q, sampleRate float64) *Filter {
	f := &Filter{}
	f.SetParams(freq, gainDB, q, sampleRate, typ)
	return f
}

// SetParams redesigns the filter. The filter state is kept so that
// parameter sweeps do not click.
//
// Frequency is limited to (0, 0.499*sampleRate) and Q is floored at a small
// positive value. An invalid type or sample rate leaves the filter as an
// identity section.
func (f *Filter) SetParams(freq, gainDB, q, sampleRate float64, typ Type) {
	f.typ = typ
	f.gainDB = gainDB
	f.sampleRate = sampleRate

	if !typ.Valid() || !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		f.freq, f.q = freq, q
		f.Coefficients = Identity()
		return
	}

	nyq := maxFreqRatio * sampleRate
	if !(freq > 0) {
		freq = 1
	}
	if freq > nyq {
		freq = nyq
	}
	if !(q > minQ) {
		q = minQ
	}
	f.freq, f.q = freq, q

	w0 := 2 * math.Pi * freq / sampleRate
	f.cosW = math.Cos(w0)
	f.alpha = math.Sin(w0) / (2 * q)

	f.design()
}

// SetGain changes only the gain of a peaking or shelving design. It is a
// no-op for other types apart from remembering the value.
func (f *Filter) SetGain(gainDB float64) {
	f.gainDB = gainDB
	if !f.typ.UsesGain() || !(f.sampleRate > 0) {
		return
	}
	f.design()
}

// Type returns the current filter type.
func (f *Filter) Type() Type { return f.typ }

// Freq returns the effective design frequency in Hz.
func (f *Filter) Freq() float64 { return f.freq }

// Gain returns the design gain in dB.
func (f *Filter) Gain() float64 { return f.gainDB }

// Q returns the effective quality factor.
func (f *Filter) Q() float64 { return f.q }

// SampleRate returns the design sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// MagnitudeDB returns the filter's magnitude response in dB at freqHz.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return f.Coefficients.MagnitudeDB(freqHz, f.sampleRate)
}

func (f *Filter) design() {
	cw, alpha := f.cosW, f.alpha

	var b0, b1, b2, a0, a1, a2 float64

	switch f.typ {
	case Lowpass:
		b0 = (1 - cw) / 2
		b1 = 1 - cw
		b2 = b0
		a0, a1, a2 = 1+alpha, -2*cw, 1-alpha
	case Highpass:
		b0 = (1 + cw) / 2
		b1 = -(1 + cw)
		b2 = b0
		a0, a1, a2 = 1+alpha, -2*cw, 1-alpha
	case Bandpass:
		b0, b1, b2 = alpha, 0, -alpha
		a0, a1, a2 = 1+alpha, -2*cw, 1-alpha
	case Notch:
		b0, b1, b2 = 1, -2*cw, 1
		a0, a1, a2 = 1+alpha, -2*cw, 1-alpha
	case Allpass:
		b0, b1, b2 = 1-alpha, -2*cw, 1+alpha
		a0, a1, a2 = 1+alpha, -2*cw, 1-alpha
	case Peaking:
		a := math.Pow(10, f.gainDB/40)
		b0, b1, b2 = 1+alpha*a, -2*cw, 1-alpha*a
		a0, a1, a2 = 1+alpha/a, -2*cw, 1-alpha/a
	case LowShelf:
		a := math.Pow(10, f.gainDB/40)
		k := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) - (a-1)*cw + k)
		b1 = 2 * a * ((a - 1) - (a+1)*cw)
		b2 = a * ((a + 1) - (a-1)*cw - k)
		a0 = (a + 1) + (a-1)*cw + k
		a1 = -2 * ((a - 1) + (a+1)*cw)
		a2 = (a + 1) + (a-1)*cw - k
	case HighShelf:
		a := math.Pow(10, f.gainDB/40)
		k := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) + (a-1)*cw + k)
		b1 = -2 * a * ((a - 1) + (a+1)*cw)
		b2 = a * ((a + 1) + (a-1)*cw - k)
		a0 = (a + 1) - (a-1)*cw + k
		a1 = 2 * ((a - 1) - (a+1)*cw)
		a2 = (a + 1) - (a-1)*cw - k
	default:
		f.Coefficients = Identity()
		return
	}

	f.Coefficients = Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
