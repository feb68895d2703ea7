package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

const (
	defaultMidSideFreq = 1000.0

	// MidSideQ is the bandwidth of the mid and side peaking filters.
	MidSideQ = 0.707
)

// MidSideEQ applies one peaking filter to the mid component and another to
// the side component of a stereo pair.
type MidSideEQ struct {
	sampleRate float64
	mid        biquad.Filter
	side       biquad.Filter
}

// NewMidSideEQ returns a flat mid/side EQ with both bands at 1 kHz.
func NewMidSideEQ(sampleRate float64) (*MidSideEQ, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spatial: sample rate must be positive and finite: %v", sampleRate)
	}
	e := &MidSideEQ{sampleRate: sampleRate}
	e.mid.SetParams(defaultMidSideFreq, 0, MidSideQ, sampleRate, biquad.Peaking)
	e.side.SetParams(defaultMidSideFreq, 0, MidSideQ, sampleRate, biquad.Peaking)
	return e, nil
}

// SetMid sets the mid band frequency (Hz) and gain (dB).
func (e *MidSideEQ) SetMid(freq, gainDB float64) { e.set(&e.mid, freq, gainDB) }

// SetSide sets the side band frequency (Hz) and gain (dB).
func (e *MidSideEQ) SetSide(freq, gainDB float64) { e.set(&e.side, freq, gainDB) }

func (e *MidSideEQ) set(f *biquad.Filter, freq, gainDB float64) {
	if freq == f.Freq() && gainDB == f.Gain() {
		return
	}
	if freq == f.Freq() {
		f.SetGain(gainDB)
		return
	}
	f.SetParams(freq, gainDB, MidSideQ, e.sampleRate, biquad.Peaking)
}

// Mid returns the mid band frequency and gain.
func (e *MidSideEQ) Mid() (freq, gainDB float64) { return e.mid.Freq(), e.mid.Gain() }

// Side returns the side band frequency and gain.
func (e *MidSideEQ) Side() (freq, gainDB float64) { return e.side.Freq(), e.side.Gain() }

// ProcessFrame processes one frame in place.
func (e *MidSideEQ) ProcessFrame(frame []float64) {
	if !isStereo(frame) {
		return
	}
	m, s := Encode(frame[0], frame[1])
	frame[0], frame[1] = Decode(e.mid.ProcessSample(m), e.side.ProcessSample(s))
}

// Reset clears filter state.
func (e *MidSideEQ) Reset() {
	e.mid.Reset()
	e.side.Reset()
}
