package effects

import "github.com/cwbudde/algo-master/dsp/filter/biquad"

const (
	defaultEQLowFreq  = 100.0
	defaultEQMidFreq  = 1000.0
	defaultEQMidQ     = 0.707
	defaultEQHighFreq = 5000.0

	shelfQ = 0.707
)

type eqChannel struct {
	low, mid, high biquad.Filter
}

// ParametricEQ is a three-band equaliser: a low shelf, a peaking mid band and
// a high shelf, in series.
type ParametricEQ struct {
	sampleRate float64
	channels   []eqChannel
}

// NewParametricEQ returns a flat equaliser with shelves at 100 Hz and 5 kHz
// and the mid band at 1 kHz, Q 0.707.
func NewParametricEQ(sampleRate float64, channels int) (*ParametricEQ, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}
	e := &ParametricEQ{sampleRate: sampleRate, channels: make([]eqChannel, channels)}
	for i := range e.channels {
		c := &e.channels[i]
		c.low.SetParams(defaultEQLowFreq, 0, shelfQ, sampleRate, biquad.LowShelf)
		c.mid.SetParams(defaultEQMidFreq, 0, defaultEQMidQ, sampleRate, biquad.Peaking)
		c.high.SetParams(defaultEQHighFreq, 0, shelfQ, sampleRate, biquad.HighShelf)
	}
	return e, nil
}

// SetLow sets the low shelf corner (Hz) and gain (dB).
func (e *ParametricEQ) SetLow(freq, gainDB float64) {
	for i := range e.channels {
		e.update(&e.channels[i].low, freq, gainDB, shelfQ)
	}
}

// SetMid sets the peaking band centre (Hz), gain (dB) and Q.
func (e *ParametricEQ) SetMid(freq, gainDB, q float64) {
	for i := range e.channels {
		e.update(&e.channels[i].mid, freq, gainDB, q)
	}
}

// SetHigh sets the high shelf corner (Hz) and gain (dB).
func (e *ParametricEQ) SetHigh(freq, gainDB float64) {
	for i := range e.channels {
		e.update(&e.channels[i].high, freq, gainDB, shelfQ)
	}
}

// update redesigns f only when something changed; a pure gain change takes
// the cheaper path.
func (e *ParametricEQ) update(f *biquad.Filter, freq, gainDB, q float64) {
	switch {
	case freq == f.Freq() && q == f.Q() && gainDB == f.Gain():
	case freq == f.Freq() && q == f.Q():
		f.SetGain(gainDB)
	default:
		f.SetParams(freq, gainDB, q, e.sampleRate, f.Type())
	}
}

// Low returns the low shelf corner and gain.
func (e *ParametricEQ) Low() (freq, gainDB float64) {
	return e.channels[0].low.Freq(), e.channels[0].low.Gain()
}

// Mid returns the mid band centre, gain and Q.
func (e *ParametricEQ) Mid() (freq, gainDB, q float64) {
	m := &e.channels[0].mid
	return m.Freq(), m.Gain(), m.Q()
}

// High returns the high shelf corner and gain.
func (e *ParametricEQ) High() (freq, gainDB float64) {
	return e.channels[0].high.Freq(), e.channels[0].high.Gain()
}

// MagnitudeDB returns the combined response of the three bands at freq.
func (e *ParametricEQ) MagnitudeDB(freq float64) float64 {
	c := &e.channels[0]
	return c.low.MagnitudeDB(freq) + c.mid.MagnitudeDB(freq) + c.high.MagnitudeDB(freq)
}

// ProcessFrame equalises one frame in place.
func (e *ParametricEQ) ProcessFrame(frame []float64) {
	n := frameWidth(frame, len(e.channels))
	for ch := range n {
		c := &e.channels[ch]
		frame[ch] = c.high.ProcessSample(c.mid.ProcessSample(c.low.ProcessSample(frame[ch])))
	}
}

// Reset clears filter state.
func (e *ParametricEQ) Reset() {
	for i := range e.channels {
		e.channels[i].low.Reset()
		e.channels[i].mid.Reset()
		e.channels[i].high.Reset()
	}
}
