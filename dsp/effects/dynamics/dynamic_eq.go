package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/envelope"
	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

const (
	defaultDynEQFreq      = 1000.0
	defaultDynEQQ         = 1.0
	defaultDynEQThreshold = -20.0
	defaultDynEQRatio     = 2.0
)

type dynEQChannel struct {
	main     biquad.Filter
	detector biquad.Filter
	env      *envelope.Follower
}

// DynamicEQ is a peaking equaliser whose gain is pulled back by a
// band-limited detector. The detector is a band-pass copy of the sidechain
// at the same frequency and Q, smoothed by an envelope follower; the static
// curve of a [GainComputer] turns its level into a reduction that is
// subtracted from the band gain every sample.
type DynamicEQ struct {
	curve GainComputer

	sampleRate float64
	freq       float64
	q          float64
	gainDB     float64

	channels  []dynEQChannel
	reduction []float64
}

// NewDynamicEQ returns a dynamic EQ at 1 kHz, Q 1, 0 dB, threshold -20 dB,
// ratio 2:1.
func NewDynamicEQ(sampleRate float64, channels int) (*DynamicEQ, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if channels <= 0 {
		return nil, fmt.Errorf("dynamics: channel count must be positive: %d", channels)
	}

	d := &DynamicEQ{
		sampleRate: sampleRate,
		freq:       defaultDynEQFreq,
		q:          defaultDynEQQ,
		channels:   make([]dynEQChannel, channels),
		reduction:  make([]float64, channels),
	}
	d.curve.init(sampleRate)
	d.curve.SetThreshold(defaultDynEQThreshold)
	d.curve.SetRatio(defaultDynEQRatio)

	for ch := range d.channels {
		env, err := envelope.NewFollower(defaultAttack, defaultRelease, sampleRate)
		if err != nil {
			return nil, err
		}
		d.channels[ch].env = env
	}
	d.redesign()

	return d, nil
}

// SetBand sets centre frequency (Hz), Q and static band gain (dB).
func (d *DynamicEQ) SetBand(freq, q, gainDB float64) {
	if freq == d.freq && q == d.q && gainDB == d.gainDB {
		return
	}
	d.freq, d.q, d.gainDB = freq, q, gainDB
	d.redesign()
}

// SetThreshold sets the detector threshold in dBFS.
func (d *DynamicEQ) SetThreshold(db float64) { d.curve.SetThreshold(db) }

// SetRatio sets the reduction ratio.
func (d *DynamicEQ) SetRatio(ratio float64) { d.curve.SetRatio(ratio) }

// SetTimes sets the detector envelope attack and release in seconds.
func (d *DynamicEQ) SetTimes(attack, release float64) {
	for i := range d.channels {
		d.channels[i].env.SetTimes(attack, release)
	}
}

// Freq returns the centre frequency in Hz.
func (d *DynamicEQ) Freq() float64 { return d.freq }

// GainReduction returns the largest current reduction of the band gain in dB.
func (d *DynamicEQ) GainReduction() float64 {
	m := 0.0
	for _, r := range d.reduction {
		if r > m {
			m = r
		}
	}
	return m
}

// BandGain returns the effective band gain of channel ch in dB.
func (d *DynamicEQ) BandGain(ch int) float64 {
	return d.channels[ch].main.Gain()
}

func (d *DynamicEQ) redesign() {
	for i := range d.channels {
		c := &d.channels[i]
		c.main.SetParams(d.freq, d.gainDB-d.reduction[i], d.q, d.sampleRate, biquad.Peaking)
		c.detector.SetParams(d.freq, 0, d.q, d.sampleRate, biquad.Bandpass)
	}
}

// ProcessFrame equalises one frame in place.
func (d *DynamicEQ) ProcessFrame(frame, sidechain []float64) {
	n := len(frame)
	if n > len(d.channels) {
		n = len(d.channels)
	}

	for ch := range n {
		c := &d.channels[ch]
		band := c.detector.ProcessSample(pick(sidechain, ch, frame[ch]))
		env := c.env.Process(band)

		r := d.curve.TargetReduction(levelDB(env))
		if r != d.reduction[ch] {
			d.reduction[ch] = r
			c.main.SetGain(d.gainDB - r)
		}

		frame[ch] = c.main.ProcessSample(frame[ch])
	}
}

// ResetBallistics clears the detector envelopes and restores the static gain.
func (d *DynamicEQ) ResetBallistics() {
	for i := range d.channels {
		d.channels[i].env.Reset()
		d.reduction[i] = 0
		d.channels[i].main.SetGain(d.gainDB)
	}
}

// Reset clears all filter and detector state.
func (d *DynamicEQ) Reset() {
	d.ResetBallistics()
	for i := range d.channels {
		d.channels[i].main.Reset()
		d.channels[i].detector.Reset()
	}
	core.Zero(d.reduction)
}
