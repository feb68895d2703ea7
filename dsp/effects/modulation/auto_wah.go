package modulation

import (
	"math"

	"github.com/cwbudde/algo-master/dsp/envelope"
	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

const (
	defaultAutoWahBase        = 100.0
	defaultAutoWahSensitivity = 0.5
	defaultAutoWahOctaves     = 4.0
	defaultAutoWahQ           = 2.0
	defaultAutoWahAttack      = 0.01
	defaultAutoWahRelease     = 0.1
	defaultAutoWahWet         = 1.0

	maxAutoWahOctaves = 8.0

	// autoWahGain scales the envelope so that sensitivity 1 reaches the top
	// of the sweep at about -20 dBFS.
	autoWahGain = 10.0

	// AutoWahControlInterval is the number of samples between band-pass
	// redesigns. Updates fall on multiples of the absolute sample count.
	AutoWahControlInterval = 16
)

type autoWahChannel struct {
	env    *envelope.Follower
	filter biquad.Filter
}

// AutoWah sweeps a band-pass filter with the input envelope:
//
//	f = baseFrequency * 2^(octaves * min(1, env*sensitivity*10))
type AutoWah struct {
	sampleRate  float64
	base        float64
	sensitivity float64
	octaves     float64
	q           float64
	wet         float64

	channels []autoWahChannel
	position uint64
	centre   float64
}

// NewAutoWah returns an auto-wah sweeping four octaves above 100 Hz.
func NewAutoWah(sampleRate float64, channels int) (*AutoWah, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}
	a := &AutoWah{
		sampleRate:  sampleRate,
		base:        defaultAutoWahBase,
		sensitivity: defaultAutoWahSensitivity,
		octaves:     defaultAutoWahOctaves,
		q:           defaultAutoWahQ,
		wet:         defaultAutoWahWet,
		channels:    make([]autoWahChannel, channels),
		centre:      defaultAutoWahBase,
	}
	for ch := range a.channels {
		env, err := envelope.NewFollower(defaultAutoWahAttack, defaultAutoWahRelease, sampleRate)
		if err != nil {
			return nil, err
		}
		a.channels[ch].env = env
		a.channels[ch].filter.SetParams(a.base, 0, a.q, sampleRate, biquad.Bandpass)
	}
	return a, nil
}

// SetBaseFrequency sets the resting frequency in Hz.
func (a *AutoWah) SetBaseFrequency(hz float64) {
	a.base = bounded(hz, 1, 0.49*a.sampleRate, defaultAutoWahBase)
}

// SetSensitivity sets how strongly the envelope opens the filter, in [0, 1].
func (a *AutoWah) SetSensitivity(s float64) {
	a.sensitivity = unit(s, defaultAutoWahSensitivity)
}

// SetOctaves sets the sweep range.
func (a *AutoWah) SetOctaves(oct float64) {
	a.octaves = bounded(oct, 0, maxAutoWahOctaves, defaultAutoWahOctaves)
}

// SetQ sets the band-pass resonance.
func (a *AutoWah) SetQ(q float64) {
	if !(q > 0) {
		q = defaultAutoWahQ
	}
	a.q = q
}

// SetTimes sets envelope attack and release in seconds.
func (a *AutoWah) SetTimes(attack, release float64) {
	for i := range a.channels {
		a.channels[i].env.SetTimes(attack, release)
	}
}

// SetWet sets the wet amount in [0, 1].
func (a *AutoWah) SetWet(wet float64) { a.wet = unit(wet, defaultAutoWahWet) }

// BaseFrequency returns the resting frequency in Hz.
func (a *AutoWah) BaseFrequency() float64 { return a.base }

// Sensitivity returns the envelope sensitivity.
func (a *AutoWah) Sensitivity() float64 { return a.sensitivity }

// Octaves returns the sweep range.
func (a *AutoWah) Octaves() float64 { return a.octaves }

// Q returns the band-pass resonance.
func (a *AutoWah) Q() float64 { return a.q }

// Wet returns the wet amount.
func (a *AutoWah) Wet() float64 { return a.wet }

// Centre returns the band-pass frequency of the last control update in Hz.
func (a *AutoWah) Centre() float64 { return a.centre }

// ProcessFrame processes one frame in place.
func (a *AutoWah) ProcessFrame(frame []float64) {
	n := frameWidth(frame, len(a.channels))

	tick := a.position%AutoWahControlInterval == 0
	a.position++

	// The sweep is driven by the loudest channel so the image stays put.
	level := 0.0
	for ch := range n {
		if v := a.channels[ch].env.Process(frame[ch]); v > level {
			level = v
		}
	}

	if tick {
		open := math.Min(1, level*a.sensitivity*autoWahGain)
		a.centre = math.Min(a.base*math.Exp2(a.octaves*open), 0.49*a.sampleRate)
		for ch := range a.channels {
			a.channels[ch].filter.SetParams(a.centre, 0, a.q, a.sampleRate, biquad.Bandpass)
		}
	}

	for ch := range n {
		x := frame[ch]
		y := a.channels[ch].filter.ProcessSample(x)
		frame[ch] = x*(1-a.wet) + y*a.wet
	}
}

// Reset clears envelope and filter state and the control clock.
func (a *AutoWah) Reset() {
	for i := range a.channels {
		a.channels[i].env.Reset()
		a.channels[i].filter.Reset()
	}
	a.position = 0
}
