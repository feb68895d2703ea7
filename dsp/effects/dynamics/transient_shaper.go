package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/envelope"
)

const (
	transientFastAttack  = 0.001
	transientFastRelease = 0.02
	transientSlowAttack  = 0.02
	transientSlowRelease = 0.2

	maxTransientGainDB = 24.0
)

type transientChannel struct {
	fast *envelope.Follower
	slow *envelope.Follower
}

// TransientShaper boosts or cuts attacks and sustain independently.
//
// A fast and a slow envelope follower run on each channel. While the fast
// envelope leads, the signal is in an attack; the normalised lead
// t = (fast-slow)/fast in [0, 1] blends the attack and sustain gains:
// gainDB = attackGain*t + sustainGain*(1-t).
type TransientShaper struct {
	attackDB  float64
	sustainDB float64
	mix       float64

	channels []transientChannel
	lastGain []float64
}

// NewTransientShaper returns a neutral transient shaper (0 dB attack and
// sustain gain, full mix).
func NewTransientShaper(sampleRate float64, channels int) (*TransientShaper, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if channels <= 0 {
		return nil, fmt.Errorf("dynamics: channel count must be positive: %d", channels)
	}

	t := &TransientShaper{
		mix:      1,
		channels: make([]transientChannel, channels),
		lastGain: make([]float64, channels),
	}
	for ch := range t.channels {
		fast, err := envelope.NewFollower(transientFastAttack, transientFastRelease, sampleRate)
		if err != nil {
			return nil, err
		}
		slow, err := envelope.NewFollower(transientSlowAttack, transientSlowRelease, sampleRate)
		if err != nil {
			return nil, err
		}
		t.channels[ch] = transientChannel{fast: fast, slow: slow}
	}
	return t, nil
}

// SetAttackGain sets the gain applied to attacks in dB, within ±24.
func (t *TransientShaper) SetAttackGain(db float64) {
	t.attackDB = clampGain(db)
}

// SetSustainGain sets the gain applied to sustain in dB, within ±24.
func (t *TransientShaper) SetSustainGain(db float64) {
	t.sustainDB = clampGain(db)
}

// SetMix sets the dry/wet ratio in [0, 1].
func (t *TransientShaper) SetMix(mix float64) {
	if math.IsNaN(mix) {
		mix = 1
	}
	t.mix = core.Clamp(mix, 0, 1)
}

// AttackGain returns the attack gain in dB.
func (t *TransientShaper) AttackGain() float64 { return t.attackDB }

// SustainGain returns the sustain gain in dB.
func (t *TransientShaper) SustainGain() float64 { return t.sustainDB }

// Gain returns the most recent applied gain of channel ch in dB.
func (t *TransientShaper) Gain(ch int) float64 { return t.lastGain[ch] }

// ProcessFrame shapes one frame in place. The sidechain is unused.
func (t *TransientShaper) ProcessFrame(frame, _ []float64) {
	n := len(frame)
	if n > len(t.channels) {
		n = len(t.channels)
	}

	for ch := range n {
		c := &t.channels[ch]
		x := frame[ch]
		fast := c.fast.Process(x)
		slow := c.slow.Process(x)

		lead := 0.0
		if fast > levelFloor && fast > slow {
			lead = (fast - slow) / fast
		}

		gainDB := t.attackDB*lead + t.sustainDB*(1-lead)
		t.lastGain[ch] = gainDB

		wet := x * gainFromDB(gainDB)
		frame[ch] = x*(1-t.mix) + wet*t.mix
	}
}

// Reset clears envelope state.
func (t *TransientShaper) Reset() {
	for i := range t.channels {
		t.channels[i].fast.Reset()
		t.channels[i].slow.Reset()
		t.lastGain[i] = 0
	}
}

func clampGain(db float64) float64 {
	if math.IsNaN(db) {
		return 0
	}
	return core.Clamp(db, -maxTransientGainDB, maxTransientGainDB)
}
