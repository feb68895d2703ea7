// Package envelope provides the one-pole level follower used as the detector
// of the dynamics processors and the auto-wah.
package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
)

// Follower tracks the magnitude of a signal with separate attack and release
// time constants. The attack path is taken while |x| exceeds the envelope.
type Follower struct {
	sampleRate  float64
	attackTime  float64
	releaseTime float64
	attackCoef  float64
	releaseCoef float64
	env         float64
}

// NewFollower returns a follower with the given attack and release times in
// seconds. Times below [core.MinTimeConstant] are floored.
func NewFollower(attack, release, sampleRate float64) (*Follower, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("envelope: sample rate must be positive and finite, got %v", sampleRate)
	}

	f := &Follower{sampleRate: sampleRate}
	f.SetTimes(attack, release)
	return f, nil
}

// SetTimes updates the attack and release times in seconds.
func (f *Follower) SetTimes(attack, release float64) {
	if attack == f.attackTime && release == f.releaseTime && f.attackCoef != 0 {
		return
	}
	f.attackTime = attack
	f.releaseTime = release
	f.attackCoef = core.TimeCoeff(attack, f.sampleRate)
	f.releaseCoef = core.TimeCoeff(release, f.sampleRate)
}

// Process feeds one sample and returns the updated envelope.
func (f *Follower) Process(x float64) float64 {
	level := math.Abs(x)

	coef := f.releaseCoef
	if level > f.env {
		coef = f.attackCoef
	}

	f.env = coef*f.env + (1-coef)*level
	if !core.IsFinite(f.env) {
		f.env = 0
	}
	f.env = core.FlushDenormals(f.env)

	return f.env
}

// Value returns the current envelope without advancing it.
func (f *Follower) Value() float64 { return f.env }

// Attack returns the attack time in seconds.
func (f *Follower) Attack() float64 { return f.attackTime }

// Release returns the release time in seconds.
func (f *Follower) Release() float64 { return f.releaseTime }

// Reset sets the envelope to zero.
func (f *Follower) Reset() { f.env = 0 }
