package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
)

const (
	levelFloor = core.LevelFloor

	defaultThresholdDB = -24.0
	defaultRatio       = 4.0
	defaultKneeDB      = 5.0
	defaultAttack      = 0.01
	defaultRelease     = 0.1

	// minRelease matches the smallest release the compressor descriptors
	// allow; attack may go down to core.MinTimeConstant.
	minRelease = 1e-3

	// varMuKneeScale converts the knee control into the VarMu ratio slope.
	varMuKneeScale = 0.1
)

// GainComputer holds the static curve and ballistics settings of a
// compressor channel. The running gain reduction is owned by the caller and
// passed through [GainComputer.Next], so one computer can drive any number
// of channels or bands.
type GainComputer struct {
	sampleRate float64

	thresholdDB float64
	ratio       float64
	kneeDB      float64
	topology    Topology

	attack      float64
	release     float64
	attackCoef  float64
	releaseCoef float64
}

// NewGainComputer returns a VCA computer with threshold -24 dB, ratio 4:1,
// knee 5, attack 10 ms and release 100 ms.
func NewGainComputer(sampleRate float64) (*GainComputer, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}

	g := &GainComputer{}
	g.init(sampleRate)
	return g, nil
}

func (g *GainComputer) init(sampleRate float64) {
	g.sampleRate = sampleRate
	g.thresholdDB = defaultThresholdDB
	g.ratio = defaultRatio
	g.kneeDB = defaultKneeDB
	g.topology = VCA
	g.SetAttack(defaultAttack)
	g.SetRelease(defaultRelease)
}

// SetThreshold sets the threshold in dBFS.
func (g *GainComputer) SetThreshold(db float64) {
	if core.IsFinite(db) {
		g.thresholdDB = db
	}
}

// SetRatio sets the compression ratio; values below 1 are treated as 1.
func (g *GainComputer) SetRatio(ratio float64) {
	if !(ratio >= 1) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	g.ratio = ratio
}

// SetKnee sets the knee control. Only [VarMu] uses it, as the slope of its
// level-dependent ratio.
func (g *GainComputer) SetKnee(knee float64) {
	if !(knee >= 0) || math.IsInf(knee, 0) {
		knee = 0
	}
	g.kneeDB = knee
}

// SetTopology selects the topology; unknown values fall back to [VCA].
func (g *GainComputer) SetTopology(t Topology) {
	if !t.Valid() {
		t = VCA
	}
	g.topology = t
}

// SetAttack sets the attack time in seconds.
func (g *GainComputer) SetAttack(seconds float64) {
	if seconds == g.attack && g.attackCoef != 0 {
		return
	}
	g.attack = seconds
	g.attackCoef = core.TimeCoeff(seconds, g.sampleRate)
}

// SetRelease sets the release time in seconds, floored at 1 ms.
func (g *GainComputer) SetRelease(seconds float64) {
	if seconds == g.release && g.releaseCoef != 0 {
		return
	}
	g.release = seconds
	if !(seconds > minRelease) {
		seconds = minRelease
	}
	g.releaseCoef = core.TimeCoeff(seconds, g.sampleRate)
}

// Threshold returns the threshold in dBFS.
func (g *GainComputer) Threshold() float64 { return g.thresholdDB }

// Ratio returns the ratio.
func (g *GainComputer) Ratio() float64 { return g.ratio }

// Knee returns the knee control.
func (g *GainComputer) Knee() float64 { return g.kneeDB }

// Topology returns the active topology.
func (g *GainComputer) Topology() Topology { return g.topology }

// Attack returns the attack time in seconds.
func (g *GainComputer) Attack() float64 { return g.attack }

// Release returns the release time in seconds.
func (g *GainComputer) Release() float64 { return g.release }

// SampleRate returns the sample rate in Hz.
func (g *GainComputer) SampleRate() float64 { return g.sampleRate }

// TargetReduction returns the static gain reduction in dB (>= 0) for a
// detector level in dB.
func (g *GainComputer) TargetReduction(levelDB float64) float64 {
	overshoot := levelDB - g.thresholdDB
	if !(overshoot > 0) {
		return 0
	}

	r := g.ratio
	if g.topology == VarMu {
		r = 1 + overshoot*g.kneeDB*varMuKneeScale
		if r < 1 {
			r = 1
		}
	}

	return overshoot * (1 - 1/r)
}

// Next advances the ballistics by one sample. reduction is the current gain
// reduction in dB and detector the linear detector sample; the updated
// reduction is returned.
//
// For [FET] the caller passes the previous processed output as detector.
func (g *GainComputer) Next(reduction, detector float64) float64 {
	target := g.TargetReduction(levelDB(detector))

	coef := g.releaseCoef
	if target > reduction {
		coef = g.attackCoef
	} else if g.topology == Opto {
		level := math.Abs(detector)
		if level > 1 {
			level = 1
		}
		coef *= 1 - level
	}

	reduction = coef*reduction + (1-coef)*target
	if !core.IsFinite(reduction) {
		return 0
	}

	return reduction
}

// ReductionGain converts a gain reduction in dB to a linear gain factor.
func ReductionGain(reductionDB float64) float64 {
	return gainFromDB(-reductionDB)
}

func validateSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("dynamics: sample rate must be positive and finite: %v", sampleRate)
	}
	return nil
}
