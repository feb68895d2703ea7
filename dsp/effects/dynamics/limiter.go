package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/delay"
)

const (
	defaultLimiterThresholdDB = -0.5
	defaultLimiterCeilingDB   = -0.1
	defaultLimiterRelease     = 0.1
	defaultLimiterLookaheadMs = 5.0

	// MaxLookaheadMs bounds the look-ahead delay line.
	MaxLookaheadMs = 20.0
)

// Limiter is a look-ahead peak limiter. The program path is delayed by the
// look-ahead time while the detector sees the undelayed input, so gain
// reduction is in place before a peak reaches the output.
//
// Levels above the threshold are held at the threshold and the result is
// scaled so that the threshold lands on the ceiling. A final clip keeps every
// output sample within the ceiling.
type Limiter struct {
	sampleRate float64

	thresholdDB float64
	ceilingDB   float64
	ceiling     float64
	makeup      float64
	release     float64
	releaseCoef float64
	lookaheadMs float64
	lookahead   int
	attackCoef  float64
	linked      bool

	lines     []*delay.Line
	reduction []float64
	held      []float64
	hold      []int
}

// NewLimiter returns a linked limiter with threshold -0.5 dB, ceiling
// -0.1 dB, release 100 ms and 5 ms look-ahead.
func NewLimiter(sampleRate float64, channels int) (*Limiter, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if channels <= 0 {
		return nil, fmt.Errorf("dynamics: channel count must be positive: %d", channels)
	}

	l := &Limiter{
		sampleRate: sampleRate,
		linked:     true,
		lines:      make([]*delay.Line, channels),
		reduction:  make([]float64, channels),
		held:       make([]float64, channels),
		hold:       make([]int, channels),
	}

	for ch := range l.lines {
		line, err := delay.ForDuration(MaxLookaheadMs/1000, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("dynamics: limiter look-ahead: %w", err)
		}
		l.lines[ch] = line
	}

	l.thresholdDB = defaultLimiterThresholdDB
	l.SetCeiling(defaultLimiterCeilingDB)
	l.SetRelease(defaultLimiterRelease)
	l.SetLookahead(defaultLimiterLookaheadMs)
	return l, nil
}

// SetThreshold sets the limiting threshold in dBFS.
func (l *Limiter) SetThreshold(db float64) {
	if !core.IsFinite(db) {
		return
	}
	l.thresholdDB = math.Min(db, 0)
	l.updateMakeup()
}

// SetCeiling sets the output ceiling in dBFS.
func (l *Limiter) SetCeiling(db float64) {
	if !core.IsFinite(db) {
		return
	}
	l.ceilingDB = math.Min(db, 0)
	l.ceiling = core.DBToLinear(l.ceilingDB)
	l.updateMakeup()
}

// SetRelease sets the release time in seconds.
func (l *Limiter) SetRelease(seconds float64) {
	l.release = seconds
	if !(seconds > minRelease) {
		seconds = minRelease
	}
	l.releaseCoef = core.TimeCoeff(seconds, l.sampleRate)
}

// SetLookahead sets the look-ahead in milliseconds, limited to
// [0, MaxLookaheadMs]. Changing it shifts the program delay.
func (l *Limiter) SetLookahead(ms float64) {
	ms = core.Clamp(ms, 0, MaxLookaheadMs)
	if math.IsNaN(ms) {
		ms = defaultLimiterLookaheadMs
	}
	l.lookaheadMs = ms
	l.lookahead = int(math.Round(ms * l.sampleRate / 1000))

	// The reduction ramps over roughly a third of the look-ahead window so
	// it is ~95% complete when the peak arrives.
	attack := ms / 3000
	l.attackCoef = 0
	if attack > 0 {
		l.attackCoef = core.TimeCoeff(attack, l.sampleRate)
	}
}

// SetLinked selects linked or independent channel detection.
func (l *Limiter) SetLinked(linked bool) { l.linked = linked }

// Threshold returns the threshold in dBFS.
func (l *Limiter) Threshold() float64 { return l.thresholdDB }

// Ceiling returns the ceiling in dBFS.
func (l *Limiter) Ceiling() float64 { return l.ceilingDB }

// Release returns the release time in seconds.
func (l *Limiter) Release() float64 { return l.release }

// Lookahead returns the look-ahead in milliseconds.
func (l *Limiter) Lookahead() float64 { return l.lookaheadMs }

// LatencySamples returns the program delay in samples.
func (l *Limiter) LatencySamples() int { return l.lookahead }

// GainReduction returns the largest current gain reduction in dB.
func (l *Limiter) GainReduction() float64 {
	m := 0.0
	for _, r := range l.reduction {
		if r > m {
			m = r
		}
	}
	return m
}

func (l *Limiter) updateMakeup() {
	l.makeup = core.DBToLinear(l.ceilingDB - l.thresholdDB)
}

// ProcessFrame limits one frame in place. sidechain, when present, replaces
// the per-channel detector input.
func (l *Limiter) ProcessFrame(frame, sidechain []float64) {
	n := len(frame)
	if n > len(l.lines) {
		n = len(l.lines)
	}

	if l.linked {
		peak := 0.0
		for ch := range n {
			if d := math.Abs(pick(sidechain, ch, frame[ch])); d > peak {
				peak = d
			}
		}
		r := l.step(0, peak)
		for ch := range n {
			l.reduction[ch] = r
			frame[ch] = l.output(ch, frame[ch], r)
		}
		return
	}

	for ch := range n {
		r := l.step(ch, math.Abs(pick(sidechain, ch, frame[ch])))
		frame[ch] = l.output(ch, frame[ch], r)
	}
}

// step holds the target reduction for the look-ahead window and applies
// attack/release smoothing.
func (l *Limiter) step(ch int, peak float64) float64 {
	target := math.Max(0, levelDB(peak)-l.thresholdDB)
	if !core.IsFinite(target) {
		target = 0
	}

	if target >= l.held[ch] {
		l.held[ch] = target
		l.hold[ch] = l.lookahead
	} else if l.hold[ch] > 0 {
		l.hold[ch]--
	} else {
		l.held[ch] = target
	}

	r := l.reduction[ch]
	if l.held[ch] > r {
		r = l.attackCoef*r + (1-l.attackCoef)*l.held[ch]
	} else {
		r = l.releaseCoef*r + (1-l.releaseCoef)*l.held[ch]
	}
	l.reduction[ch] = r
	return r
}

func (l *Limiter) output(ch int, x, reduction float64) float64 {
	line := l.lines[ch]
	line.Write(x)
	y := line.Read(l.lookahead) * ReductionGain(reduction) * l.makeup
	return core.Clamp(y, -l.ceiling, l.ceiling)
}

// ResetBallistics clears gain reduction while keeping the delay line.
func (l *Limiter) ResetBallistics() {
	core.Zero(l.reduction)
	core.Zero(l.held)
	for i := range l.hold {
		l.hold[i] = 0
	}
}

// Reset clears all state.
func (l *Limiter) Reset() {
	l.ResetBallistics()
	for _, line := range l.lines {
		line.Reset()
	}
}

func pick(sidechain []float64, ch int, fallback float64) float64 {
	if ch < len(sidechain) {
		return sidechain[ch]
	}
	return fallback
}
