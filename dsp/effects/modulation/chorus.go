package modulation

import (
	"github.com/cwbudde/algo-master/dsp/delay"
	"github.com/cwbudde/algo-master/dsp/lfo"
)

const (
	defaultChorusRate     = 1.5
	defaultChorusDelay    = 0.03
	defaultChorusDepth    = 0.002
	defaultChorusFeedback = 0.0
	defaultChorusWet      = 0.5

	maxChorusDelay    = 0.1
	maxChorusDepth    = 0.02
	maxChorusFeedback = 0.95
)

// Chorus is a modulated-delay chorus. The delay time follows
//
//	d(t) = delayTime + depth * lfo(t + ch/4)
//
// so stereo channels are modulated in quadrature.
type Chorus struct {
	sampleRate float64
	delayTime  float64
	depth      float64
	feedback   float64
	wet        float64

	osc   *lfo.LFO
	lines []*delay.Line
	last  []float64
}

// NewChorus returns a chorus at 1.5 Hz, 30 ms delay, 2 ms depth, no
// feedback and 50% wet.
func NewChorus(sampleRate float64, channels int) (*Chorus, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}

	osc, err := lfo.New(defaultChorusRate, sampleRate)
	if err != nil {
		return nil, err
	}

	c := &Chorus{
		sampleRate: sampleRate,
		delayTime:  defaultChorusDelay,
		depth:      defaultChorusDepth,
		feedback:   defaultChorusFeedback,
		wet:        defaultChorusWet,
		osc:        osc,
		lines:      make([]*delay.Line, channels),
		last:       make([]float64, channels),
	}
	for ch := range c.lines {
		line, err := delay.ForDuration(maxChorusDelay+maxChorusDepth, sampleRate)
		if err != nil {
			return nil, err
		}
		c.lines[ch] = line
	}
	return c, nil
}

// SetRate sets the LFO rate in Hz.
func (c *Chorus) SetRate(hz float64) { c.osc.SetRate(hz) }

// SetDelay sets the centre delay in seconds, up to 100 ms.
func (c *Chorus) SetDelay(seconds float64) {
	c.delayTime = bounded(seconds, 0, maxChorusDelay, defaultChorusDelay)
}

// SetDepth sets the modulation depth in seconds, up to 20 ms.
func (c *Chorus) SetDepth(seconds float64) {
	c.depth = bounded(seconds, 0, maxChorusDepth, defaultChorusDepth)
}

// SetFeedback sets the feedback gain in [0, 0.95].
func (c *Chorus) SetFeedback(fb float64) {
	c.feedback = bounded(fb, 0, maxChorusFeedback, 0)
}

// SetWet sets the wet amount in [0, 1].
func (c *Chorus) SetWet(wet float64) { c.wet = unit(wet, defaultChorusWet) }

// Rate returns the LFO rate in Hz.
func (c *Chorus) Rate() float64 { return c.osc.Rate() }

// Delay returns the centre delay in seconds.
func (c *Chorus) Delay() float64 { return c.delayTime }

// Depth returns the modulation depth in seconds.
func (c *Chorus) Depth() float64 { return c.depth }

// Feedback returns the feedback gain.
func (c *Chorus) Feedback() float64 { return c.feedback }

// Wet returns the wet amount.
func (c *Chorus) Wet() float64 { return c.wet }

// ProcessFrame processes one frame in place.
func (c *Chorus) ProcessFrame(frame []float64) {
	n := frameWidth(frame, len(c.lines))
	for ch := range n {
		x := frame[ch]
		d := (c.delayTime + c.depth*c.osc.ValueAt(float64(ch)*stereoPhaseOffset)) * c.sampleRate
		if d < 1 {
			d = 1
		}

		line := c.lines[ch]
		line.Write(x + c.last[ch]*c.feedback)
		y := line.ReadLinear(d)
		c.last[ch] = y

		frame[ch] = x*(1-c.wet) + y*c.wet
	}
	c.osc.Advance()
}

// Reset clears delay memory and LFO phase.
func (c *Chorus) Reset() {
	for ch, line := range c.lines {
		line.Reset()
		c.last[ch] = 0
	}
	c.osc.Reset()
}
