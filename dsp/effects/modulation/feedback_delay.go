package modulation

import "github.com/cwbudde/algo-master/dsp/delay"

const (
	defaultDelayTime     = 0.5
	defaultDelayFeedback = 0.3
	defaultDelayWet      = 0.5

	// MaxDelayTime is the longest echo in seconds.
	MaxDelayTime     = 2.0
	minDelayTime     = 0.001
	maxDelayFeedback = 0.95
)

// FeedbackDelay is a per-channel echo with feedback. The delay time is read
// with linear interpolation so it can be swept without zipper noise.
type FeedbackDelay struct {
	sampleRate float64
	delayTime  float64
	feedback   float64
	wet        float64

	lines []*delay.Line
}

// NewFeedbackDelay returns a 500 ms echo with 30% feedback, 50% wet.
func NewFeedbackDelay(sampleRate float64, channels int) (*FeedbackDelay, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}
	d := &FeedbackDelay{
		sampleRate: sampleRate,
		delayTime:  defaultDelayTime,
		feedback:   defaultDelayFeedback,
		wet:        defaultDelayWet,
		lines:      make([]*delay.Line, channels),
	}
	for ch := range d.lines {
		line, err := delay.ForDuration(MaxDelayTime, sampleRate)
		if err != nil {
			return nil, err
		}
		d.lines[ch] = line
	}
	return d, nil
}

// SetDelay sets the delay time in seconds.
func (d *FeedbackDelay) SetDelay(seconds float64) {
	d.delayTime = bounded(seconds, minDelayTime, MaxDelayTime, defaultDelayTime)
}

// SetFeedback sets the feedback gain in [0, 0.95].
func (d *FeedbackDelay) SetFeedback(fb float64) {
	d.feedback = bounded(fb, 0, maxDelayFeedback, defaultDelayFeedback)
}

// SetWet sets the wet amount in [0, 1].
func (d *FeedbackDelay) SetWet(wet float64) { d.wet = unit(wet, defaultDelayWet) }

// Delay returns the delay time in seconds.
func (d *FeedbackDelay) Delay() float64 { return d.delayTime }

// Feedback returns the feedback gain.
func (d *FeedbackDelay) Feedback() float64 { return d.feedback }

// Wet returns the wet amount.
func (d *FeedbackDelay) Wet() float64 { return d.wet }

// ProcessFrame processes one frame in place.
func (d *FeedbackDelay) ProcessFrame(frame []float64) {
	n := frameWidth(frame, len(d.lines))
	samples := d.delayTime * d.sampleRate
	for ch := range n {
		line := d.lines[ch]
		x := frame[ch]
		// The echo is read before the current write, so a delay of one
		// sample reads the previous input.
		y := line.ReadLinear(samples - 1)
		line.Write(x + y*d.feedback)
		frame[ch] = x*(1-d.wet) + y*d.wet
	}
}

// Reset clears the delay memory.
func (d *FeedbackDelay) Reset() {
	for _, line := range d.lines {
		line.Reset()
	}
}
