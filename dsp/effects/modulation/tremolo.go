package modulation

import "github.com/cwbudde/algo-master/dsp/lfo"

const (
	defaultTremoloRate  = 4.0
	defaultTremoloDepth = 0.5
	defaultTremoloMix   = 1.0
)

// Tremolo modulates amplitude with an LFO:
//
//	g(t) = 1 - depth * (lfo(t + ch*spread/2)+1)/2
//
// spread shifts each further channel by up to half a cycle, giving an
// auto-pan at spread 1 on stereo material.
type Tremolo struct {
	depth  float64
	spread float64
	mix    float64

	osc      *lfo.LFO
	channels int
}

// NewTremolo returns a 4 Hz sine tremolo at 50% depth.
func NewTremolo(sampleRate float64, channels int) (*Tremolo, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}
	osc, err := lfo.New(defaultTremoloRate, sampleRate)
	if err != nil {
		return nil, err
	}
	return &Tremolo{
		depth:    defaultTremoloDepth,
		mix:      defaultTremoloMix,
		osc:      osc,
		channels: channels,
	}, nil
}

// SetRate sets the LFO rate in Hz.
func (t *Tremolo) SetRate(hz float64) { t.osc.SetRate(hz) }

// SetDepth sets the modulation depth in [0, 1].
func (t *Tremolo) SetDepth(depth float64) { t.depth = unit(depth, defaultTremoloDepth) }

// SetSpread sets the inter-channel phase spread in [0, 1].
func (t *Tremolo) SetSpread(spread float64) { t.spread = unit(spread, 0) }

// SetWaveform selects the LFO shape.
func (t *Tremolo) SetWaveform(w lfo.Waveform) { t.osc.SetWaveform(w) }

// SetMix sets the dry/wet ratio in [0, 1].
func (t *Tremolo) SetMix(mix float64) { t.mix = unit(mix, defaultTremoloMix) }

// Rate returns the LFO rate in Hz.
func (t *Tremolo) Rate() float64 { return t.osc.Rate() }

// Depth returns the modulation depth.
func (t *Tremolo) Depth() float64 { return t.depth }

// Spread returns the phase spread.
func (t *Tremolo) Spread() float64 { return t.spread }

// Waveform returns the LFO shape.
func (t *Tremolo) Waveform() lfo.Waveform { return t.osc.Waveform() }

// Mix returns the dry/wet ratio.
func (t *Tremolo) Mix() float64 { return t.mix }

// ProcessFrame processes one frame in place.
func (t *Tremolo) ProcessFrame(frame []float64) {
	n := frameWidth(frame, t.channels)
	for ch := range n {
		mod := lfo.Unipolar(t.osc.ValueAt(float64(ch) * t.spread * 0.5))
		g := 1 - t.depth*mod
		x := frame[ch]
		frame[ch] = x*(1-t.mix) + x*g*t.mix
	}
	t.osc.Advance()
}

// Reset returns the LFO to phase zero.
func (t *Tremolo) Reset() { t.osc.Reset() }
