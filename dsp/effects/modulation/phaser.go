package modulation

import (
	"math"

	"github.com/cwbudde/algo-master/dsp/filter/allpass"
	"github.com/cwbudde/algo-master/dsp/lfo"
)

const (
	defaultPhaserStages  = 4
	defaultPhaserRate    = 0.5
	defaultPhaserBase    = 1000.0
	defaultPhaserOctaves = 2.0
	defaultPhaserWet     = 0.5

	// MaxPhaserStages bounds the all-pass cascade.
	MaxPhaserStages    = 12
	maxPhaserOctaves   = 6.0
	phaserNyquistRatio = 0.49
)

// Phaser sweeps a cascade of first-order all-pass stages and mixes the
// result with the dry signal. The notch frequency follows
//
//	f(t) = baseFrequency * 2^(octaves * (lfo(t)+1)/2)
type Phaser struct {
	sampleRate float64
	stages     int
	base       float64
	octaves    float64
	wet        float64

	osc      *lfo.LFO
	cascades [][MaxPhaserStages]allpass.Stage
}

// NewPhaser returns a 4-stage phaser at 0.5 Hz sweeping two octaves above
// 1 kHz, 50% wet.
func NewPhaser(sampleRate float64, channels int) (*Phaser, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}
	osc, err := lfo.New(defaultPhaserRate, sampleRate)
	if err != nil {
		return nil, err
	}
	return &Phaser{
		sampleRate: sampleRate,
		stages:     defaultPhaserStages,
		base:       defaultPhaserBase,
		octaves:    defaultPhaserOctaves,
		wet:        defaultPhaserWet,
		osc:        osc,
		cascades:   make([][MaxPhaserStages]allpass.Stage, channels),
	}, nil
}

// SetStages sets the number of all-pass stages in [1, MaxPhaserStages].
func (p *Phaser) SetStages(n int) {
	if n < 1 {
		n = 1
	}
	if n > MaxPhaserStages {
		n = MaxPhaserStages
	}
	p.stages = n
}

// SetRate sets the LFO rate in Hz.
func (p *Phaser) SetRate(hz float64) { p.osc.SetRate(hz) }

// SetBaseFrequency sets the lowest sweep frequency in Hz.
func (p *Phaser) SetBaseFrequency(hz float64) {
	p.base = bounded(hz, 1, phaserNyquistRatio*p.sampleRate, defaultPhaserBase)
}

// SetOctaves sets the sweep range above the base frequency.
func (p *Phaser) SetOctaves(oct float64) {
	p.octaves = bounded(oct, 0, maxPhaserOctaves, defaultPhaserOctaves)
}

// SetWet sets the wet amount in [0, 1].
func (p *Phaser) SetWet(wet float64) { p.wet = unit(wet, defaultPhaserWet) }

// Stages returns the number of active stages.
func (p *Phaser) Stages() int { return p.stages }

// Rate returns the LFO rate in Hz.
func (p *Phaser) Rate() float64 { return p.osc.Rate() }

// BaseFrequency returns the base sweep frequency in Hz.
func (p *Phaser) BaseFrequency() float64 { return p.base }

// Octaves returns the sweep range in octaves.
func (p *Phaser) Octaves() float64 { return p.octaves }

// Wet returns the wet amount.
func (p *Phaser) Wet() float64 { return p.wet }

// ProcessFrame processes one frame in place.
func (p *Phaser) ProcessFrame(frame []float64) {
	n := frameWidth(frame, len(p.cascades))
	for ch := range n {
		mod := lfo.Unipolar(p.osc.ValueAt(float64(ch) * stereoPhaseOffset))
		freq := p.base * math.Exp2(p.octaves*mod)
		a := allpass.Coefficient(math.Min(freq, phaserNyquistRatio*p.sampleRate), p.sampleRate)

		x := frame[ch]
		y := x
		cascade := &p.cascades[ch]
		for s := range p.stages {
			cascade[s].SetCoefficient(a)
			y = cascade[s].ProcessSample(y)
		}
		frame[ch] = x*(1-p.wet) + y*p.wet
	}
	p.osc.Advance()
}

// Reset clears all-pass state and LFO phase.
func (p *Phaser) Reset() {
	for ch := range p.cascades {
		for s := range p.cascades[ch] {
			p.cascades[ch][s].Reset()
		}
	}
	p.osc.Reset()
}
