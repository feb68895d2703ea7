package effects

import (
	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/saturation"
)

const (
	minDistortionDrive = 1.0
	maxDistortionDrive = 100.0
	maxDistortionGain  = 24.0
)

// Distortion is a waveshaper with 2x pseudo-oversampling: the curve is
// evaluated at the sample and at the midpoint to the previous sample, and
// the two results are averaged. This halves the level of the strongest
// aliased partials at no latency.
type Distortion struct {
	drive  float64
	wet    float64
	curve  saturation.Curve
	gainDB float64
	gain   float64

	last []float64
}

// NewDistortion returns a tanh distortion at unity drive, fully wet.
func NewDistortion(sampleRate float64, channels int) (*Distortion, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}
	return &Distortion{
		drive: minDistortionDrive,
		wet:   1,
		curve: saturation.CurveTanh,
		gain:  1,
		last:  make([]float64, channels),
	}, nil
}

// SetDrive sets the input gain multiplier in [1, 100].
func (d *Distortion) SetDrive(drive float64) {
	d.drive = bounded(drive, minDistortionDrive, maxDistortionDrive, minDistortionDrive)
}

// SetWet sets the wet amount in [0, 1].
func (d *Distortion) SetWet(wet float64) { d.wet = bounded(wet, 0, 1, 1) }

// SetCurve selects the transfer curve; unknown curves fall back to tanh.
func (d *Distortion) SetCurve(c saturation.Curve) {
	if !c.Valid() {
		c = saturation.CurveTanh
	}
	d.curve = c
}

// SetOutputGain sets the output gain in dB, within ±24.
func (d *Distortion) SetOutputGain(db float64) {
	d.gainDB = bounded(db, -maxDistortionGain, maxDistortionGain, 0)
	d.gain = core.DBToLinear(d.gainDB)
}

// Drive returns the drive multiplier.
func (d *Distortion) Drive() float64 { return d.drive }

// Wet returns the wet amount.
func (d *Distortion) Wet() float64 { return d.wet }

// Curve returns the transfer curve.
func (d *Distortion) Curve() saturation.Curve { return d.curve }

// OutputGain returns the output gain in dB.
func (d *Distortion) OutputGain() float64 { return d.gainDB }

// ProcessFrame distorts one frame in place.
func (d *Distortion) ProcessFrame(frame []float64) {
	n := frameWidth(frame, len(d.last))
	for ch := range n {
		x := frame[ch]
		mid := 0.5 * (x + d.last[ch])
		d.last[ch] = x

		shaped := 0.5 * (saturation.Waveshape(d.curve, x*d.drive) +
			saturation.Waveshape(d.curve, mid*d.drive))
		frame[ch] = (shaped*d.wet + x*(1-d.wet)) * d.gain
	}
}

// Reset clears the interpolation memory.
func (d *Distortion) Reset() { core.Zero(d.last) }
