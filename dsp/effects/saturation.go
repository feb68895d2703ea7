package effects

import (
	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/saturation"
)

const (
	maxSaturationDrive = 10.0
	maxSaturationGain  = 12.0
)

// Saturation drives the signal into one of the [saturation.Shape] curves:
//
//	y = shape(x*(1+drive)) * outputGain
//
// blended with the dry input by mix.
type Saturation struct {
	drive    float64
	shape    saturation.Shape
	gainDB   float64
	gain     float64
	mix      float64
	channels int
}

// NewSaturation returns a tube saturator with no drive, unity gain and full
// mix.
func NewSaturation(sampleRate float64, channels int) (*Saturation, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}
	return &Saturation{shape: saturation.Tube, gain: 1, mix: 1, channels: channels}, nil
}

// SetDrive sets the drive amount in [0, 10].
func (s *Saturation) SetDrive(drive float64) { s.drive = bounded(drive, 0, maxSaturationDrive, 0) }

// SetShape selects the transfer curve; unknown shapes fall back to tube.
func (s *Saturation) SetShape(shape saturation.Shape) {
	if !shape.Valid() {
		shape = saturation.Tube
	}
	s.shape = shape
}

// SetOutputGain sets the output gain in dB, within ±12.
func (s *Saturation) SetOutputGain(db float64) {
	s.gainDB = bounded(db, -maxSaturationGain, maxSaturationGain, 0)
	s.gain = core.DBToLinear(s.gainDB)
}

// SetMix sets the dry/wet ratio in [0, 1].
func (s *Saturation) SetMix(mix float64) { s.mix = bounded(mix, 0, 1, 1) }

// Drive returns the drive amount.
func (s *Saturation) Drive() float64 { return s.drive }

// Shape returns the transfer curve.
func (s *Saturation) Shape() saturation.Shape { return s.shape }

// OutputGain returns the output gain in dB.
func (s *Saturation) OutputGain() float64 { return s.gainDB }

// Mix returns the dry/wet ratio.
func (s *Saturation) Mix() float64 { return s.mix }

// ProcessFrame saturates one frame in place.
func (s *Saturation) ProcessFrame(frame []float64) {
	n := frameWidth(frame, s.channels)
	for ch := range n {
		x := frame[ch]
		wet := saturation.Saturate(x, 1+s.drive, s.shape) * s.gain
		frame[ch] = x*(1-s.mix) + wet*s.mix
	}
}
