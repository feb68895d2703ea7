package spatial

import (
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
)

// MaxWidth is the widest setting of [Width] and the [Imager] bands.
const MaxWidth = 2.0

// Width is a broadband mid/side width control.
type Width struct {
	width float64
}

// NewWidth returns a width processor at the given width.
func NewWidth(width float64) *Width {
	w := &Width{}
	w.SetWidth(width)
	return w
}

// SetWidth sets the width in [0, MaxWidth]; NaN resets to 1.
func (w *Width) SetWidth(width float64) { w.width = clampWidth(width, 1) }

// Width returns the width.
func (w *Width) Width() float64 { return w.width }

// ProcessFrame processes one frame in place.
func (w *Width) ProcessFrame(frame []float64) {
	if !isStereo(frame) {
		return
	}
	frame[0], frame[1] = ApplyWidth(frame[0], frame[1], w.width)
}

func clampWidth(width, fallback float64) float64 {
	if math.IsNaN(width) {
		return fallback
	}
	return core.Clamp(width, 0, MaxWidth)
}
