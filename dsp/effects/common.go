package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
)

func validate(sampleRate float64, channels int) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("effects: sample rate must be positive and finite: %v", sampleRate)
	}
	if channels <= 0 {
		return fmt.Errorf("effects: channel count must be positive: %d", channels)
	}
	return nil
}

func bounded(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return core.Clamp(v, lo, hi)
}

func frameWidth(frame []float64, channels int) int {
	if len(frame) < channels {
		return len(frame)
	}
	return channels
}

// raisedCosine falls from 1 at t=0 to 0 at t=1.
func raisedCosine(t float64) float64 {
	return 0.5 * (1 + math.Cos(math.Pi*t))
}
