package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
)

// stereoPhaseOffset is the LFO phase offset, in cycles, of each channel
// relative to the previous one.
const stereoPhaseOffset = 0.25

func validate(sampleRate float64, channels int) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("modulation: sample rate must be positive and finite: %v", sampleRate)
	}
	if channels <= 0 {
		return fmt.Errorf("modulation: channel count must be positive: %d", channels)
	}
	return nil
}

// unit clamps v to [0, 1]; NaN maps to fallback.
func unit(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return core.Clamp(v, 0, 1)
}

// bounded clamps v to [lo, hi]; NaN maps to fallback.
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
