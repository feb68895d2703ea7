// Package saturation provides memoryless waveshapers: the analog-flavoured
// [Shape] saturator and the [Curve] clippers used by the distortion effect.
package saturation

import (
	"fmt"
	"math"
)

// Shape selects a saturation character.
type Shape int

const (
	// Tape is symmetric tanh soft clipping (odd harmonics).
	Tape Shape = iota
	// Tube is asymmetric: tanh for positive input, x/(1+|x|) for negative
	// input, which adds even harmonics.
	Tube
	// Fuzz hard-clips at ±1.
	Fuzz

	shapeCount
)

var shapeNames = [shapeCount]string{"tape", "tube", "fuzz"}

// String returns the lower-case shape name.
func (s Shape) String() string {
	if s >= 0 && s < shapeCount {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", s)
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool { return s >= 0 && s < shapeCount }

// Saturate applies drive as a linear gain and shapes the result. Unknown
// shapes behave like [Tape].
func Saturate(x, drive float64, s Shape) float64 {
	x *= drive

	switch s {
	case Tube:
		if x >= 0 {
			return math.Tanh(x)
		}
		return x / (1 + math.Abs(x))
	case Fuzz:
		if x > 1 {
			return 1
		}
		if x < -1 {
			return -1
		}
		return x
	default:
		return math.Tanh(x)
	}
}

// Curve selects a distortion transfer function.
type Curve int

const (
	// CurveTanh is tanh soft clipping.
	CurveTanh Curve = iota
	// CurveAtan is (2/π)·atan(x), a harder knee that never reaches ±1.
	CurveAtan
	// CurveCubic is x - x³/3 inside ±1.5 and ±1 outside.
	CurveCubic

	curveCount
)

var curveNames = [curveCount]string{"tanh", "atan", "cubic"}

// String returns the lower-case curve name.
func (c Curve) String() string {
	if c >= 0 && c < curveCount {
		return curveNames[c]
	}
	return fmt.Sprintf("Curve(%d)", c)
}

// Valid reports whether c is a known curve.
func (c Curve) Valid() bool { return c >= 0 && c < curveCount }

const twoOverPi = 2 / math.Pi

// Waveshape evaluates curve c at x. Unknown curves behave like [CurveTanh].
func Waveshape(c Curve, x float64) float64 {
	switch c {
	case CurveAtan:
		return twoOverPi * math.Atan(x)
	case CurveCubic:
		if x > -1.5 && x < 1.5 {
			return x - x*x*x/3
		}
		if x > 0 {
			return 1
		}
		return -1
	default:
		return math.Tanh(x)
	}
}
