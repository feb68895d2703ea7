//go:build !fastmath

package dynamics

import "math"

// levelDB converts a linear magnitude to dB after adding the detector floor.
func levelDB(x float64) float64 {
	return 20 * math.Log10(math.Abs(x)+levelFloor)
}

// gainFromDB converts a dB gain to linear amplitude.
func gainFromDB(db float64) float64 {
	return math.Pow(10, db/20)
}
