//go:build fastmath

package dynamics

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

const (
	// dbPerNeper converts natural log to 20*log10.
	dbPerNeper = 20 / math.Ln10
	// neperPerDB converts dB to the natural exponent.
	neperPerDB = math.Ln10 / 20
)

// levelDB converts a linear magnitude to dB after adding the detector floor.
func levelDB(x float64) float64 {
	return dbPerNeper * approx.FastLog(math.Abs(x)+levelFloor)
}

// gainFromDB converts a dB gain to linear amplitude.
func gainFromDB(db float64) float64 {
	return approx.FastExp(db * neperPerDB)
}
