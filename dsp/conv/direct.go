package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the constructors.
var (
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrInvalidPartition = errors.New("conv: partition size must be a power of two >= 2")
)

// Direct returns the full linear convolution of a and b, of length
// len(a)+len(b)-1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	out := make([]float64, len(a)+len(b)-1)
	temp := make([]float64, len(b))
	for i, v := range a {
		if v == 0 {
			continue
		}
		vecmath.ScaleBlock(temp, b, v)
		vecmath.AddBlockInPlace(out[i:i+len(b)], temp)
	}
	return out, nil
}
