package param

import "math"

// Descriptor declares one settable parameter of a module type.
type Descriptor struct {
	Name    string  `json:"name"`
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`

	// Stepped parameters select a mode or count. They are rounded to the
	// nearest integer and applied without smoothing.
	Stepped bool `json:"stepped,omitempty"`
}

// Clamp limits v to [Min, Max] and rounds stepped values. NaN maps to the
// default.
func (d Descriptor) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		v = d.Default
	}

	lo, hi := d.Min, d.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}

	if d.Stepped {
		v = math.Round(v)
	}

	return v
}

// Defaults returns name→default for descs.
func Defaults(descs []Descriptor) map[string]float64 {
	out := make(map[string]float64, len(descs))
	for _, d := range descs {
		out[d.Name] = d.Default
	}
	return out
}
