package param

import (
	"math"
	"testing"
)

func TestDescriptorClamp(t *testing.T) {
	t.Parallel()

	ratio := Descriptor{Name: "ratio", Default: 4, Min: 1, Max: 20}
	mode := Descriptor{Name: "mode", Default: 0, Min: 0, Max: 3, Stepped: true}

	tests := []struct {
		name string
		desc Descriptor
		in   float64
		want float64
	}{
		{"inside", ratio, 8, 8},
		{"below", ratio, 0.5, 1},
		{"above", ratio, 100, 20},
		{"NaN takes default", ratio, math.NaN(), 4},
		{"+Inf clamps", ratio, math.Inf(1), 20},
		{"stepped rounds", mode, 1.6, 2},
		{"stepped clamps then rounds", mode, 7.2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.desc.Clamp(tt.in); got != tt.want {
				t.Fatalf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	got := Defaults([]Descriptor{{Name: "a", Default: 1}, {Name: "b", Default: -2}})
	if len(got) != 2 || got["a"] != 1 || got["b"] != -2 {
		t.Fatalf("Defaults() = %v", got)
	}
}
