package dither

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-master/internal/testutil"
)

func TestNewQuantizerDefaults(t *testing.T) {
	q, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}
	if q.BitDepth() != 24 || q.DitherType() != DitherTriangular || q.Shaping() {
		t.Fatalf("defaults: %d %v %v", q.BitDepth(), q.DitherType(), q.Shaping())
	}
	if q.LSB() != math.Exp2(-23) {
		t.Fatalf("LSB = %v", q.LSB())
	}
}

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"bit depth too low", WithBitDepth(4)},
		{"bit depth too high", WithBitDepth(33)},
		{"bad dither type", WithDitherType(DitherType(9))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.opt); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestQuantizerOutputOnGrid(t *testing.T) {
	q, _ := NewQuantizer(WithBitDepth(8))
	in := testutil.DeterministicSine(440, 48000, 0.9, 2000)
	for i, v := range in {
		y := q.ProcessSample(v)
		steps := y / q.LSB()
		if steps != math.Round(steps) {
			t.Fatalf("sample %d: %v is not a multiple of the LSB", i, y)
		}
		if math.Abs(y-v) > 2*q.LSB() {
			t.Fatalf("sample %d: error %v exceeds 2 LSB", i, y-v)
		}
	}
}

func TestQuantizerLimits(t *testing.T) {
	q, _ := NewQuantizer(WithBitDepth(8), WithDitherType(DitherNone))
	if got := q.ProcessSample(2); got != 127.0/128 {
		t.Fatalf("positive clip = %v", got)
	}
	if got := q.ProcessSample(-2); got != -1 {
		t.Fatalf("negative clip = %v", got)
	}
	if got := q.ProcessSample(math.NaN()); got != 0 {
		t.Fatalf("NaN = %v", got)
	}
}

func TestQuantizerDeterministic(t *testing.T) {
	in := testutil.DeterministicNoise(1, 0.5, 1000)
	a, _ := NewQuantizer(WithBitDepth(12))
	b, _ := NewQuantizer(WithBitDepth(12))
	outA := append([]float64(nil), in...)
	outB := append([]float64(nil), in...)
	a.ProcessInPlace(outA)
	b.ProcessInPlace(outB)
	testutil.RequireSliceNearlyEqual(t, outA, outB, 0)

	a.Reset()
	again := append([]float64(nil), in...)
	a.ProcessInPlace(again)
	testutil.RequireSliceNearlyEqual(t, again, outA, 0)
}

func TestQuantizerTPDFIsUnbiased(t *testing.T) {
	q, _ := NewQuantizer(WithBitDepth(8))
	// A constant a quarter LSB above a grid point must average out to itself.
	x := 10.25 / 128
	sum := 0.0
	const n = 200000
	for range n {
		sum += q.ProcessSample(x)
	}
	if mean := sum / n; math.Abs(mean-x) > 0.01/128 {
		t.Fatalf("mean = %v, want %v", mean, x)
	}
}

func TestShapingMovesNoiseUp(t *testing.T) {
	in := testutil.DeterministicSine(100, 48000, 0.5, 1<<14)

	lowNoise := func(shaping bool) float64 {
		q, _ := NewQuantizer(WithBitDepth(8), WithShaping(shaping))
		// Error filtered by a crude one-pole low-pass: shaped noise has less
		// energy at low frequencies.
		lp, acc := 0.0, 0.0
		for _, v := range in {
			e := q.ProcessSample(v) - v
			lp += 0.01 * (e - lp)
			acc += lp * lp
		}
		return acc
	}
	if flat, shaped := lowNoise(false), lowNoise(true); !(shaped < flat) {
		t.Fatalf("low-frequency noise: shaped %v >= flat %v", shaped, flat)
	}
}

func TestSetBitDepth(t *testing.T) {
	q, _ := NewQuantizer()
	if err := q.SetBitDepth(16); err != nil {
		t.Fatal(err)
	}
	if q.LSB() != 1.0/32768 {
		t.Fatalf("LSB = %v", q.LSB())
	}
	if err := q.SetBitDepth(1); err == nil {
		t.Fatal("expected error")
	}
}

func TestDitherTypeString(t *testing.T) {
	if DitherTriangular.String() != "Triangular" || DitherType(7).String() != "DitherType(7)" {
		t.Fatal("unexpected names")
	}
}
