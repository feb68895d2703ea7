package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestDBPowerConversions(t *testing.T) {
	// 3 dB power ~ 2x linear power
	p := DBPowerToLinear(3)
	if !NearlyEqual(p, 2.0, 0.01) {
		t.Fatalf("DBPowerToLinear(3) = %v, want ~2.0", p)
	}

	// Round-trip
	db := LinearPowerToDB(p)
	if !NearlyEqual(db, 3.0, 1e-10) {
		t.Fatalf("LinearPowerToDB(DBPowerToLinear(3)) = %v, want 3", db)
	}

	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}

func TestDBRoundTrip(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{1e-6, 0.001, 0.25, 0.5, 1, 2, 10} {
		got := DBToLinear(LinearToDB(x))
		if !NearlyEqual(got, x, 1e-12) {
			t.Fatalf("DBToLinear(LinearToDB(%v)) = %v", x, got)
		}
	}

	for _, db := range []float64{-120, -24, -6, 0, 3, 12} {
		want := math.Pow(10, db/20)
		if got := DBToLinear(db); math.Abs(got-want) > 1e-10 {
			t.Fatalf("DBToLinear(%v) = %v, want %v", db, got, want)
		}
	}
}

func TestLevelToDB(t *testing.T) {
	t.Parallel()

	if got := LevelToDB(0); !IsFinite(got) || got > -119 {
		t.Fatalf("LevelToDB(0) = %v, want finite floor near -120", got)
	}
	if got, want := LevelToDB(-0.5), LevelToDB(0.5); got != want {
		t.Fatalf("LevelToDB is not sign-agnostic: %v vs %v", got, want)
	}
}

func TestTimeCoeff(t *testing.T) {
	t.Parallel()

	got := TimeCoeff(0.01, 48000)
	want := math.Exp(-1 / (0.01 * 48000))
	if got != want {
		t.Fatalf("TimeCoeff(0.01) = %v, want %v", got, want)
	}

	floored := TimeCoeff(0, 48000)
	if floored != TimeCoeff(MinTimeConstant, 48000) {
		t.Fatalf("TimeCoeff(0) = %v, want floor coefficient", floored)
	}
	if !IsFinite(TimeCoeff(math.NaN(), 48000)) {
		t.Fatal("TimeCoeff(NaN) must be finite")
	}
}

func TestIsFinite(t *testing.T) {
	t.Parallel()

	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("non-finite values reported finite")
	}
	if !IsFinite(0) || !IsFinite(-1e300) {
		t.Fatal("finite values reported non-finite")
	}
}
