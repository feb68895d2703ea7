package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-master/internal/testutil"
)

func TestMultibandQuietSignalIsAllpass(t *testing.T) {
	m, err := NewMultiband(48000, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Far below every threshold the band sum is an all-pass: the impulse
	// response carries unit energy.
	const scale = 1e-4
	frame := make([]float64, 1)
	energy := 0.0
	for i := range 1 << 16 {
		frame[0] = 0
		if i == 0 {
			frame[0] = scale
		}
		m.ProcessFrame(frame, nil)
		energy += (frame[0] / scale) * (frame[0] / scale)
	}
	if math.Abs(energy-1) > 1e-3 {
		t.Fatalf("impulse energy = %v, want 1", energy)
	}
}

func TestMultibandCompressesOnlyLoudBand(t *testing.T) {
	m, _ := NewMultiband(48000, 1)
	m.Band(BandLow).SetThreshold(-60)
	m.Band(BandHigh).SetThreshold(0)

	in := testutil.DeterministicSine(60, 48000, 0.5, 48000)
	frame := make([]float64, 1)
	for _, v := range in {
		frame[0] = v
		m.ProcessFrame(frame, nil)
	}
	if m.BandReduction(BandLow) < 10 {
		t.Fatalf("low band reduction = %v", m.BandReduction(BandLow))
	}
	if m.BandReduction(BandHigh) > 0.01 {
		t.Fatalf("high band reduction = %v", m.BandReduction(BandHigh))
	}
	if m.GainReduction() != m.BandReduction(BandLow) {
		t.Fatalf("GainReduction = %v", m.GainReduction())
	}
}

func TestMultibandSettings(t *testing.T) {
	m, _ := NewMultiband(48000, 2)
	lo, hi := m.Crossovers()
	if lo != 150 || hi != 2500 {
		t.Fatalf("default crossovers %v/%v", lo, hi)
	}
	m.SetCrossovers(300, 4000)
	if lo, hi = m.Crossovers(); lo != 300 || hi != 4000 {
		t.Fatalf("crossovers %v/%v", lo, hi)
	}
	m.SetBandMakeup(BandMid, 3)
	if m.BandMakeup(BandMid) != 3 {
		t.Fatalf("BandMakeup = %v", m.BandMakeup(BandMid))
	}
}

func TestMultibandLinked(t *testing.T) {
	m, _ := NewMultiband(48000, 2)
	m.SetLinked(true)
	m.Band(BandMid).SetThreshold(-40)

	in := testutil.DeterministicSine(1000, 48000, 0.5, 9600)
	frame := make([]float64, 2)
	for _, v := range in {
		frame[0], frame[1] = v, 0
		m.ProcessFrame(frame, nil)
	}
	if m.reduction[0][BandMid] != m.reduction[1][BandMid] {
		t.Fatalf("linked reductions differ: %v vs %v", m.reduction[0][BandMid], m.reduction[1][BandMid])
	}
	m.ResetBallistics()
	if m.GainReduction() != 0 {
		t.Fatal("ResetBallistics kept reduction")
	}
}
