package modulation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-master/dsp/lfo"
	"github.com/cwbudde/algo-master/internal/testutil"
)

type frameProcessor interface {
	ProcessFrame(frame []float64)
}

func runMono(p frameProcessor, in []float64) []float64 {
	out := make([]float64, len(in))
	frame := make([]float64, 1)
	for i, v := range in {
		frame[0] = v
		p.ProcessFrame(frame)
		out[i] = frame[0]
	}
	return out
}

func TestConstructorsValidate(t *testing.T) {
	ctors := map[string]func(float64, int) error{
		"chorus":  func(sr float64, ch int) error { _, err := NewChorus(sr, ch); return err },
		"phaser":  func(sr float64, ch int) error { _, err := NewPhaser(sr, ch); return err },
		"tremolo": func(sr float64, ch int) error { _, err := NewTremolo(sr, ch); return err },
		"autowah": func(sr float64, ch int) error { _, err := NewAutoWah(sr, ch); return err },
		"delay":   func(sr float64, ch int) error { _, err := NewFeedbackDelay(sr, ch); return err },
	}
	for name, ctor := range ctors {
		t.Run(name, func(t *testing.T) {
			if err := ctor(48000, 2); err != nil {
				t.Fatalf("valid config: %v", err)
			}
			if err := ctor(0, 2); err == nil {
				t.Fatal("expected error for zero sample rate")
			}
			if err := ctor(48000, 0); err == nil {
				t.Fatal("expected error for zero channels")
			}
			if err := ctor(math.NaN(), 1); err == nil {
				t.Fatal("expected error for NaN sample rate")
			}
		})
	}
}

func TestChorusDryAtZeroWet(t *testing.T) {
	c, _ := NewChorus(48000, 1)
	c.SetWet(0)
	in := testutil.DeterministicNoise(1, 0.5, 4096)
	testutil.RequireSliceNearlyEqual(t, runMono(c, in), in, 0)
}

func TestChorusDelaysSignal(t *testing.T) {
	c, _ := NewChorus(48000, 1)
	c.SetWet(1)
	c.SetDepth(0)
	c.SetDelay(0.01)
	out := runMono(c, testutil.Impulse(1000, 0))
	for i, v := range out {
		want := 0.0
		if i == 480 {
			want = 1
		}
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestChorusSettersClamp(t *testing.T) {
	c, _ := NewChorus(48000, 2)
	c.SetDelay(1)
	c.SetDepth(-1)
	c.SetFeedback(2)
	c.SetWet(math.NaN())
	if c.Delay() != maxChorusDelay || c.Depth() != 0 || c.Feedback() != maxChorusFeedback || c.Wet() != defaultChorusWet {
		t.Fatalf("clamped values: %v %v %v %v", c.Delay(), c.Depth(), c.Feedback(), c.Wet())
	}
}

func TestPhaserPreservesEnergyWhenFullyWet(t *testing.T) {
	p, _ := NewPhaser(48000, 1)
	p.SetWet(1)
	p.SetRate(0)
	in := testutil.DeterministicSine(440, 48000, 0.5, 48000)
	out := runMono(p, in)
	ratio := testutil.RMS(out[4800:]) / testutil.RMS(in[4800:])
	if math.Abs(ratio-1) > 0.01 {
		t.Fatalf("all-pass cascade changed RMS by %v", ratio)
	}
}

func TestPhaserCreatesNotch(t *testing.T) {
	p, _ := NewPhaser(48000, 1)
	p.SetRate(0)
	p.SetOctaves(0)
	p.SetStages(2)
	p.SetWet(0.5)
	// Two first-order stages give 180 degrees at the break frequency, so a
	// 50/50 mix cancels there.
	in := testutil.DeterministicSine(1000, 48000, 1, 48000)
	out := runMono(p, in)
	if rms := testutil.RMS(out[24000:]); rms > 1e-3 {
		t.Fatalf("notch RMS = %v", rms)
	}
}

func TestPhaserStagesClamp(t *testing.T) {
	p, _ := NewPhaser(48000, 1)
	p.SetStages(0)
	if p.Stages() != 1 {
		t.Fatalf("Stages = %d", p.Stages())
	}
	p.SetStages(99)
	if p.Stages() != MaxPhaserStages {
		t.Fatalf("Stages = %d", p.Stages())
	}
}

func TestTremoloGainRange(t *testing.T) {
	tr, _ := NewTremolo(48000, 1)
	tr.SetDepth(1)
	tr.SetWaveform(lfo.Square)
	out := runMono(tr, testutil.DC(1, 48000))
	// Square LFO starts high: the first half cycle is fully attenuated.
	if out[0] != 0 {
		t.Fatalf("out[0] = %v, want 0", out[0])
	}
	if out[9000] != 1 {
		t.Fatalf("out[9000] = %v, want 1", out[9000])
	}
}

func TestTremoloSpread(t *testing.T) {
	tr, _ := NewTremolo(48000, 2)
	tr.SetDepth(1)
	tr.SetSpread(1)
	tr.SetWaveform(lfo.Square)
	frame := []float64{1, 1}
	tr.ProcessFrame(frame)
	if frame[0] != 0 || frame[1] != 1 {
		t.Fatalf("spread frame = %v, want [0 1]", frame)
	}
}

func TestAutoWahOpensWithLevel(t *testing.T) {
	a, _ := NewAutoWah(48000, 1)
	a.SetSensitivity(1)
	runMono(a, testutil.DeterministicSine(300, 48000, 0.001, 4800))
	quiet := a.Centre()
	runMono(a, testutil.DeterministicSine(300, 48000, 0.8, 4800))
	loud := a.Centre()
	if !(loud > quiet) {
		t.Fatalf("centre quiet %v loud %v", quiet, loud)
	}
	if want := a.BaseFrequency() * math.Exp2(a.Octaves()); math.Abs(loud-want) > 1e-9 {
		t.Fatalf("fully open centre = %v, want %v", loud, want)
	}
}

func TestAutoWahBlockIndependent(t *testing.T) {
	in := testutil.DeterministicNoise(5, 0.5, 2000)
	a1, _ := NewAutoWah(48000, 1)
	a2, _ := NewAutoWah(48000, 1)
	out1 := runMono(a1, in)
	out2 := runMono(a2, in[:777])
	out2 = append(out2, runMono(a2, in[777:])...)
	testutil.RequireSliceNearlyEqual(t, out1, out2, 0)
}

func TestFeedbackDelayEchoes(t *testing.T) {
	d, _ := NewFeedbackDelay(48000, 1)
	d.SetDelay(0.01)
	d.SetFeedback(0.5)
	d.SetWet(1)
	out := runMono(d, testutil.Impulse(2000, 0))

	if out[0] != 0 {
		t.Fatalf("wet output leaked dry impulse: %v", out[0])
	}
	if math.Abs(out[480]-1) > 1e-12 {
		t.Fatalf("first echo = %v", out[480])
	}
	if math.Abs(out[960]-0.5) > 1e-12 {
		t.Fatalf("second echo = %v", out[960])
	}
}

func TestFeedbackDelayReset(t *testing.T) {
	d, _ := NewFeedbackDelay(48000, 2)
	frame := []float64{1, 1}
	d.ProcessFrame(frame)
	d.Reset()
	for range 48000 {
		frame[0], frame[1] = 0, 0
		d.ProcessFrame(frame)
		if frame[0] != 0 || frame[1] != 0 {
			t.Fatal("delay memory survived Reset")
		}
	}
}
