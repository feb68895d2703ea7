package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/saturation"
	"github.com/cwbudde/algo-master/internal/testutil"
)

type frameProcessor interface {
	ProcessFrame(frame []float64)
}

func run(p frameProcessor, in []float64) []float64 {
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
		"eq":         func(sr float64, ch int) error { _, err := NewParametricEQ(sr, ch); return err },
		"saturation": func(sr float64, ch int) error { _, err := NewSaturation(sr, ch); return err },
		"distortion": func(sr float64, ch int) error { _, err := NewDistortion(sr, ch); return err },
		"crusher":    func(sr float64, ch int) error { _, err := NewBitCrusher(sr, ch); return err },
		"dither":     func(sr float64, ch int) error { _, err := NewDither(sr, ch); return err },
		"cab":        func(sr float64, ch int) error { _, err := NewCabSim(sr, ch); return err },
	}
	for name, ctor := range ctors {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if err := ctor(48000, 2); err != nil {
				t.Fatalf("valid arguments: %v", err)
			}
			if ctor(0, 2) == nil || ctor(math.Inf(1), 2) == nil || ctor(48000, 0) == nil {
				t.Fatal("invalid arguments accepted")
			}
		})
	}
}

func TestParametricEQFlatIsTransparent(t *testing.T) {
	eq, _ := NewParametricEQ(48000, 1)
	in := testutil.DeterministicNoise(7, 0.5, 2048)
	testutil.RequireSliceNearlyEqual(t, run(eq, in), in, 1e-12)
}

func TestParametricEQBands(t *testing.T) {
	eq, _ := NewParametricEQ(48000, 2)
	eq.SetMid(1000, 6, 1)
	if got := eq.MagnitudeDB(1000); math.Abs(got-6) > 0.1 {
		t.Fatalf("mid response = %v dB", got)
	}

	eq.SetLow(100, -12)
	if got := eq.MagnitudeDB(20); got > -10 {
		t.Fatalf("low shelf response at 20 Hz = %v dB", got)
	}
	eq.SetHigh(5000, 9)
	if got := eq.MagnitudeDB(20000); got < 7 {
		t.Fatalf("high shelf response at 20 kHz = %v dB", got)
	}

	if f, g, q := eq.Mid(); f != 1000 || g != 6 || q != 1 {
		t.Fatalf("Mid() = %v %v %v", f, g, q)
	}
	eq.SetMid(1000, -3, 1)
	if _, g, _ := eq.Mid(); g != -3 {
		t.Fatalf("gain-only update: %v", g)
	}
}

func TestSaturationShapes(t *testing.T) {
	s, _ := NewSaturation(48000, 1)
	if s.Shape() != saturation.Tube || s.Drive() != 0 || s.Mix() != 1 {
		t.Fatalf("defaults: %v %v %v", s.Shape(), s.Drive(), s.Mix())
	}

	out := run(s, []float64{0.5, -0.5})
	if math.Abs(out[0]-math.Tanh(0.5)) > 1e-15 || math.Abs(out[1]+0.5/1.5) > 1e-15 {
		t.Fatalf("tube = %v", out)
	}

	s.SetShape(saturation.Fuzz)
	s.SetDrive(10)
	if got := run(s, []float64{0.5})[0]; got != 1 {
		t.Fatalf("fuzz = %v, want 1", got)
	}

	s.SetShape(saturation.Tape)
	s.SetDrive(0)
	s.SetOutputGain(6)
	want := math.Tanh(0.5) * core.DBToLinear(6)
	if got := run(s, []float64{0.5})[0]; math.Abs(got-want) > 1e-12 {
		t.Fatalf("tape with gain = %v, want %v", got, want)
	}

	s.SetMix(0)
	if got := run(s, []float64{0.5})[0]; got != 0.5 {
		t.Fatalf("dry = %v", got)
	}

	s.SetDrive(50)
	s.SetOutputGain(-40)
	s.SetShape(saturation.Shape(9))
	if s.Drive() != 10 || s.OutputGain() != -12 || s.Shape() != saturation.Tube {
		t.Fatalf("clamping: %v %v %v", s.Drive(), s.OutputGain(), s.Shape())
	}
}

func TestDistortionOversampling(t *testing.T) {
	d, _ := NewDistortion(48000, 1)
	out := run(d, []float64{0.5, 0.5})

	first := 0.5 * (math.Tanh(0.5) + math.Tanh(0.25))
	if math.Abs(out[0]-first) > 1e-15 {
		t.Fatalf("first sample = %v, want %v", out[0], first)
	}
	if math.Abs(out[1]-math.Tanh(0.5)) > 1e-15 {
		t.Fatalf("steady sample = %v, want %v", out[1], math.Tanh(0.5))
	}
}

func TestDistortionControls(t *testing.T) {
	d, _ := NewDistortion(48000, 1)
	d.SetWet(0)
	d.SetOutputGain(6)
	in := testutil.DeterministicSine(440, 48000, 0.5, 256)
	out := run(d, in)
	g := core.DBToLinear(6)
	for i := range in {
		if math.Abs(out[i]-in[i]*g) > 1e-12 {
			t.Fatalf("dry path at %d: %v, want %v", i, out[i], in[i]*g)
		}
	}

	d.SetDrive(0)
	d.SetCurve(saturation.Curve(-1))
	if d.Drive() != 1 || d.Curve() != saturation.CurveTanh {
		t.Fatalf("clamping: %v %v", d.Drive(), d.Curve())
	}

	d.SetWet(1)
	d.SetOutputGain(0)
	d.SetDrive(100)
	d.SetCurve(saturation.CurveAtan)
	d.Reset()
	for _, v := range run(d, testutil.DeterministicSine(440, 48000, 1, 1024)) {
		if math.Abs(v) > 1 {
			t.Fatalf("atan output %v exceeds 1", v)
		}
	}
}

func TestBitCrusherQuantises(t *testing.T) {
	bc, _ := NewBitCrusher(48000, 1)
	bc.SetBits(1)
	out := run(bc, []float64{0.3, -0.2, 0.8})
	want := []float64{0.5, 0, 1}
	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestBitCrusherSampleAndHold(t *testing.T) {
	bc, _ := NewBitCrusher(48000, 1)
	bc.SetBits(16)
	bc.SetNormFreq(0.25)

	in := make([]float64, 12)
	for i := range in {
		in[i] = float64(i+1) / 16
	}
	out := run(bc, in)
	want := []float64{0, 0, 0, in[3], in[3], in[3], in[3], in[7], in[7], in[7], in[7], in[11]}
	testutil.RequireSliceNearlyEqual(t, out, want, 0)

	bc.Reset()
	bc.SetMix(0)
	testutil.RequireSliceNearlyEqual(t, run(bc, in), in, 0)
}

func TestBitCrusherClamps(t *testing.T) {
	bc, _ := NewBitCrusher(48000, 1)
	bc.SetBits(40)
	bc.SetNormFreq(0)
	bc.SetMix(math.NaN())
	if bc.Bits() != 16 || bc.NormFreq() != 0.01 || bc.Mix() != 1 {
		t.Fatalf("clamping: %v %v %v", bc.Bits(), bc.NormFreq(), bc.Mix())
	}
}

func TestDitherChannelsAreDecorrelated(t *testing.T) {
	d, _ := NewDither(48000, 2)
	d.SetBitDepth(8)
	if d.BitDepth() != 8 {
		t.Fatalf("bit depth = %d", d.BitDepth())
	}

	frame := make([]float64, 2)
	differ := false
	for range 256 {
		frame[0], frame[1] = 0, 0
		d.ProcessFrame(frame)
		if frame[0] != frame[1] {
			differ = true
		}
	}
	if !differ {
		t.Fatal("both channels produced the same dither sequence")
	}
}

func TestDitherIsDeterministic(t *testing.T) {
	a, _ := NewDither(48000, 1)
	b, _ := NewDither(48000, 1)
	a.SetBitDepth(12)
	b.SetBitDepth(12)
	a.SetShaping(true)
	b.SetShaping(true)

	in := testutil.DeterministicSine(1000, 48000, 0.5, 1024)
	testutil.RequireSliceNearlyEqual(t, run(a, in), run(b, in), 0)

	a.Reset()
	first := run(a, in)
	a.Reset()
	testutil.RequireSliceNearlyEqual(t, run(a, in), first, 0)
}

func TestDitherClampsBitDepth(t *testing.T) {
	d, _ := NewDither(48000, 1)
	d.SetBitDepth(2)
	if d.BitDepth() != 8 {
		t.Fatalf("low clamp = %d", d.BitDepth())
	}
	d.SetBitDepth(64)
	if d.BitDepth() != 32 {
		t.Fatalf("high clamp = %d", d.BitDepth())
	}
}

func TestCabSimBuiltinResponse(t *testing.T) {
	c, _ := NewCabSim(48000, 1)
	if c.IR() != BuiltinIR || c.Latency() != CabSimPartition {
		t.Fatalf("IR %d latency %d", c.IR(), c.Latency())
	}

	ir := BuiltinCabinetIR(48000)
	out := run(c, testutil.Impulse(CabSimPartition+len(ir)+64, 0))
	testutil.RequireSliceNearlyEqual(t, out[:CabSimPartition], make([]float64, CabSimPartition), 1e-12)
	testutil.RequireSliceNearlyEqual(t, out[CabSimPartition:CabSimPartition+len(ir)], ir, 1e-9)
}

func TestCabSimDryPathIsAligned(t *testing.T) {
	c, _ := NewCabSim(48000, 1)
	c.SetMix(0)
	in := testutil.DeterministicNoise(3, 0.5, 1024)
	out := run(c, in)
	testutil.RequireSliceNearlyEqual(t, out[CabSimPartition:], in[:len(in)-CabSimPartition], 0)
}

func TestCabSimTable(t *testing.T) {
	c, err := NewCabSim(48000, 2, []float64{0.5})
	if err != nil {
		t.Fatal(err)
	}
	if c.IRCount() != 1 {
		t.Fatalf("IRCount = %d", c.IRCount())
	}
	c.SetIR(0)
	if c.IR() != 0 {
		t.Fatalf("IR = %d", c.IR())
	}

	in := testutil.DeterministicNoise(5, 0.5, 512)
	out := run(c, in)
	for i := CabSimPartition; i < len(in); i++ {
		if want := 0.5 * in[i-CabSimPartition]; math.Abs(out[i]-want) > 1e-9 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want)
		}
	}

	c.SetIR(7)
	if c.IR() != BuiltinIR {
		t.Fatalf("unknown index selected %d", c.IR())
	}

	if _, err := NewCabSim(48000, 1, nil); err == nil {
		t.Fatal("empty impulse response accepted")
	}
}
