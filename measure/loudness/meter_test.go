package loudness

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-master/internal/testutil"
)

// A full-scale 1 kHz sine reads about -3.26 LUFS through the cookbook
// K-weighting approximation.
const fullScaleSineLUFS = -3.263

func newTestMeter(t *testing.T, channels int) *Meter {
	t.Helper()

	m, err := NewMeter(WithSampleRate(48000), WithChannels(channels))
	if err != nil {
		t.Fatal(err)
	}

	return m
}

func feed(m *Meter, sig []float64) {
	for _, s := range sig {
		m.ProcessFrame([]float64{s})
	}
}

func TestLoudnessSine(t *testing.T) {
	t.Parallel()

	m := newTestMeter(t, 1)
	feed(m, testutil.DeterministicSine(1000, 48000, 1, 4*48000))

	for name, got := range map[string]float64{
		"momentary":     m.Momentary(),
		"short-term":    m.ShortTerm(),
		"integrated":    m.Integrated(),
		"momentary max": m.MomentaryMax(),
		"short max":     m.ShortTermMax(),
	} {
		if math.Abs(got-fullScaleSineLUFS) > 0.05 {
			t.Errorf("%s = %v, want %v", name, got, fullScaleSineLUFS)
		}
	}

	if p := m.Peaks()[0]; p < 0.999 || p > 1 {
		t.Errorf("peak = %v", p)
	}
}

func TestLoudnessStereoSumsChannels(t *testing.T) {
	t.Parallel()

	m := newTestMeter(t, 2)
	sig := testutil.DeterministicSine(1000, 48000, 1, 48000)
	m.ProcessChannels([][]float64{sig, sig})

	want := fullScaleSineLUFS + 10*math.Log10(2)
	if got := m.Momentary(); math.Abs(got-want) > 0.05 {
		t.Fatalf("stereo momentary = %v, want %v", got, want)
	}
}

func TestLoudnessRelativeGate(t *testing.T) {
	t.Parallel()

	for _, quiet := range []float64{0.1, 0.01} {
		m := newTestMeter(t, 1)
		feed(m, testutil.DeterministicSine(1000, 48000, 1, 4*48000))
		feed(m, testutil.DeterministicSine(1000, 48000, quiet, 4*48000))

		if got := m.Integrated(); math.Abs(got-fullScaleSineLUFS) > 0.3 {
			t.Errorf("quiet=%v: integrated = %v, want gated near %v", quiet, got, fullScaleSineLUFS)
		}
		if got := m.MomentaryMax(); math.Abs(got-fullScaleSineLUFS) > 0.05 {
			t.Errorf("quiet=%v: momentary max = %v", quiet, got)
		}
	}
}

func TestLoudnessSilence(t *testing.T) {
	t.Parallel()

	m := newTestMeter(t, 2)
	m.ProcessBlock(make([]float64, 2*48000))

	if !math.IsInf(m.Integrated(), -1) {
		t.Errorf("integrated of silence = %v, want -Inf", m.Integrated())
	}
	if m.Momentary() != Floor || m.ShortTermMax() != Floor {
		t.Errorf("momentary %v short max %v, want floor", m.Momentary(), m.ShortTermMax())
	}
}

func TestLoudnessIntegrationPauseAndReset(t *testing.T) {
	t.Parallel()

	m := newTestMeter(t, 1)
	m.StopIntegration()
	feed(m, testutil.DeterministicSine(1000, 48000, 1, 48000))
	if !math.IsInf(m.Integrated(), -1) {
		t.Fatalf("paused integration produced %v", m.Integrated())
	}

	m.StartIntegration()
	feed(m, testutil.DeterministicSine(1000, 48000, 1, 48000))
	if math.IsInf(m.Integrated(), -1) {
		t.Fatal("resumed integration produced no blocks")
	}

	m.Reset()
	r := m.Reading()
	if r.Momentary != Floor || r.Integrated != Floor || r.Peaks[0] != 0 {
		t.Fatalf("after reset: %+v", r)
	}
}

func TestMeterOptions(t *testing.T) {
	t.Parallel()

	m, err := NewMeter(WithSampleRate(math.Inf(1)), WithChannels(0))
	if err != nil {
		t.Fatal(err)
	}
	if m.Channels() != 2 || m.sampleRate != 48000 {
		t.Fatalf("invalid options changed the defaults: %d ch, %v Hz", m.Channels(), m.sampleRate)
	}

	paused, err := NewMeter(WithChannels(1), WithIntegrationPaused())
	if err != nil {
		t.Fatal(err)
	}
	feed(paused, testutil.DeterministicSine(1000, 48000, 1, 48000))
	if !math.IsInf(paused.Integrated(), -1) {
		t.Fatalf("paused meter integrated %v", paused.Integrated())
	}
}
