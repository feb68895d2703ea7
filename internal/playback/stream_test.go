package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/engine"
)

// rampSource emits frames 0, 1, 2, ... scaled by step, per channel offset.
type rampSource struct {
	frames int
	step   float64
	pos    int
}

func (r *rampSource) Next(block [][]float64) int {
	n := min(len(block[0]), r.frames-r.pos)
	for i := 0; i < n; i++ {
		for ch := range block {
			block[ch][i] = float64(r.pos+i)*r.step + float64(ch)*0.5
		}
	}
	r.pos += n
	return max(n, 0)
}

func decode(b []byte) []float32 {
	out := make([]float32, len(b)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*bytesPerSample:]))
	}
	return out
}

func TestStreamInterleaves(t *testing.T) {
	t.Parallel()

	s := NewStream(&rampSource{frames: 5, step: 0.125}, 2, 2)

	all, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	got := decode(all)
	want := []float32{0, 0.5, 0.125, 0.625, 0.25, 0.75, 0.375, 0.875, 0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}

	if s.Frames() != 5 || !s.Finished() {
		t.Fatalf("frames = %d, finished = %v", s.Frames(), s.Finished())
	}
}

func TestStreamSmallReads(t *testing.T) {
	t.Parallel()

	s := NewStream(&rampSource{frames: 3, step: 0.25}, 1, 2)
	p := make([]byte, 3)

	var all []byte
	for {
		n, err := s.Read(p)
		all = append(all, p[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	got := decode(all)
	want := []float32{0, 0.25, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStreamClips(t *testing.T) {
	t.Parallel()

	s := NewStream(&rampSource{frames: 4, step: 1}, 1, 4)

	all, _ := io.ReadAll(s)
	got := decode(all)
	want := []float32{0, 1, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()

	log, _ := logtest.NewNullLogger()
	cfg := engine.DefaultConfig()
	cfg.BlockSize = 4

	eng, err := engine.New(cfg, engine.WithLogger(log))
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	return eng
}

func TestEngineSource(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	rack := effectchain.Rack{{
		ID:         "sat",
		Type:       effectchain.TypeSaturation,
		Parameters: map[string]float64{"outputGain": -6.020599913279624, "drive": 0, "mix": 0},
	}}
	if _, err := eng.UpdateRack(rack); err != nil {
		t.Fatalf("UpdateRack: %v", err)
	}

	input := [][]float64{{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, {0.25, 0.25, 0.25, 0.25, 0.25, 0.25}}
	src := NewEngineSource(eng, input)

	block := [][]float64{make([]float64, 4), make([]float64, 4)}
	if n := src.Next(block); n != 4 {
		t.Fatalf("first block = %d frames", n)
	}
	if n := src.Next(block); n != 2 {
		t.Fatalf("second block = %d frames", n)
	}
	if n := src.Next(block); n != 0 {
		t.Fatalf("exhausted source returned %d frames", n)
	}

	if eng.Position() != 6 {
		t.Fatalf("engine position = %d, want 6", eng.Position())
	}
	if input[0][0] != 0.5 {
		t.Fatal("source modified its input")
	}
}

func TestEngineSourceLoop(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	src := NewEngineSource(eng, [][]float64{{1, 2, 3}, {1, 2, 3}})
	src.Loop = true

	block := [][]float64{make([]float64, 2), make([]float64, 2)}
	want := []int{2, 1, 2, 1}
	for i, w := range want {
		if n := src.Next(block); n != w {
			t.Fatalf("call %d: %d frames, want %d", i, n, w)
		}
	}

	empty := NewEngineSource(eng, nil)
	empty.Loop = true
	if n := empty.Next(block); n != 0 {
		t.Fatalf("empty looping source returned %d frames", n)
	}
}
