package effectchain

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-master/dsp/param"
)

const (
	stubAdd = iota
	stubMul
	stubPoison
)

var stubParams = []param.Descriptor{
	{Name: "add", Default: 0, Min: -10, Max: 10},
	{Name: "mul", Default: 1, Min: -10, Max: 10},
	{Name: "poison", Default: 0, Min: 0, Max: 1, Stepped: true},
}

// stubProc computes x*mul + add per sample. With follow set it reads the
// sidechain instead of the frame whenever one is supplied.
type stubProc struct {
	add    float64
	mul    float64
	poison bool
	follow bool

	frames     int
	resets     int
	ballistics int
}

func (s *stubProc) Apply(v []float64, changed param.Mask) {
	if changed.Has(stubAdd) {
		s.add = v[stubAdd]
	}
	if changed.Has(stubMul) {
		s.mul = v[stubMul]
	}
	if changed.Has(stubPoison) {
		s.poison = flag(v[stubPoison])
	}
}

func (s *stubProc) Process(frame, sidechain []float64) {
	s.frames++
	for ch := range frame {
		x := frame[ch]
		if s.follow && sidechain != nil {
			x = sidechain[ch]
		}
		frame[ch] = x*s.mul + s.add
		if s.poison {
			frame[ch] = math.NaN()
		}
	}
}

func (s *stubProc) Reset()           { s.resets++ }
func (s *stubProc) ResetBallistics() { s.ballistics++ }

var errStubFactory = errors.New("stub factory failure")

// stubRegistry registers COMPRESSOR as a plain stub, LIMITER as a stub
// that follows its sidechain and CHORUS as a type whose factory fails.
func stubRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(TypeCompressor, stubParams, func(Context) (Processor, error) {
		return &stubProc{}, nil
	})
	r.MustRegister(TypeLimiter, stubParams, func(Context) (Processor, error) {
		return &stubProc{follow: true}, nil
	})
	r.MustRegister(TypeChorus, nil, func(Context) (Processor, error) {
		return nil, errStubFactory
	})
	return r
}

func testContext() Context {
	return Context{SampleRate: 48000, Channels: 2, BlockSize: 16}
}

func newStubChain(t *testing.T) *Chain {
	t.Helper()

	c, err := New(testContext(), stubRegistry())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return c
}

func stub(id string, params map[string]float64) Module {
	return Module{ID: id, Type: TypeCompressor, Parameters: params}
}

func mustUpdate(t *testing.T, c *Chain, rack Rack) Report {
	t.Helper()

	report, err := c.Update(rack)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	return report
}

func stubOf(t *testing.T, c *Chain, id string) *stubProc {
	t.Helper()

	n, ok := c.Node(id)
	if !ok {
		t.Fatalf("node %q not found", id)
	}

	return n.Processor().(*stubProc)
}

// constBlock returns a stereo block of n frames holding v.
func constBlock(v float64, n int) [][]float64 {
	block := [][]float64{make([]float64, n), make([]float64, n)}
	for ch := range block {
		for i := range block[ch] {
			block[ch][i] = v
		}
	}
	return block
}

// runConst processes a constant block and returns the last left sample.
func runConst(c *Chain, v float64, n int, external External) float64 {
	block := constBlock(v, n)
	c.Process(block, external)
	return block[0][n-1]
}
