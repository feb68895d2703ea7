package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Partitioned is a streaming uniformly partitioned overlap-save convolver.
type Partitioned struct {
	partSize int
	fftSize  int

	plan *algofft.Plan[complex128]

	// irSpectra[k] is the spectrum of IR partition k, zero-padded to fftSize.
	irSpectra [][]complex128

	// fdl is the frequency-domain delay line of input spectra; fdl[fdlPos]
	// holds the most recent one.
	fdl    [][]complex128
	fdlPos int

	window []complex128
	acc    []complex128

	prev   []float64
	input  []float64
	output []float64
	pos    int
}

// NewPartitioned returns a convolver for ir with partitions of partSize
// samples. partSize must be a power of two.
func NewPartitioned(ir []float64, partSize int) (*Partitioned, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyKernel
	}
	if partSize < 2 || partSize&(partSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPartition, partSize)
	}

	fftSize := 2 * partSize
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	parts := (len(ir) + partSize - 1) / partSize
	p := &Partitioned{
		partSize:  partSize,
		fftSize:   fftSize,
		plan:      plan,
		irSpectra: make([][]complex128, parts),
		fdl:       make([][]complex128, parts),
		window:    make([]complex128, fftSize),
		acc:       make([]complex128, fftSize),
		prev:      make([]float64, partSize),
		input:     make([]float64, partSize),
		output:    make([]float64, partSize),
	}

	padded := make([]complex128, fftSize)
	for k := range parts {
		for i := range padded {
			padded[i] = 0
		}
		seg := ir[k*partSize : min((k+1)*partSize, len(ir))]
		for i, v := range seg {
			padded[i] = complex(v, 0)
		}

		p.irSpectra[k] = make([]complex128, fftSize)
		if err := plan.Forward(p.irSpectra[k], padded); err != nil {
			return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
		}
		p.fdl[k] = make([]complex128, fftSize)
	}

	return p, nil
}

// Latency returns the output delay in samples.
func (p *Partitioned) Latency() int { return p.partSize }

// Partitions returns the number of IR partitions.
func (p *Partitioned) Partitions() int { return len(p.irSpectra) }

// ProcessSample feeds one input sample and returns one output sample,
// delayed by [Partitioned.Latency].
func (p *Partitioned) ProcessSample(x float64) float64 {
	y := p.output[p.pos]
	p.input[p.pos] = x
	p.pos++
	if p.pos == p.partSize {
		p.step()
		p.pos = 0
	}
	return y
}

// ProcessBlock convolves buf in place.
func (p *Partitioned) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = p.ProcessSample(x)
	}
}

// step runs one partition: the window [prev | input] is transformed, pushed
// onto the delay line and convolved with every IR partition. The last half
// of the inverse transform is the valid overlap-save output.
func (p *Partitioned) step() {
	for i, v := range p.prev {
		p.window[i] = complex(v, 0)
	}
	for i, v := range p.input {
		p.window[p.partSize+i] = complex(v, 0)
	}

	p.fdlPos--
	if p.fdlPos < 0 {
		p.fdlPos = len(p.fdl) - 1
	}
	// The plan sizes match by construction, so the transforms cannot fail.
	_ = p.plan.Forward(p.fdl[p.fdlPos], p.window)

	for i := range p.acc {
		p.acc[i] = 0
	}
	parts := len(p.fdl)
	for k, h := range p.irSpectra {
		x := p.fdl[(p.fdlPos+k)%parts]
		for i := range p.acc {
			p.acc[i] += x[i] * h[i]
		}
	}

	_ = p.plan.Inverse(p.acc, p.acc)
	for i := range p.output {
		p.output[i] = real(p.acc[p.partSize+i])
	}

	p.prev, p.input = p.input, p.prev
}

// Reset clears all signal history.
func (p *Partitioned) Reset() {
	for _, s := range p.fdl {
		for i := range s {
			s[i] = 0
		}
	}
	for i := range p.prev {
		p.prev[i] = 0
		p.input[i] = 0
		p.output[i] = 0
	}
	p.fdlPos = 0
	p.pos = 0
}
