package effects

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/conv"
	"github.com/cwbudde/algo-master/dsp/delay"
	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

const (
	// CabSimPartition is the convolver partition size and therefore the
	// latency of [CabSim] in samples.
	CabSimPartition = 128

	// BuiltinIR selects the synthesised cabinet response.
	BuiltinIR = -1

	builtinIRLength = 1024
	builtinIRFade   = 128
)

// BuiltinCabinetIR returns the built-in cabinet impulse response at
// sampleRate: a high-pass at 80 Hz, a +4 dB presence peak at 2.5 kHz and a
// low-pass at 5 kHz, truncated with a raised-cosine tail.
func BuiltinCabinetIR(sampleRate float64) []float64 {
	hp := biquad.New(biquad.Highpass, 80, 0, shelfQ, sampleRate)
	peak := biquad.New(biquad.Peaking, 2500, 4, 1, sampleRate)
	lp := biquad.New(biquad.Lowpass, 5000, 0, shelfQ, sampleRate)

	ir := make([]float64, builtinIRLength)
	x := 1.0
	for i := range ir {
		ir[i] = lp.ProcessSample(peak.ProcessSample(hp.ProcessSample(x)))
		x = 0
	}
	fadeStart := builtinIRLength - builtinIRFade
	for i := fadeStart; i < builtinIRLength; i++ {
		ir[i] *= raisedCosine(float64(i-fadeStart) / builtinIRFade)
	}
	return ir
}

// CabSim convolves each channel with a cabinet impulse response. Every
// response in the table is prepared at construction, so switching between
// them never allocates. The dry path is delayed to stay aligned with the
// convolver latency.
type CabSim struct {
	// banks[0] is the built-in response, banks[i+1] table entry i.
	banks  [][]*conv.Partitioned
	active int
	mix    float64

	dry []*delay.Line
}

// NewCabSim returns a cabinet simulator using the built-in response. irs is
// an optional table of further responses, selectable with [CabSim.SetIR].
func NewCabSim(sampleRate float64, channels int, irs ...[]float64) (*CabSim, error) {
	if err := validate(sampleRate, channels); err != nil {
		return nil, err
	}

	c := &CabSim{
		banks: make([][]*conv.Partitioned, 0, len(irs)+1),
		mix:   1,
		dry:   make([]*delay.Line, channels),
	}

	table := append([][]float64{BuiltinCabinetIR(sampleRate)}, irs...)
	for i, ir := range table {
		bank := make([]*conv.Partitioned, channels)
		for ch := range bank {
			p, err := conv.NewPartitioned(ir, CabSimPartition)
			if err != nil {
				return nil, fmt.Errorf("effects: impulse response %d: %w", i-1, err)
			}
			bank[ch] = p
		}
		c.banks = append(c.banks, bank)
	}

	for ch := range c.dry {
		line, err := delay.New(CabSimPartition + 1)
		if err != nil {
			return nil, err
		}
		c.dry[ch] = line
	}
	return c, nil
}

// SetIR selects a response: [BuiltinIR] or an index into the table passed
// to [NewCabSim]. Unknown indices select the built-in response. The newly
// selected convolvers start from silence.
func (c *CabSim) SetIR(index int) {
	next := index + 1
	if next < 0 || next >= len(c.banks) {
		next = 0
	}
	if next == c.active {
		return
	}
	c.active = next
	for _, p := range c.banks[next] {
		p.Reset()
	}
}

// SetMix sets the dry/wet ratio in [0, 1].
func (c *CabSim) SetMix(mix float64) { c.mix = bounded(mix, 0, 1, 1) }

// IR returns the selected response index.
func (c *CabSim) IR() int { return c.active - 1 }

// IRCount returns the number of table responses, excluding the built-in one.
func (c *CabSim) IRCount() int { return len(c.banks) - 1 }

// Mix returns the dry/wet ratio.
func (c *CabSim) Mix() float64 { return c.mix }

// Latency returns the processing delay in samples.
func (c *CabSim) Latency() int { return CabSimPartition }

// ProcessFrame convolves one frame in place.
func (c *CabSim) ProcessFrame(frame []float64) {
	bank := c.banks[c.active]
	n := frameWidth(frame, len(bank))
	for ch := range n {
		x := frame[ch]
		wet := bank[ch].ProcessSample(x)
		c.dry[ch].Write(x)
		frame[ch] = c.dry[ch].Read(CabSimPartition)*(1-c.mix) + wet*c.mix
	}
}

// Reset clears convolver and dry-path state.
func (c *CabSim) Reset() {
	for _, bank := range c.banks {
		for _, p := range bank {
			p.Reset()
		}
	}
	for _, line := range c.dry {
		line.Reset()
	}
}
