package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Quantizer performs bit-depth quantization with dither noise and optional
// noise shaping. Output is limited to the signed integer range of the bit
// depth.
type Quantizer struct {
	bitDepth   int
	ditherType DitherType
	shaper     ErrorFeedback
	seed       uint64
	rng        *rand.Rand

	// derived from bitDepth
	bitMul  float64
	bitDiv  float64
	limitLo float64
	limitHi float64
}

// NewQuantizer creates a Quantizer. The default configuration is 24-bit
// triangular dither without shaping, seeded with [DefaultSeed].
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		bitDepth:   cfg.bitDepth,
		ditherType: cfg.ditherType,
		seed:       cfg.seed,
	}
	q.shaper.SetEnabled(cfg.shaping)
	q.rng = rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))
	q.updateDerived()

	return q, nil
}

func (q *Quantizer) updateDerived() {
	q.bitMul = math.Exp2(float64(q.bitDepth - 1))
	q.bitDiv = 1 / q.bitMul
	q.limitLo = -q.bitMul
	q.limitHi = q.bitMul - 1
}

// ProcessSample quantizes input (nominally in [-1, 1]) and returns the
// quantized value on the same scale.
func (q *Quantizer) ProcessSample(input float64) float64 {
	if input != input {
		return 0
	}

	// 1. Scale to the integer range.
	scaled := q.bitMul * input

	// 2. Noise shaping subtracts the previous error.
	shaped := q.shaper.Shape(scaled)

	// 3. Add dither and round.
	result := math.Round(shaped + q.noise())

	// 4. Limit to the representable range.
	result = max(q.limitLo, min(q.limitHi, result))

	// 5. Record the error for the next sample.
	q.shaper.RecordError(result - shaped)

	return result * q.bitDiv
}

// ProcessInPlace quantizes each sample in buf in place.
func (q *Quantizer) ProcessInPlace(buf []float64) {
	for i, v := range buf {
		buf[i] = q.ProcessSample(v)
	}
}

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.rng.Float64() - 0.5
	case DitherTriangular:
		return q.rng.Float64() - q.rng.Float64()
	default:
		return 0
	}
}

// Reset clears the shaper memory and restarts the noise sequence.
func (q *Quantizer) Reset() {
	q.shaper.Reset()
	q.rng = rand.New(rand.NewPCG(q.seed, q.seed^0x9e3779b97f4a7c15))
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// Shaping reports whether noise shaping is enabled.
func (q *Quantizer) Shaping() bool { return q.shaper.Enabled() }

// LSB returns the size of one quantization step on the [-1, 1] scale.
func (q *Quantizer) LSB() float64 { return q.bitDiv }

// SetBitDepth changes the target bit depth (8-32).
func (q *Quantizer) SetBitDepth(bits int) error {
	if bits < MinBitDepth || bits > MaxBitDepth {
		return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", MinBitDepth, MaxBitDepth, bits)
	}
	if bits != q.bitDepth {
		q.bitDepth = bits
		q.updateDerived()
		q.shaper.Reset()
	}
	return nil
}

// SetDitherType changes the dither noise PDF.
func (q *Quantizer) SetDitherType(dt DitherType) error {
	if !dt.Valid() {
		return fmt.Errorf("dither: invalid dither type: %d", dt)
	}
	q.ditherType = dt
	return nil
}

// SetShaping enables or disables noise shaping.
func (q *Quantizer) SetShaping(on bool) {
	if on != q.shaper.Enabled() {
		q.shaper.SetEnabled(on)
	}
}
