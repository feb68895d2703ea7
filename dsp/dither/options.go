package dither

import "fmt"

const (
	defaultBitDepth   = 24
	defaultDitherType = DitherTriangular

	// DefaultSeed seeds the noise generator when no seed is given, so two
	// quantizers built the same way produce the same noise.
	DefaultSeed uint64 = 0x6d61737465726678

	MinBitDepth = 8
	MaxBitDepth = 32
)

type config struct {
	bitDepth   int
	ditherType DitherType
	shaping    bool
	seed       uint64
}

func defaultConfig() config {
	return config{
		bitDepth:   defaultBitDepth,
		ditherType: defaultDitherType,
		seed:       DefaultSeed,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target bit depth (8-32, default 24).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < MinBitDepth || bits > MaxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", MinBitDepth, MaxBitDepth, bits)
		}
		cfg.bitDepth = bits
		return nil
	}
}

// WithDitherType sets the dither noise PDF (default [DitherTriangular]).
func WithDitherType(dt DitherType) Option {
	return func(cfg *config) error {
		if !dt.Valid() {
			return fmt.Errorf("dither: invalid dither type: %d", dt)
		}
		cfg.ditherType = dt
		return nil
	}
}

// WithShaping enables first-order error-feedback noise shaping.
func WithShaping(enabled bool) Option {
	return func(cfg *config) error {
		cfg.shaping = enabled
		return nil
	}
}

// WithSeed sets the noise generator seed.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}
