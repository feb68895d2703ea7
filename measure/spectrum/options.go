package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/window"
)

const (
	defaultSize     = 2048
	defaultBands    = 32
	defaultLowBand  = 20.0
	minSize         = 64
	maxSize         = 1 << 16
	defaultRate     = 48000.0
	defaultWindowFn = window.TypeHann
)

// Option configures an [Analyzer].
type Option func(*config) error

type config struct {
	size       int
	sampleRate float64
	window     window.Type
	bands      int
	lowBand    float64
}

func defaultConfig() config {
	return config{
		size:       defaultSize,
		sampleRate: defaultRate,
		window:     defaultWindowFn,
		bands:      defaultBands,
		lowBand:    defaultLowBand,
	}
}

// WithSize sets the FFT size, a power of two in [64, 65536].
func WithSize(n int) Option {
	return func(c *config) error {
		if n < minSize || n > maxSize || n&(n-1) != 0 {
			return fmt.Errorf("spectrum: size must be a power of two in [%d, %d]: %d", minSize, maxSize, n)
		}
		c.size = n
		return nil
	}
}

// WithSampleRate sets the sample rate used to label bins and bands.
func WithSampleRate(sr float64) Option {
	return func(c *config) error {
		if !(sr > 0) || sr > 1e7 {
			return fmt.Errorf("spectrum: invalid sample rate: %v", sr)
		}
		c.sampleRate = sr
		return nil
	}
}

// WithWindow selects the analysis window.
func WithWindow(t window.Type) Option {
	return func(c *config) error {
		if !t.Valid() {
			return fmt.Errorf("spectrum: unknown window: %v", t)
		}
		c.window = t
		return nil
	}
}

// WithBands sets the number of log-spaced bands and the lower edge of the
// first band in Hz. The last band ends at Nyquist.
func WithBands(n int, lowHz float64) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("spectrum: band count must be positive: %d", n)
		}
		if !(lowHz > 0) {
			return fmt.Errorf("spectrum: lowest band edge must be positive: %v", lowHz)
		}
		c.bands = n
		c.lowBand = lowHz
		return nil
	}
}
