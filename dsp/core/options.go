package core

import (
	"fmt"
	"math"
)

// ProcessorConfig holds the session settings shared by processors and
// meters.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	Channels   int
}

// ProcessorOption mutates a ProcessorConfig. Options ignore values that
// cannot describe a session.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 48 kHz stereo in blocks of 128 frames.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: 48000, BlockSize: 128, Channels: 2}
}

// WithSampleRate sets a finite, positive sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 0) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the largest block processed in one pass.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithChannels sets the channel count.
func WithChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// ApplyProcessorOptions applies opts over the defaults; nil options are
// skipped.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports the first setting that cannot describe a session.
func (c ProcessorConfig) Validate() error {
	switch {
	case !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0):
		return fmt.Errorf("invalid sample rate: %v", c.SampleRate)
	case c.Channels <= 0:
		return fmt.Errorf("invalid channel count: %d", c.Channels)
	case c.BlockSize <= 0:
		return fmt.Errorf("invalid block size: %d", c.BlockSize)
	}
	return nil
}
