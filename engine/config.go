package engine

import (
	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/dsp/param"
)

// Config holds the session settings of an [Engine].
type Config struct {
	SampleRate    float64 `yaml:"sampleRate"`
	Channels      int     `yaml:"channels"`
	BlockSize     int     `yaml:"blockSize"`
	SmoothingTime float64 `yaml:"smoothingTime"`
}

// DefaultConfig returns 48 kHz stereo, 128-frame blocks and 10 ms
// parameter smoothing.
func DefaultConfig() Config {
	return Config{
		SampleRate:    48000,
		Channels:      2,
		BlockSize:     128,
		SmoothingTime: param.DefaultSmoothingTime,
	}
}

func (c Config) context() effectchain.Context {
	return effectchain.Context{
		SampleRate:    c.SampleRate,
		Channels:      c.Channels,
		BlockSize:     c.BlockSize,
		SmoothingTime: c.SmoothingTime,
	}
}

// Validate checks that the settings describe a usable session.
func (c Config) Validate() error {
	return c.context().Validate()
}
