package effectchain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/param"
)

// Context provides the session settings that nodes are built for.
type Context struct {
	SampleRate float64
	Channels   int

	// BlockSize is the largest number of frames processed in one pass;
	// longer blocks are split.
	BlockSize int

	// SmoothingTime is the parameter smoothing time constant in seconds.
	// Zero applies parameter edits instantly.
	SmoothingTime float64
}

// DefaultContext returns 48 kHz stereo in blocks of 128 frames with 10 ms
// parameter smoothing.
func DefaultContext() Context {
	p := core.DefaultProcessorConfig()
	return Context{
		SampleRate:    p.SampleRate,
		Channels:      p.Channels,
		BlockSize:     p.BlockSize,
		SmoothingTime: param.DefaultSmoothingTime,
	}
}

// Validate checks that the context describes a usable session.
func (c Context) Validate() error {
	p := core.ProcessorConfig{SampleRate: c.SampleRate, BlockSize: c.BlockSize, Channels: c.Channels}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("effectchain: %w", err)
	}
	if !(c.SmoothingTime >= 0) || math.IsInf(c.SmoothingTime, 0) {
		return fmt.Errorf("effectchain: invalid smoothing time: %v", c.SmoothingTime)
	}
	return nil
}

// IRProvider supplies the impulse response table of CAB_SIM modules.
type IRProvider interface {
	ImpulseResponses() [][]float64
}

// IRTable is a fixed impulse response table.
type IRTable [][]float64

// ImpulseResponses implements IRProvider.
func (t IRTable) ImpulseResponses() [][]float64 { return t }
