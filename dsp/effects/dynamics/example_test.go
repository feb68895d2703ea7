package dynamics_test

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/effects/dynamics"
)

func ExampleCompressor() {
	c, err := dynamics.NewCompressor(48000, 1)
	if err != nil {
		panic(err)
	}
	c.SetThreshold(-24)
	c.SetRatio(4)

	frame := make([]float64, 1)
	for range 48000 {
		frame[0] = core.DBToLinear(-12)
		c.ProcessFrame(frame, nil)
	}
	fmt.Printf("gain reduction: %.1f dB\n", c.GainReduction())
	// Output:
	// gain reduction: 9.0 dB
}
