package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/effects"
)

func ExampleBitCrusher() {
	bc, err := effects.NewBitCrusher(48000, 1)
	if err != nil {
		panic(err)
	}
	bc.SetBits(2)

	frame := []float64{0}
	for _, x := range []float64{0.3, 0.6, -0.4} {
		frame[0] = x
		bc.ProcessFrame(frame)
		fmt.Printf("%.2f ", frame[0])
	}
	fmt.Println()
	// Output: 0.25 0.50 -0.50
}

func ExampleCabSim() {
	cab, err := effects.NewCabSim(48000, 2)
	if err != nil {
		panic(err)
	}
	fmt.Println("latency:", cab.Latency())
	// Output: latency: 128
}
