package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

func ExampleSection_ImpulseResponse() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i, y := range s.ImpulseResponse(4) {
		fmt.Printf("h[%d] = %+.4f\n", i, y)
	}
	// Output:
	// h[0] = +0.2500
	// h[1] = +0.5500
	// h[2] = +0.3500
	// h[3] = +0.0480
}

func ExampleFilter_SetGain() {
	f := biquad.New(biquad.Peaking, 1000, 6, 1, 48000)
	fmt.Printf("boost: %+.2f dB\n", f.MagnitudeDB(1000))

	f.SetGain(-3)
	fmt.Printf("cut:   %+.2f dB\n", f.MagnitudeDB(1000))
	// Output:
	// boost: +6.00 dB
	// cut:   -3.00 dB
}
