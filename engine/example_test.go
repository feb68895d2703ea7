package engine_test

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/engine"
	"github.com/cwbudde/algo-master/internal/testutil"
)

func ExampleEngine_Render() {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	e, err := engine.New(engine.DefaultConfig(), engine.WithLogger(log))
	if err != nil {
		panic(err)
	}

	_, err = e.UpdateRack(effectchain.Rack{
		{ID: "gain", Type: effectchain.TypeSaturation, Parameters: map[string]float64{"outputGain": -6, "mix": 1}},
		{ID: "lim", Type: effectchain.TypeLimiter, Parameters: map[string]float64{"lookahead": 0}},
	})
	if err != nil {
		panic(err)
	}

	tone := testutil.DeterministicSine(1000, 48000, 0.1, 48000)
	out, err := e.Render(context.Background(), testutil.Stereo(tone, tone), []engine.Event{
		{Frame: 24000, Module: "gain", Param: "mix", Value: 0},
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("frames: %d, latency: %d\n", len(out[0]), e.Latency())
	// Output:
	// frames: 48000, latency: 0
}
