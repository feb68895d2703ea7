package automation_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-master/internal/automation"
)

func ExampleRun() {
	script := `ramp(0, duration, "sat", "outputGain", 0, -12, 4)`

	events, err := automation.Run(context.Background(), "fade.lua", script, automation.Options{
		SampleRate: 48000,
		Frames:     48000,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, ev := range events {
		fmt.Println(ev.Frame, ev.Module, ev.Param, ev.Value)
	}
	// Output:
	// 0 sat outputGain 0
	// 12000 sat outputGain -3
	// 24000 sat outputGain -6
	// 36000 sat outputGain -9
	// 48000 sat outputGain -12
}
