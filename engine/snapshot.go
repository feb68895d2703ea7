package engine

import (
	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/measure/loudness"
	"github.com/cwbudde/algo-master/measure/spectrum"
)

// Snapshot is the metering state of the path for a UI or a log line.
type Snapshot struct {
	Position      int64                      `json:"position"`
	Latency       int                        `json:"latency"`
	DroppedEvents int                        `json:"droppedEvents"`
	Loudness      loudness.Reading           `json:"loudness"`
	Nodes         []effectchain.NodeSnapshot `json:"nodes"`
	Spectrum      []spectrum.Band            `json:"spectrum"`
}

// Snapshot analyses the most recent output and returns the metering state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.analyzer.Analyze()

	return Snapshot{
		Position:      e.position,
		Latency:       e.chain.Latency(),
		DroppedEvents: e.dropped,
		Loudness:      e.meter.Reading(),
		Nodes:         e.chain.Snapshot(),
		Spectrum:      e.analyzer.Bands(),
	}
}
