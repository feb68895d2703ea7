package effectchain

import "github.com/cwbudde/algo-master/measure/loudness"

// NodeSnapshot is the metering state of one module. GainReduction is in
// dB and stays zero for modules that do not reduce gain; Loudness is set
// for meters only.
type NodeSnapshot struct {
	ID            string            `json:"id"`
	Type          ModuleType        `json:"type"`
	Bypassed      bool              `json:"bypassed"`
	Connected     bool              `json:"connected"`
	GainReduction float64           `json:"gainReduction"`
	Loudness      *loudness.Reading `json:"loudness,omitempty"`
	Latency       int               `json:"latency,omitempty"`
	Faults        uint64            `json:"faults,omitempty"`
}

// Snapshot returns the metering state of every module in rack order.
func (c *Chain) Snapshot() []NodeSnapshot {
	connected := make(map[*node]struct{}, len(c.connected))
	for _, n := range c.connected {
		connected[n] = struct{}{}
	}

	out := make([]NodeSnapshot, 0, len(c.rack))
	for _, m := range c.rack {
		n, ok := c.nodes.get(m.ID)
		if !ok {
			continue
		}

		_, isConnected := connected[n]
		s := NodeSnapshot{
			ID:        n.id,
			Type:      n.typ,
			Bypassed:  n.bypassed,
			Connected: isConnected,
			Faults:    n.faults,
		}
		if g, ok := n.proc.(GainReducer); ok {
			s.GainReduction = g.GainReduction()
		}
		if l, ok := n.proc.(LoudnessReader); ok {
			r := l.Loudness()
			s.Loudness = &r
		}
		if l, ok := n.proc.(LatencyReporter); ok {
			s.Latency = l.Latency()
		}

		out = append(out, s)
	}

	return out
}
