package dynamics

import "fmt"

// Topology selects the character of a gain computer.
type Topology int

const (
	// VCA is a clean feed-forward design.
	VCA Topology = iota
	// FET detects on the processed output of the previous sample (feedback).
	FET
	// Opto shortens release as the detector level rises.
	Opto
	// VarMu raises the ratio with overshoot: r = 1 + overshoot*knee*0.1.
	VarMu

	topologyCount
)

var topologyNames = [topologyCount]string{"VCA", "FET", "Opto", "VarMu"}

// String returns the conventional topology name.
func (t Topology) String() string {
	if t >= 0 && t < topologyCount {
		return topologyNames[t]
	}
	return fmt.Sprintf("Topology(%d)", t)
}

// Valid reports whether t is a known topology.
func (t Topology) Valid() bool {
	return t >= 0 && t < topologyCount
}
