package effectchain

import (
	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/param"
)

// Node is the live counterpart of a rack module. The same module id maps
// to the same Node for as long as the id stays in the rack, so its filter
// and ballistics state survive edits.
//
// SetParameter may be called from any one control goroutine while the
// chain is processing. Process and Reset belong to the audio side and
// must not overlap with [Chain.Process].
type Node interface {
	ID() string
	Type() ModuleType
	Bypassed() bool
	// Process runs the node over a planar block in place. sidechain may be
	// nil, in which case the detector follows the block itself.
	Process(block, sidechain [][]float64)
	// SetParameter clamps and publishes a new target value. It reports
	// false for names the module type does not declare.
	SetParameter(name string, value float64) bool
	// Parameters returns the current parameter targets.
	Parameters() map[string]float64
	// Processor returns the DSP processor owned by the node.
	Processor() Processor
	// Faults counts non-finite output samples that forced a reset.
	Faults() uint64
	Reset()
}

type node struct {
	id     string
	typ    ModuleType
	proc   Processor
	params *param.Set
	values []float64

	frame   []float64
	scFrame []float64

	// capture holds the node's output for the current block when another
	// node taps it as a sidechain.
	capture [][]float64

	bypassed bool
	faults   uint64
}

func newNode(ctx Context, m Module, entry registryEntry) (*node, error) {
	proc, err := entry.factory(ctx)
	if err != nil {
		return nil, err
	}

	n := &node{
		id:       m.ID,
		typ:      m.Type,
		proc:     proc,
		params:   param.NewSet(entry.params, ctx.SmoothingTime, ctx.SampleRate),
		values:   make([]float64, len(entry.params)),
		frame:    make([]float64, ctx.Channels),
		scFrame:  make([]float64, ctx.Channels),
		bypassed: m.Bypass,
	}
	n.sync(m.Parameters)
	n.params.Snap(n.values)
	proc.Apply(n.values, param.All(len(n.values)))

	return n, nil
}

// sync publishes the module's parameter values; parameters the module
// omits return to their defaults. Unknown names are ignored.
func (n *node) sync(values map[string]float64) {
	for i := range n.params.Len() {
		cell := n.params.Cell(i)
		d := cell.Descriptor()

		v, ok := values[d.Name]
		if !ok {
			v = d.Default
		}
		cell.Set(v)
	}
}

func (n *node) ID() string           { return n.id }
func (n *node) Type() ModuleType     { return n.typ }
func (n *node) Bypassed() bool       { return n.bypassed }
func (n *node) Processor() Processor { return n.proc }
func (n *node) Faults() uint64       { return n.faults }

func (n *node) SetParameter(name string, value float64) bool {
	return n.params.Set(name, value)
}

func (n *node) Parameters() map[string]float64 {
	return n.params.Targets()
}

func (n *node) Process(block, sidechain [][]float64) {
	frames := maxFrames(block)
	n.process(block, sidechain, frames)
}

// process runs frames samples. Missing channels and short slices read as
// silence and are not written back.
func (n *node) process(block, sidechain [][]float64, frames int) {
	for i := range frames {
		if changed := n.params.Advance(n.values); changed != 0 {
			n.proc.Apply(n.values, changed)
		}

		gather(n.frame, block, i)

		var side []float64
		if sidechain != nil {
			gather(n.scFrame, sidechain, i)
			side = n.scFrame
		}

		n.proc.Process(n.frame, side)

		if !finite(n.frame) {
			n.faults++
			n.proc.Reset()
			core.Zero(n.frame)
		}

		scatter(block, n.frame, i)
	}
}

func (n *node) Reset() {
	n.proc.Reset()
	for _, buf := range n.capture {
		core.Zero(buf)
	}
}

// resetBallistics clears gain reduction on a bypass→active transition.
// Filter memory is kept.
func (n *node) resetBallistics() {
	if r, ok := n.proc.(BallisticsResetter); ok {
		r.ResetBallistics()
	}
}

func gather(frame []float64, block [][]float64, i int) {
	for ch := range frame {
		v := 0.0
		if ch < len(block) && i < len(block[ch]) {
			v = block[ch][i]
		}
		frame[ch] = v
	}
}

func scatter(block [][]float64, frame []float64, i int) {
	for ch := range frame {
		if ch < len(block) && i < len(block[ch]) {
			block[ch][i] = frame[ch]
		}
	}
}

func finite(frame []float64) bool {
	for _, v := range frame {
		if !core.IsFinite(v) {
			return false
		}
	}
	return true
}

func maxFrames(block [][]float64) int {
	n := 0
	for _, ch := range block {
		n = max(n, len(ch))
	}
	return n
}
