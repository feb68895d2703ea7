package effectchain

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-master/dsp/core"
)

// ReconcileKind classifies what a rack update did to the connected chain.
type ReconcileKind int

const (
	// ReconcileNone kept every connection; only parameters, bypass flags
	// or inactive modules changed.
	ReconcileNone ReconcileKind = iota
	// ReconcilePartial kept the connected prefix before the divergence
	// point and relinked the rest.
	ReconcilePartial
	// ReconcileFull relinked the chain from its input.
	ReconcileFull
)

func (k ReconcileKind) String() string {
	switch k {
	case ReconcileNone:
		return "none"
	case ReconcilePartial:
		return "partial"
	case ReconcileFull:
		return "full"
	default:
		return fmt.Sprintf("ReconcileKind(%d)", int(k))
	}
}

// Report describes the outcome of [Chain.Update].
type Report struct {
	Kind ReconcileKind

	// Index is the first connected position that changed, or -1.
	Index int

	// Fallback is set when a partial relink found its stable prefix
	// inconsistent and rebuilt the chain from the input instead.
	Fallback bool

	Connected []string
	Created   []string
	Destroyed []string
}

type tapKind int

const (
	tapOwn tapKind = iota
	tapNode
	tapExternal
)

// tap is the resolved sidechain source of one connected position.
type tap struct {
	kind   tapKind
	source *node
	name   string
	view   [][]float64
}

// Chain is the signal path built from a rack. Update, Process, Reset and
// Snapshot must be serialised by the caller; SetParameter may run
// concurrently with all of them.
type Chain struct {
	ctx      Context
	registry *Registry

	nodes     arena
	rack      Rack
	connected []*node
	taps      []tap
	index     atomic.Pointer[map[string]*node]

	work [][]float64
	view [][]float64
}

// New creates an empty chain. A nil registry selects [DefaultRegistry].
func New(ctx Context, registry *Registry) (*Chain, error) {
	err := ctx.Validate()
	if err != nil {
		return nil, err
	}

	if registry == nil {
		registry = DefaultRegistry()
	}

	c := &Chain{
		ctx:      ctx,
		registry: registry,
		nodes:    newArena(),
		work:     core.NewBlock(ctx.Channels, ctx.BlockSize),
		view:     make([][]float64, ctx.Channels),
	}
	c.publish()

	return c, nil
}

// Context returns the session settings.
func (c *Chain) Context() Context { return c.ctx }

// Registry returns the module registry.
func (c *Chain) Registry() *Registry { return c.registry }

// Update reconciles the chain with rack. Nodes are created for new ids,
// kept for known ids and destroyed for ids no longer present, bypassed or
// not. An invalid rack is rejected and leaves the chain untouched.
func (c *Chain) Update(rack Rack) (Report, error) {
	err := c.check(rack)
	if err != nil {
		return Report{Index: -1}, err
	}

	staged := make([]*node, 0, len(rack))
	for _, m := range rack {
		if _, ok := c.nodes.get(m.ID); ok {
			continue
		}

		entry, _ := c.registry.lookup(m.Type)
		n, err := newNode(c.ctx, m, entry)
		if err != nil {
			return Report{Index: -1}, fmt.Errorf("effectchain: create %v %q: %w", m.Type, m.ID, err)
		}
		staged = append(staged, n)
	}

	report := Report{Index: -1}
	for _, n := range staged {
		c.nodes.put(n)
		report.Created = append(report.Created, n.id)
	}

	active := make([]*node, 0, len(rack))
	for _, m := range rack {
		n, _ := c.nodes.get(m.ID)
		n.sync(m.Parameters)
		if n.bypassed && !m.Bypass {
			n.resetBallistics()
		}
		n.bypassed = m.Bypass
		if !m.Bypass {
			active = append(active, n)
		}
	}

	c.relink(active, &report)

	inRack := make(map[string]struct{}, len(rack))
	for _, m := range rack {
		inRack[m.ID] = struct{}{}
	}
	var stale []string
	c.nodes.each(func(n *node) {
		if _, ok := inRack[n.id]; !ok {
			stale = append(stale, n.id)
		}
	})
	for _, id := range stale {
		c.nodes.remove(id)
		report.Destroyed = append(report.Destroyed, id)
	}

	c.rack = rack.Clone()
	c.resolveTaps()
	c.publish()

	report.Connected = c.Connected()

	return report, nil
}

func (c *Chain) check(rack Rack) error {
	err := rack.Validate()
	if err != nil {
		return err
	}

	for _, m := range rack {
		if n, ok := c.nodes.get(m.ID); ok && n.typ != m.Type {
			return fmt.Errorf("%w: %q is %v, rack has %v", ErrTypeChanged, m.ID, n.typ, m.Type)
		}
		if !c.registry.Has(m.Type) {
			return fmt.Errorf("%w: %v is not registered (module %q)", ErrUnknownModuleType, m.Type, m.ID)
		}
	}

	return nil
}

// relink brings the connected sequence in line with active, keeping the
// longest unchanged prefix.
func (c *Chain) relink(active []*node, report *Report) {
	k := divergence(c.connected, active)
	if k < 0 {
		report.Kind = ReconcileNone
		return
	}
	report.Index = k

	if k > 0 {
		for _, n := range c.connected[:k] {
			if cur, ok := c.nodes.get(n.id); !ok || cur != n {
				report.Fallback = true
				break
			}
		}
	}

	if k == 0 || report.Fallback {
		report.Kind = ReconcileFull
		c.connected = append(c.connected[:0], active...)
		return
	}

	report.Kind = ReconcilePartial
	c.connected = append(c.connected[:k], active[k:]...)
}

// divergence returns the first index where the id sequences differ, or -1
// when they are equal.
func divergence(connected, active []*node) int {
	n := min(len(connected), len(active))
	for i := range n {
		if connected[i].id != active[i].id {
			return i
		}
	}
	if len(connected) != len(active) {
		return n
	}
	return -1
}

// resolveTaps wires sidechains after the main chain. An internal tap must
// name a node connected upstream; anything else reads the node's own input.
func (c *Chain) resolveTaps() {
	modules := make(map[string]Module, len(c.rack))
	for _, m := range c.rack {
		modules[m.ID] = m
	}

	sources := make(map[*node]struct{})
	c.taps = c.taps[:0]
	for i, n := range c.connected {
		t := tap{kind: tapOwn}
		sc := modules[n.id].Sidechain

		switch {
		case !sc.Enabled || sc.SourceID == "":
		case sc.Mode == SidechainExternal:
			t = tap{kind: tapExternal, name: sc.SourceID, view: make([][]float64, c.ctx.Channels)}
		case sc.SourceID != n.id:
			for _, up := range c.connected[:i] {
				if up.id == sc.SourceID {
					t = tap{kind: tapNode, source: up, view: make([][]float64, c.ctx.Channels)}
					sources[up] = struct{}{}
					break
				}
			}
		}

		c.taps = append(c.taps, t)
	}

	c.nodes.each(func(n *node) {
		if _, ok := sources[n]; !ok {
			n.capture = nil
			return
		}
		if n.capture == nil {
			n.capture = core.NewBlock(c.ctx.Channels, c.ctx.BlockSize)
		}
	})
}

func (c *Chain) publish() {
	idx := make(map[string]*node, c.nodes.len())
	c.nodes.each(func(n *node) { idx[n.id] = n })
	c.index.Store(&idx)
}

// SetParameter publishes a new target for one parameter of a module. It
// never blocks and may be called while the chain is processing. It
// reports false for unknown modules or parameters.
func (c *Chain) SetParameter(id, name string, value float64) bool {
	n, ok := (*c.index.Load())[id]
	if !ok {
		return false
	}
	return n.SetParameter(name, value)
}

// Node returns the live node of a module, bypassed or not.
func (c *Chain) Node(id string) (Node, bool) {
	n, ok := (*c.index.Load())[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Connected returns the ids of the connected nodes in signal order.
func (c *Chain) Connected() []string {
	out := make([]string, len(c.connected))
	for i, n := range c.connected {
		out[i] = n.id
	}
	return out
}

// Rack returns a copy of the rack last applied.
func (c *Chain) Rack() Rack { return c.rack.Clone() }

// Latency returns the summed latency of the connected nodes in samples.
func (c *Chain) Latency() int {
	total := 0
	for _, n := range c.connected {
		if l, ok := n.proc.(LatencyReporter); ok {
			total += l.Latency()
		}
	}
	return total
}

// Reset clears the signal state of every node.
func (c *Chain) Reset() {
	c.nodes.each(func(n *node) { n.Reset() })
}
