package effectchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-master/dsp/param"
	"github.com/cwbudde/algo-master/measure/loudness"
)

// Processor is the DSP side of a node. A node owns exactly one Processor
// and calls it from the audio thread only.
type Processor interface {
	// Apply pushes parameter values, in descriptor order, into the
	// algorithm. changed marks the values that moved since the last call;
	// the first call after construction marks all of them.
	Apply(values []float64, changed param.Mask)
	// Process runs one frame in place. sidechain is nil when the detector
	// should follow the frame itself.
	Process(frame, sidechain []float64)
	// Reset clears all signal state.
	Reset()
}

// BallisticsResetter is implemented by processors whose gain reduction
// should be cleared when their module returns from bypass.
type BallisticsResetter interface {
	ResetBallistics()
}

// GainReducer is implemented by processors that report gain reduction.
type GainReducer interface {
	GainReduction() float64
}

// LatencyReporter is implemented by processors that delay the signal.
type LatencyReporter interface {
	Latency() int
}

// LoudnessReader is implemented by metering processors.
type LoudnessReader interface {
	Loudness() loudness.Reading
}

// Factory builds one Processor for a node.
type Factory func(ctx Context) (Processor, error)

type registryEntry struct {
	params  []param.Descriptor
	factory Factory
}

// Registry maps module types to their parameter descriptors and factories.
type Registry struct {
	entries map[ModuleType]registryEntry
}

var errDuplicateModule = errors.New("effectchain: module type already registered")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[ModuleType]registryEntry)}
}

// Register adds a module type with its descriptors, in the order its
// Processor expects them in Apply.
func (r *Registry) Register(t ModuleType, params []param.Descriptor, factory Factory) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownModuleType, int(t))
	}

	if factory == nil {
		return errors.New("effectchain: nil factory")
	}

	if len(params) > param.MaxCells {
		return fmt.Errorf("effectchain: %v declares %d parameters, limit is %d", t, len(params), param.MaxCells)
	}

	if _, exists := r.entries[t]; exists {
		return fmt.Errorf("%w: %v", errDuplicateModule, t)
	}

	seen := make(map[string]struct{}, len(params))
	for _, d := range params {
		if _, dup := seen[d.Name]; dup || d.Name == "" {
			return fmt.Errorf("effectchain: %v: invalid or duplicate parameter %q", t, d.Name)
		}
		seen[d.Name] = struct{}{}
	}

	r.entries[t] = registryEntry{params: append([]param.Descriptor(nil), params...), factory: factory}

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(t ModuleType, params []param.Descriptor, factory Factory) {
	err := r.Register(t, params, factory)
	if err != nil {
		panic(err.Error())
	}
}

// Has reports whether t is registered.
func (r *Registry) Has(t ModuleType) bool {
	_, ok := r.entries[t]
	return ok
}

// Descriptors returns a copy of the parameter descriptors of t, or nil.
func (r *Registry) Descriptors(t ModuleType) []param.Descriptor {
	e, ok := r.entries[t]
	if !ok {
		return nil
	}

	return append([]param.Descriptor(nil), e.params...)
}

// Types returns the registered types in enumeration order.
func (r *Registry) Types() []ModuleType {
	var out []ModuleType
	for _, t := range ModuleTypes() {
		if r.Has(t) {
			out = append(out, t)
		}
	}

	return out
}

func (r *Registry) lookup(t ModuleType) (registryEntry, bool) {
	e, ok := r.entries[t]
	return e, ok
}
