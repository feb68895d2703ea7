package effectchain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyID is returned for a module without an id.
	ErrEmptyID = errors.New("effectchain: module id must not be empty")
	// ErrDuplicateID is returned when two modules of a rack share an id.
	ErrDuplicateID = errors.New("effectchain: duplicate module id")
	// ErrUnknownModuleType is returned for a module type outside the
	// enumeration or without a registered factory.
	ErrUnknownModuleType = errors.New("effectchain: unknown module type")
	// ErrTypeChanged is returned when a rack changes the type of an
	// existing module id.
	ErrTypeChanged = errors.New("effectchain: module type changed")
)

// ModuleType enumerates the effect kinds a rack can hold.
type ModuleType int

const (
	TypeCompressor ModuleType = iota
	TypeParametricEQ
	TypeSaturation
	TypeLimiter
	TypeDynamicEQ
	TypeTransientShaper
	TypeMidSideEQ
	TypeCabSim
	TypeDithering
	TypeDistortion
	TypeBitcrusher
	TypeChorus
	TypePhaser
	TypeTremolo
	TypeAutoWah
	TypeFeedbackDelay
	TypeDeEsser
	TypeStereoImager
	TypeMultibandCompressor
	TypeLoudnessMeter

	moduleTypeCount
)

var moduleTypeNames = [moduleTypeCount]string{
	"COMPRESSOR",
	"PARAMETRIC_EQ",
	"SATURATION",
	"LIMITER",
	"DYNAMIC_EQ",
	"TRANSIENT_SHAPER",
	"MIDSIDE_EQ",
	"CAB_SIM",
	"DITHERING",
	"DISTORTION",
	"BITCRUSHER",
	"CHORUS",
	"PHASER",
	"TREMOLO",
	"AUTOWAH",
	"FEEDBACK_DELAY",
	"DE_ESSER",
	"STEREO_IMAGER",
	"MULTIBAND_COMPRESSOR",
	"LOUDNESS_METER",
}

// ModuleTypes returns every module type in enumeration order.
func ModuleTypes() []ModuleType {
	out := make([]ModuleType, moduleTypeCount)
	for i := range out {
		out[i] = ModuleType(i)
	}
	return out
}

// String returns the wire name, e.g. "COMPRESSOR".
func (t ModuleType) String() string {
	if t.Valid() {
		return moduleTypeNames[t]
	}
	return fmt.Sprintf("ModuleType(%d)", int(t))
}

// Valid reports whether t is part of the enumeration.
func (t ModuleType) Valid() bool { return t >= 0 && t < moduleTypeCount }

// ParseModuleType resolves a wire name.
func ParseModuleType(name string) (ModuleType, error) {
	for i, n := range moduleTypeNames {
		if n == name {
			return ModuleType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModuleType, name)
}

// MarshalText implements encoding.TextMarshaler.
func (t ModuleType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModuleType, int(t))
	}
	return []byte(moduleTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ModuleType) UnmarshalText(text []byte) error {
	v, err := ParseModuleType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// SidechainMode selects where a sidechain tap reads from.
type SidechainMode string

const (
	// SidechainInternal taps the output of another module upstream in the
	// same chain.
	SidechainInternal SidechainMode = "internal"
	// SidechainExternal taps a named block supplied with each
	// [Chain.Process] call.
	SidechainExternal SidechainMode = "external"
)

// Sidechain routes a module's detector input.
type Sidechain struct {
	Enabled  bool          `json:"enabled" yaml:"enabled"`
	Mode     SidechainMode `json:"mode,omitempty" yaml:"mode,omitempty"`
	SourceID string        `json:"sourceId,omitempty" yaml:"sourceId,omitempty"`
}

// Module is one effect record of a rack.
type Module struct {
	ID         string             `json:"id" yaml:"id"`
	Type       ModuleType         `json:"type" yaml:"type"`
	Bypass     bool               `json:"bypass,omitempty" yaml:"bypass,omitempty"`
	Parameters map[string]float64 `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Sidechain  Sidechain          `json:"sidechain,omitzero" yaml:"sidechain,omitempty"`
}

// Rack is an ordered list of modules; order is signal order.
type Rack []Module

// ParseRack decodes a JSON rack and validates it.
func ParseRack(data []byte) (Rack, error) {
	var r Rack
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("effectchain: decode rack: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks ids and types.
func (r Rack) Validate() error {
	seen := make(map[string]struct{}, len(r))
	for i, m := range r {
		if m.ID == "" {
			return fmt.Errorf("%w (position %d)", ErrEmptyID, i)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, m.ID)
		}
		seen[m.ID] = struct{}{}
		if !m.Type.Valid() {
			return fmt.Errorf("%w: %d (module %q)", ErrUnknownModuleType, int(m.Type), m.ID)
		}
	}
	return nil
}

// Index returns the position of id, or -1.
func (r Rack) Index(id string) int {
	for i, m := range r {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (r Rack) Clone() Rack {
	if r == nil {
		return nil
	}
	out := make(Rack, len(r))
	for i, m := range r {
		out[i] = m
		if m.Parameters != nil {
			out[i].Parameters = make(map[string]float64, len(m.Parameters))
			for k, v := range m.Parameters {
				out[i].Parameters[k] = v
			}
		}
	}
	return out
}
