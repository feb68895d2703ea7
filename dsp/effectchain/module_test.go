package effectchain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestModuleTypeNames(t *testing.T) {
	t.Parallel()

	types := ModuleTypes()
	if len(types) != 20 {
		t.Fatalf("%d module types, want 20", len(types))
	}

	for _, typ := range types {
		got, err := ParseModuleType(typ.String())
		if err != nil || got != typ {
			t.Fatalf("ParseModuleType(%q) = %v, %v", typ.String(), got, err)
		}
	}

	if TypeMidSideEQ.String() != "MIDSIDE_EQ" || TypeMultibandCompressor.String() != "MULTIBAND_COMPRESSOR" {
		t.Fatal("unexpected wire names")
	}
	if _, err := ParseModuleType("REVERB"); !errors.Is(err, ErrUnknownModuleType) {
		t.Fatalf("ParseModuleType(REVERB) error = %v", err)
	}
	if _, err := ModuleType(99).MarshalText(); err == nil {
		t.Fatal("MarshalText accepted an invalid type")
	}
}

const testRackJSON = `[
  {"id": "comp", "type": "COMPRESSOR", "parameters": {"threshold": -18, "ratio": 3}},
  {"id": "eq", "type": "PARAMETRIC_EQ", "bypass": true},
  {"id": "lim", "type": "LIMITER",
   "sidechain": {"enabled": true, "mode": "internal", "sourceId": "comp"}}
]`

func TestParseRack(t *testing.T) {
	t.Parallel()

	rack, err := ParseRack([]byte(testRackJSON))
	if err != nil {
		t.Fatalf("ParseRack: %v", err)
	}

	if len(rack) != 3 || rack[0].Type != TypeCompressor || rack[0].Parameters["ratio"] != 3 {
		t.Fatalf("rack = %+v", rack)
	}
	if !rack[1].Bypass || rack[2].Sidechain.SourceID != "comp" || rack[2].Sidechain.Mode != SidechainInternal {
		t.Fatalf("rack = %+v", rack)
	}
	if rack.Index("lim") != 2 || rack.Index("nope") != -1 {
		t.Fatal("Index mismatch")
	}

	data, err := json.Marshal(rack)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"type":"PARAMETRIC_EQ"`) {
		t.Fatalf("encoded rack: %s", data)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw[0]["sidechain"]; ok {
		t.Fatalf("zero sidechain was encoded: %s", data)
	}

	again, err := ParseRack(data)
	if err != nil || len(again) != 3 || again[2].Sidechain != rack[2].Sidechain {
		t.Fatalf("re-parse: %+v, %v", again, err)
	}
}

func TestParseRackErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want error
	}{
		{"duplicate", `[{"id":"a","type":"CHORUS"},{"id":"a","type":"PHASER"}]`, ErrDuplicateID},
		{"empty id", `[{"id":"","type":"CHORUS"}]`, ErrEmptyID},
		{"unknown type", `[{"id":"a","type":"REVERB"}]`, ErrUnknownModuleType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseRack([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ParseRack([]byte(`{`)); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}

func TestRackYAML(t *testing.T) {
	t.Parallel()

	src := `
- id: wah
  type: AUTOWAH
  parameters:
    Q: 4
- id: meter
  type: LOUDNESS_METER
`
	var rack Rack
	if err := yaml.Unmarshal([]byte(src), &rack); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if err := rack.Validate(); err != nil {
		t.Fatal(err)
	}
	if rack[0].Type != TypeAutoWah || rack[0].Parameters["Q"] != 4 || rack[1].Type != TypeLoudnessMeter {
		t.Fatalf("rack = %+v", rack)
	}
}

func TestRackClone(t *testing.T) {
	t.Parallel()

	rack := Rack{{ID: "a", Type: TypeChorus, Parameters: map[string]float64{"wet": 1}}}
	clone := rack.Clone()
	clone[0].Parameters["wet"] = 0

	if rack[0].Parameters["wet"] != 1 {
		t.Fatal("Clone shares parameter maps")
	}
	if Rack(nil).Clone() != nil {
		t.Fatal("Clone of nil rack should be nil")
	}
}
