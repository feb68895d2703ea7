package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"

	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/engine"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return path
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	cfg := New()
	if cfg.Engine != engine.DefaultConfig() {
		t.Fatalf("engine = %+v", cfg.Engine)
	}

	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "masterfx.yaml", `
engine:
  blockSize: 256
logLevel: debug
rack:
  - id: comp
    type: COMPRESSOR
    parameters:
      threshold: -18
  - id: lim
    type: LIMITER
impulseResponses:
  - irs/room.wav
  - /abs/hall.wav
automation: fade.lua
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Engine.BlockSize != 256 || cfg.Engine.SampleRate != 48000 || cfg.Engine.Channels != 2 {
		t.Fatalf("engine = %+v", cfg.Engine)
	}

	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}

	if len(cfg.Rack) != 2 || cfg.Rack[0].Type != effectchain.TypeCompressor || cfg.Rack[0].Parameters["threshold"] != -18 {
		t.Fatalf("rack = %+v", cfg.Rack)
	}

	wantIR := []string{filepath.Join(dir, "irs/room.wav"), "/abs/hall.wav"}
	for i, want := range wantIR {
		if cfg.ImpulseResponses[i] != want {
			t.Fatalf("ir[%d] = %q, want %q", i, cfg.ImpulseResponses[i], want)
		}
	}

	if cfg.Automation != filepath.Join(dir, "fade.lua") {
		t.Fatalf("automation = %q", cfg.Automation)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "engine: [1, 2"},
		{"bad engine", "engine:\n  channels: 0\n"},
		{"bad level", "logLevel: chatty\n"},
		{"unknown type", "rack:\n  - id: x\n    type: FLANGER\n"},
		{"duplicate id", "rack:\n  - id: x\n    type: CHORUS\n  - id: x\n    type: PHASER\n"},
		{"rack and file", "rackFile: r.json\nrack:\n  - id: x\n    type: CHORUS\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "cfg.yaml", tt.content)
			if _, err := Load(path); err == nil {
				t.Fatalf("Load accepted %q", tt.content)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}

func TestLoadRackFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "rack.json", `[{"id":"eq","type":"PARAMETRIC_EQ","parameters":{"lowGain":3}},{"id":"m","type":"LOUDNESS_METER"}]`)
	path := writeFile(t, dir, "cfg.yaml", "rackFile: rack.json\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rack, err := cfg.LoadRack()
	if err != nil {
		t.Fatalf("LoadRack: %v", err)
	}

	if len(rack) != 2 || rack[0].ID != "eq" || rack[0].Parameters["lowGain"] != 3 {
		t.Fatalf("rack = %+v", rack)
	}
}

func TestLoadRackInlineIsCopied(t *testing.T) {
	t.Parallel()

	cfg := New()
	cfg.Rack = effectchain.Rack{{ID: "c", Type: effectchain.TypeChorus, Parameters: map[string]float64{"wet": 1}}}

	rack, err := cfg.LoadRack()
	if err != nil {
		t.Fatal(err)
	}

	rack[0].Parameters["wet"] = 0
	if cfg.Rack[0].Parameters["wet"] != 1 {
		t.Fatal("LoadRack returned an alias of the configured rack")
	}
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := ExpandPath("~/racks/master.json")
	if err != nil {
		t.Fatal(err)
	}

	if want := filepath.Join(home, "racks/master.json"); got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}

	if got, _ := ExpandPath("plain.json"); got != "plain.json" {
		t.Fatalf("ExpandPath(plain) = %q", got)
	}
}
