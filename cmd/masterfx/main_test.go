package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-master/internal/audiofile"
	"github.com/cwbudde/algo-master/internal/testutil"
)

const testRack = `[
  {"id": "eq", "type": "PARAMETRIC_EQ"},
  {"id": "lim", "type": "LIMITER", "parameters": {"threshold": 0, "ceiling": 0}}
]`

func writeSine(t *testing.T, path string, rate, frames int) *audiofile.Audio {
	t.Helper()

	a := &audiofile.Audio{
		SampleRate: rate,
		Channels: testutil.Stereo(
			testutil.DeterministicSine(440, float64(rate), 0.25, frames),
			testutil.DeterministicSine(660, float64(rate), 0.25, frames),
		),
	}
	if err := audiofile.Write(path, a, 24); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return a
}

func writeText(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestRunUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"normalize"}},
		{"render without input", []string{"render"}},
		{"meter without input", []string{"meter"}},
		{"play without input", []string{"play"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, stderr, err := runCmd(t, tt.args...)
			if !errors.Is(err, errUsage) {
				t.Fatalf("err = %v, want usage error", err)
			}

			if !strings.Contains(stderr, "Usage:") {
				t.Fatalf("usage not printed: %q", stderr)
			}
		})
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	t.Parallel()

	if _, _, err := runCmd(t, "-log-level", "chatty", "modules"); err == nil {
		t.Fatal("accepted an invalid log level")
	}

	if _, _, err := runCmd(t, "-config", filepath.Join(t.TempDir(), "none.yaml"), "modules"); err == nil {
		t.Fatal("accepted a missing config file")
	}
}

func TestModules(t *testing.T) {
	t.Parallel()

	out, _, err := runCmd(t, "modules")
	if err != nil {
		t.Fatalf("modules: %v", err)
	}

	for _, want := range []string{"COMPRESSOR", "threshold", "MULTIBAND_COMPRESSOR", "threshLow", "LOUDNESS_METER"} {
		if !strings.Contains(out, want) {
			t.Fatalf("modules output lacks %q", want)
		}
	}

	out, _, err = runCmd(t, "modules", "-json")
	if err != nil {
		t.Fatalf("modules -json: %v", err)
	}

	var infos []struct {
		Type       string `json:"type"`
		Parameters []struct {
			Name string `json:"name"`
		} `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(infos) != 20 || infos[0].Type != "COMPRESSOR" || len(infos[0].Parameters) != 9 {
		t.Fatalf("infos = %+v", infos)
	}
}

func TestMeter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.wav")
	writeSine(t, path, 48000, 48000*2)

	out, _, err := runCmd(t, "meter", path)
	if err != nil {
		t.Fatalf("meter: %v", err)
	}

	if !strings.Contains(out, "integrated") || !strings.Contains(out, "LUFS") {
		t.Fatalf("meter output = %q", out)
	}

	out, _, err = runCmd(t, "meter", "-json", path)
	if err != nil {
		t.Fatalf("meter -json: %v", err)
	}

	var r struct {
		File       string    `json:"file"`
		Integrated float64   `json:"integrated"`
		Peaks      []float64 `json:"peaks"`
	}
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}

	if r.File != path || r.Integrated < -30 || r.Integrated > -5 || len(r.Peaks) != 2 {
		t.Fatalf("reading = %+v", r)
	}

	if r.Peaks[0] < 0.24 || r.Peaks[0] > 0.26 {
		t.Fatalf("peak = %v, want about 0.25", r.Peaks[0])
	}
}

func TestRenderSingle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "mix.wav")
	out := filepath.Join(dir, "master.wav")
	rack := filepath.Join(dir, "rack.json")
	src := writeSine(t, in, 48000, 9600)
	writeText(t, rack, testRack)

	stdout, _, err := runCmd(t, "-log-level", "error", "render", "-rack", rack, "-o", out, in)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(stdout, in+" -> "+out) || !strings.Contains(stdout, "LUFS") {
		t.Fatalf("render output = %q", stdout)
	}

	got, err := audiofile.Read(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if got.Frames() != src.Frames() || len(got.Channels) != 2 {
		t.Fatalf("output has %d frames, %d channels", got.Frames(), len(got.Channels))
	}

	// Latency is compensated, so the transparent rack reproduces the input.
	for ch := range got.Channels {
		testutil.RequireFinite(t, got.Channels[ch])
		testutil.RequireSliceNearlyEqual(t, got.Channels[ch][1000:9000], src.Channels[ch][1000:9000], 1e-3)
	}
}

func TestRenderBatchWithConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outDir := filepath.Join(dir, "mastered")
	inputs := []string{filepath.Join(dir, "a.wav"), filepath.Join(dir, "b.wav"), filepath.Join(dir, "c.wav")}
	for _, in := range inputs {
		writeSine(t, in, 44100, 4410)
	}

	writeText(t, filepath.Join(dir, "ramp.lua"), `ramp(0, duration, "sat", "outputGain", 0, -6)`)
	cfg := filepath.Join(dir, "masterfx.yaml")
	writeText(t, cfg, `
engine:
  blockSize: 64
logLevel: error
automation: ramp.lua
rack:
  - id: sat
    type: SATURATION
  - id: meter
    type: LOUDNESS_METER
`)

	args := append([]string{"-config", cfg, "render", "-o", outDir, "-bits", "16"}, inputs...)
	stdout, _, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("render printed %d lines: %q", len(lines), stdout)
	}

	for i, in := range inputs {
		want := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(in), ".wav")+".wav")
		if !strings.HasPrefix(lines[i], in+" -> "+want) {
			t.Fatalf("line %d = %q", i, lines[i])
		}

		got, err := audiofile.Read(want)
		if err != nil {
			t.Fatalf("read %s: %v", want, err)
		}

		// 44.1 kHz input is rendered at the 48 kHz session rate.
		if got.SampleRate != 48000 || got.Frames() != 4800 {
			t.Fatalf("%s: %d Hz, %d frames", want, got.SampleRate, got.Frames())
		}
	}
}

func TestRenderMissingInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, _, err := runCmd(t, "-log-level", "error", "render", filepath.Join(dir, "none.wav")); err == nil {
		t.Fatal("render accepted a missing input")
	}
}

func TestPlanRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		inputs  []string
		out     string
		want    []string
		wantErr bool
	}{
		{
			name:   "single to file",
			inputs: []string{"in/mix.wav"},
			out:    filepath.Join(dir, "x.wav"),
			want:   []string{filepath.Join(dir, "x.wav")},
		},
		{
			name:   "single beside input",
			inputs: []string{"in/mix.mp3"},
			want:   []string{filepath.Join("in", "mix-mastered.wav")},
		},
		{
			name:   "single into existing directory",
			inputs: []string{"in/mix.wav"},
			out:    dir,
			want:   []string{filepath.Join(dir, "mix.wav")},
		},
		{
			name:   "batch into directory",
			inputs: []string{"a/one.wav", "b/two.mp3"},
			out:    filepath.Join(dir, "batch"),
			want:   []string{filepath.Join(dir, "batch", "one.wav"), filepath.Join(dir, "batch", "two.wav")},
		},
		{
			name:    "batch collision",
			inputs:  []string{"a/mix.wav", "b/mix.wav"},
			out:     filepath.Join(dir, "clash"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			work, err := planRender(tt.inputs, tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				return
			}

			for i, job := range work {
				if job.in != tt.inputs[i] || job.out != tt.want[i] {
					t.Fatalf("job %d = %+v, want out %q", i, job, tt.want[i])
				}
			}
		})
	}
}
