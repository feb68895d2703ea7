package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/engine"
	"github.com/cwbudde/algo-master/internal/audiofile"
	"github.com/cwbudde/algo-master/internal/automation"
)

type renderJob struct {
	in, out string
	summary string
}

func (a *app) render(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	rackPath := fs.String("rack", "", "JSON rack file (overrides the config)")
	out := fs.String("o", "", "output file, or directory when rendering several inputs")
	bits := fs.Int("bits", 24, "output bit depth: 16, 24 or 32")
	jobs := fs.Int("j", runtime.NumCPU(), "files rendered in parallel")
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: masterfx render [flags] input.wav [input2.wav ...]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	rack, err := a.rack(*rackPath)
	if err != nil {
		return err
	}
	reg, err := a.registry()
	if err != nil {
		return err
	}

	work, err := planRender(fs.Args(), *out)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*jobs, 1))
	for _, job := range work {
		g.Go(func() error {
			summary, err := a.renderFile(gctx, reg, rack, job.in, job.out, *bits)
			if err != nil {
				return fmt.Errorf("%s: %w", job.in, err)
			}
			job.summary = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, job := range work {
		fmt.Fprintf(a.stdout, "%s -> %s: %s\n", job.in, job.out, job.summary)
	}
	return nil
}

// planRender pairs every input with its output path. A single input writes
// to out, or next to the input when out is empty; several inputs write
// into the directory out.
func planRender(inputs []string, out string) ([]*renderJob, error) {
	work := make([]*renderJob, len(inputs))
	if len(inputs) == 1 && out != "" && !strings.HasSuffix(out, string(filepath.Separator)) {
		if info, err := os.Stat(out); err != nil || !info.IsDir() {
			work[0] = &renderJob{in: inputs[0], out: out}
			return work, nil
		}
	}

	if out != "" {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
	}

	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		var path string
		if out == "" {
			path = filepath.Join(filepath.Dir(in), base+"-mastered.wav")
		} else {
			path = filepath.Join(out, base+".wav")
		}
		if prev, dup := seen[path]; dup {
			return nil, fmt.Errorf("render: %s and %s both write %s", prev, in, path)
		}
		seen[path] = in
		work[i] = &renderJob{in: in, out: path}
	}
	return work, nil
}

// renderFile processes one file. The output is shifted by the chain latency
// so that it lines up with the input.
func (a *app) renderFile(ctx context.Context, reg *effectchain.Registry, rack effectchain.Rack, in, out string, bits int) (string, error) {
	src, err := a.input(in)
	if err != nil {
		return "", err
	}

	eng, err := a.newEngine(reg, rack)
	if err != nil {
		return "", err
	}

	frames := len(src[0])
	var events []engine.Event
	if a.cfg.Automation != "" {
		events, err = automation.RunFile(ctx, a.cfg.Automation, automation.Options{
			SampleRate: a.cfg.Engine.SampleRate,
			Frames:     int64(frames),
			Log:        a.log,
		})
		if err != nil {
			return "", err
		}
	}

	latency := eng.Latency()
	for ch := range src {
		src[ch] = append(src[ch], make([]float64, latency)...)
	}

	rendered, err := eng.Render(ctx, src, events)
	if err != nil {
		return "", err
	}
	for ch := range rendered {
		rendered[ch] = rendered[ch][latency:]
	}

	result := &audiofile.Audio{SampleRate: int(a.cfg.Engine.SampleRate), Channels: rendered}
	if err := audiofile.Write(out, result, bits); err != nil {
		return "", err
	}

	snap := eng.Snapshot()
	a.log.WithFields(logrus.Fields{
		"input":   in,
		"output":  out,
		"frames":  frames,
		"latency": latency,
		"events":  len(events),
		"dropped": snap.DroppedEvents,
	}).Info("rendered")

	return formatReading(snap.Loudness), nil
}
