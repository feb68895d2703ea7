package main

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/engine"
	"github.com/cwbudde/algo-master/internal/audiofile"
	"github.com/cwbudde/algo-master/internal/config"
	"github.com/cwbudde/algo-master/measure/loudness"
)

// rack returns the rack named by the -rack flag, or the configured one.
func (a *app) rack(path string) (effectchain.Rack, error) {
	if path != "" {
		return config.LoadRack(path)
	}
	return a.cfg.LoadRack()
}

// registry builds the module registry, loading the configured impulse
// responses for CAB_SIM.
func (a *app) registry() (*effectchain.Registry, error) {
	if len(a.cfg.ImpulseResponses) == 0 {
		return effectchain.DefaultRegistry(), nil
	}

	table, err := audiofile.LoadImpulseResponses(a.cfg.ImpulseResponses, int(a.cfg.Engine.SampleRate))
	if err != nil {
		return nil, err
	}
	a.log.WithField("count", len(table)).Debug("impulse responses loaded")

	return effectchain.DefaultRegistry(effectchain.WithIRProvider(table)), nil
}

func (a *app) newEngine(reg *effectchain.Registry, rack effectchain.Rack) (*engine.Engine, error) {
	eng, err := engine.New(a.cfg.Engine, engine.WithLogger(a.log), engine.WithRegistry(reg))
	if err != nil {
		return nil, err
	}
	if _, err := eng.UpdateRack(rack); err != nil {
		return nil, err
	}
	return eng, nil
}

// input decodes path and converts it to the session rate and channel count.
func (a *app) input(path string) ([][]float64, error) {
	src, err := audiofile.Read(path)
	if err != nil {
		return nil, err
	}

	rate := int(a.cfg.Engine.SampleRate)
	if src.SampleRate != rate {
		a.log.WithFields(logrus.Fields{
			"file": path,
			"from": src.SampleRate,
			"to":   rate,
		}).Info("resampling input")
		if src, err = src.Resample(rate); err != nil {
			return nil, err
		}
	}

	return src.Conform(a.cfg.Engine.Channels), nil
}

func formatReading(r loudness.Reading) string {
	peaks := ""
	for i, p := range r.Peaks {
		if i > 0 {
			peaks += " "
		}
		peaks += fmt.Sprintf("%.1f", peakDB(p))
	}
	return fmt.Sprintf("integrated %.1f LUFS, momentary max %.1f LUFS, short-term max %.1f LUFS, peak [%s] dBFS",
		r.Integrated, r.MomentaryMax, r.ShortTermMax, peaks)
}

func peakDB(p float64) float64 {
	if p <= 0 {
		return loudness.Floor
	}
	return max(20*math.Log10(p), loudness.Floor)
}
