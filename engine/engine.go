package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/measure/loudness"
	"github.com/cwbudde/algo-master/measure/spectrum"
)

// Option configures an [Engine].
type Option func(*options)

type options struct {
	log      logrus.FieldLogger
	registry *effectchain.Registry
	spectrum []spectrum.Option
}

// WithLogger sets the logger. The default is the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithRegistry sets the module registry. The default is
// [effectchain.DefaultRegistry].
func WithRegistry(r *effectchain.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithSpectrum passes options to the path spectrum analyser.
func WithSpectrum(opts ...spectrum.Option) Option {
	return func(o *options) { o.spectrum = append(o.spectrum, opts...) }
}

// Engine processes one signal path.
type Engine struct {
	cfg Config
	log logrus.FieldLogger

	mu       sync.Mutex
	chain    *effectchain.Chain
	meter    *loudness.Meter
	analyzer *spectrum.Analyzer

	events   []Event
	next     int
	position int64
	dropped  int

	frame   []float64
	views   [][]float64
	extView map[string][][]float64
}

// New creates an engine with an empty rack.
func New(cfg Config, opts ...Option) (*Engine, error) {
	o := options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	chain, err := effectchain.New(cfg.context(), o.registry)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	meter, err := loudness.NewMeter(
		loudness.WithSampleRate(cfg.SampleRate),
		loudness.WithChannels(cfg.Channels),
	)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	analyzer, err := spectrum.NewAnalyzer(append([]spectrum.Option{spectrum.WithSampleRate(cfg.SampleRate)}, o.spectrum...)...)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		log:      o.log,
		chain:    chain,
		meter:    meter,
		analyzer: analyzer,
		frame:    make([]float64, cfg.Channels),
		views:    make([][]float64, cfg.Channels),
		extView:  make(map[string][][]float64),
	}

	e.log.WithFields(logrus.Fields{
		"sample_rate": cfg.SampleRate,
		"channels":    cfg.Channels,
		"block_size":  cfg.BlockSize,
		"smoothing":   cfg.SmoothingTime,
	}).Debug("engine created")

	return e, nil
}

// Config returns the session settings.
func (e *Engine) Config() Config { return e.cfg }

// UpdateRack reconciles the signal path with rack. A rejected rack leaves
// the path as it was.
func (e *Engine) UpdateRack(rack effectchain.Rack) (effectchain.Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	report, err := e.chain.Update(rack)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"modules": len(rack),
			"error":   err,
		}).Warn("rack rejected")

		return report, err
	}

	entry := e.log.WithFields(logrus.Fields{
		"kind":      report.Kind.String(),
		"index":     report.Index,
		"connected": report.Connected,
		"created":   report.Created,
		"destroyed": report.Destroyed,
	})
	if report.Fallback {
		entry.Warn("stable prefix inconsistent, rebuilt full chain")
	} else {
		entry.Debug("rack reconciled")
	}

	return report, nil
}

// Rack returns the rack last applied.
func (e *Engine) Rack() effectchain.Rack {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.chain.Rack()
}

// SetParameter publishes a parameter target immediately. It never blocks
// on processing and reports false for unknown modules or parameters.
func (e *Engine) SetParameter(module, name string, value float64) bool {
	return e.chain.SetParameter(module, name, value)
}

// Latency returns the processing delay of the connected chain in samples.
func (e *Engine) Latency() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.chain.Latency()
}

// Position returns the number of frames processed since New or Reset.
func (e *Engine) Position() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.position
}

// Process runs one planar block through the path in place and meters the
// result. Scheduled events split the block at their exact frames. external
// carries named sidechain sources aligned with block and may be nil.
func (e *Engine) Process(block [][]float64, external effectchain.External) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.process(block, external)
}

func (e *Engine) process(block [][]float64, external effectchain.External) {
	frames := blockLen(block)
	for off := 0; off < frames; {
		e.applyDue()
		n := e.framesUntilEvent(frames - off)
		e.run(block, external, off, n)
		off += n
	}
}

// run processes frames [off, off+n) of block.
func (e *Engine) run(block [][]float64, external effectchain.External, off, n int) {
	views, ext := block, external
	if off != 0 || n != blockLen(block) {
		views = e.window(block, off, n)
		ext = e.windowExternal(external, off, n)
	}

	e.chain.Process(views, ext)

	for i := range n {
		for ch := range e.frame {
			v := 0.0
			if ch < len(views) && i < len(views[ch]) {
				v = views[ch][i]
			}
			e.frame[ch] = v
		}
		e.meter.ProcessFrame(e.frame)
		e.analyzer.Write(e.frame)
	}

	e.position += int64(n)
}

func (e *Engine) window(block [][]float64, off, n int) [][]float64 {
	if cap(e.views) < len(block) {
		e.views = make([][]float64, len(block))
	}
	views := e.views[:len(block)]
	for ch, src := range block {
		views[ch] = clip(src, off, n)
	}
	return views
}

func (e *Engine) windowExternal(external effectchain.External, off, n int) effectchain.External {
	if len(external) == 0 {
		return nil
	}

	out := effectchain.External(e.extView)
	for name, src := range external {
		views := out[name]
		if cap(views) < len(src) {
			views = make([][]float64, len(src))
		}
		views = views[:len(src)]
		for ch := range src {
			views[ch] = clip(src[ch], off, n)
		}
		out[name] = views
	}
	for name := range out {
		if _, ok := external[name]; !ok {
			delete(out, name)
		}
	}
	return out
}

func clip(src []float64, off, n int) []float64 {
	if off >= len(src) {
		return nil
	}
	return src[off:min(off+n, len(src))]
}

func blockLen(block [][]float64) int {
	frames := 0
	for _, ch := range block {
		frames = max(frames, len(ch))
	}
	return frames
}

// Render processes a whole source offline and returns the result; src is
// not modified. events are scheduled first. The source is processed in
// session-size blocks exactly as a real-time host would, and ctx is checked
// between blocks.
func (e *Engine) Render(ctx context.Context, src [][]float64, events []Event) ([][]float64, error) {
	frames := blockLen(src)
	out := core.NewBlock(len(src), frames)
	for ch := range src {
		copy(out[ch], src[ch])
	}

	e.Schedule(events...)

	views := make([][]float64, len(out))
	for off := 0; off < frames; off += e.cfg.BlockSize {
		err := ctx.Err()
		if err != nil {
			return nil, fmt.Errorf("engine: render cancelled at frame %d: %w", off, err)
		}

		end := min(off+e.cfg.BlockSize, frames)
		for ch := range out {
			views[ch] = out[ch][off:end]
		}
		e.Process(views, nil)
	}

	e.log.WithFields(logrus.Fields{
		"frames":   frames,
		"channels": len(src),
		"dropped":  e.droppedEvents(),
	}).Debug("render finished")

	return out, nil
}

func (e *Engine) droppedEvents() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.dropped
}

// Reset clears all signal state, the meters, the automation queue and the
// position. The rack is kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.chain.Reset()
	e.meter.Reset()
	e.analyzer.Reset()
	e.events = nil
	e.next = 0
	e.position = 0
	e.dropped = 0
}
