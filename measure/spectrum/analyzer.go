package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-master/dsp/window"
)

// FloorDB is the level reported for empty bins and bands.
const FloorDB = -140.0

// Band is one log-spaced analysis band. Level is the mean bin power in the
// band, in dB relative to a full-scale sine.
type Band struct {
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Centre float64 `json:"centre"`
	Level  float64 `json:"level"`

	first, last int
}

// Analyzer keeps the most recent Size mono samples and computes their
// spectrum on demand. Write never allocates; Analyze works on buffers
// allocated at construction.
type Analyzer struct {
	size       int
	sampleRate float64

	// norm scales bin power so a bin-centred full-scale sine reads 0 dB.
	plan   *algofft.Plan[complex128]
	window []float64
	norm   float64

	ring []float64
	pos  int

	frame []float64
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	power []float64
	binDB []float64
	bands []Band
}

// NewAnalyzer returns an analyser with a 2048-point Hann window at 48 kHz
// and 32 bands from 20 Hz, unless configured otherwise.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	plan, err := algofft.NewPlan64(cfg.size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}
	w, err := window.Generate(cfg.window, cfg.size, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	bins := cfg.size/2 + 1
	amp := float64(cfg.size) * window.CoherentGain(w) / 2

	a := &Analyzer{
		size:       cfg.size,
		sampleRate: cfg.sampleRate,
		plan:       plan,
		window:     w,
		norm:       1 / (amp * amp),
		ring:       make([]float64, cfg.size),
		frame:      make([]float64, cfg.size),
		in:         make([]complex128, cfg.size),
		out:        make([]complex128, cfg.size),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		power:      make([]float64, bins),
		binDB:      make([]float64, bins),
	}
	a.bands = a.layoutBands(cfg.bands, cfg.lowBand)
	a.Reset()

	return a, nil
}

// layoutBands splits [lowHz, Nyquist] into n bands of equal width in
// octaves. Bands narrower than a bin still cover at least one bin.
func (a *Analyzer) layoutBands(n int, lowHz float64) []Band {
	nyquist := a.sampleRate / 2
	lowHz = min(lowHz, nyquist/2)
	ratio := math.Pow(nyquist/lowHz, 1/float64(n))

	bands := make([]Band, n)
	lo := lowHz
	for i := range bands {
		hi := lo * ratio
		if i == n-1 {
			hi = nyquist
		}
		first := min(int(math.Ceil(lo/a.BinWidth())), a.size/2)
		last := max(int(math.Floor(hi/a.BinWidth())), first)
		bands[i] = Band{
			Low:    lo,
			High:   hi,
			Centre: math.Sqrt(lo * hi),
			Level:  FloorDB,
			first:  first,
			last:   min(last, a.size/2),
		}
		lo = hi
	}
	return bands
}

// Size returns the FFT size.
func (a *Analyzer) Size() int { return a.size }

// BinWidth returns the bin spacing in Hz.
func (a *Analyzer) BinWidth() float64 { return a.sampleRate / float64(a.size) }

// BinFrequency returns the centre frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int) float64 { return float64(k) * a.BinWidth() }

// Write appends one frame; channels are averaged to mono.
func (a *Analyzer) Write(frame []float64) {
	if len(frame) == 0 {
		return
	}
	sum := 0.0
	for _, v := range frame {
		sum += v
	}
	a.ring[a.pos] = sum / float64(len(frame))
	a.pos++
	if a.pos == a.size {
		a.pos = 0
	}
}

// WriteSamples appends mono samples.
func (a *Analyzer) WriteSamples(samples []float64) {
	for _, v := range samples {
		a.ring[a.pos] = v
		a.pos++
		if a.pos == a.size {
			a.pos = 0
		}
	}
}

// Analyze transforms the most recent Size samples and updates the bin and
// band levels.
func (a *Analyzer) Analyze() {
	n := copy(a.frame, a.ring[a.pos:])
	copy(a.frame[n:], a.ring[:a.pos])

	// Lengths match by construction.
	_ = window.ApplyInPlace(a.frame, a.window)
	for i, v := range a.frame {
		a.in[i] = complex(v, 0)
	}
	_ = a.plan.Forward(a.out, a.in)

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}
	vecmath.Power(a.power, a.re, a.im)

	// Interior bins carry half of a real sinusoid's energy; DC and Nyquist
	// carry all of it.
	last := len(a.power) - 1
	for k, p := range a.power {
		p *= a.norm
		if k == 0 || k == last {
			p /= 4
		}
		a.power[k] = p
		a.binDB[k] = powerDB(p)
	}

	for i := range a.bands {
		b := &a.bands[i]
		sum := 0.0
		for k := b.first; k <= b.last; k++ {
			sum += a.power[k]
		}
		b.Level = powerDB(sum / float64(b.last-b.first+1))
	}
}

// Bins returns the bin levels of the last analysis in dB.
func (a *Analyzer) Bins() []float64 {
	out := make([]float64, len(a.binDB))
	copy(out, a.binDB)
	return out
}

// Bands returns the band levels of the last analysis.
func (a *Analyzer) Bands() []Band {
	out := make([]Band, len(a.bands))
	copy(out, a.bands)
	return out
}

// Reset clears the sample history and the last analysis.
func (a *Analyzer) Reset() {
	clear(a.ring)
	a.pos = 0
	for k := range a.binDB {
		a.power[k] = 0
		a.binDB[k] = FloorDB
	}
	for i := range a.bands {
		a.bands[i].Level = FloorDB
	}
}

func powerDB(p float64) float64 {
	if !(p > 0) {
		return FloorDB
	}
	return max(10*math.Log10(p), FloorDB)
}
