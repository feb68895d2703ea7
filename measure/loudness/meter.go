package loudness

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/filter/weighting"
)

const (
	// Integration window durations in seconds.
	momentaryDuration = 0.4
	shortTermDuration = 3.0

	// Gating blocks are momentary windows taken every 100 ms (75% overlap).
	blockStepDuration = 0.1

	absThreshold = -70.0
	relThreshold = -10.0

	// The gating histogram covers [absThreshold, histogramTop) in
	// histogramResolution LU steps.
	histogramTop        = 10.0
	histogramResolution = 0.1
	histogramBins       = int((histogramTop - absThreshold) / histogramResolution)

	// Floor reported for silence, in LUFS.
	Floor = -120.0
)

// Reading is a snapshot of a [Meter].
type Reading struct {
	Momentary    float64   `json:"momentary"`
	ShortTerm    float64   `json:"shortTerm"`
	Integrated   float64   `json:"integrated"`
	MomentaryMax float64   `json:"momentaryMax"`
	ShortTermMax float64   `json:"shortTermMax"`
	Peaks        []float64 `json:"peaks"`
}

// Meter implements BS.1770-style loudness metering: K-weighted momentary
// (400 ms) and short-term (3 s) loudness, gated integrated loudness and
// sample peaks.
//
// Processing never allocates. Gating blocks are accumulated in a fixed
// histogram, so integrated loudness is exact in energy and resolves the
// relative gate to 0.1 LU.
type Meter struct {
	sampleRate float64
	channels   int

	weights []*weighting.K

	// Squared K-weighted samples for the sliding windows.
	momWindow    int
	shortWindow  int
	momHistory   [][]float64
	shortHistory [][]float64
	momPos       int
	shortPos     int
	momSums      []float64
	shortSums    []float64
	filled       int

	integrating bool
	step        int
	sinceStep   int
	gateCount   [histogramBins]int
	gateEnergy  [histogramBins]float64

	momMax   float64
	shortMax float64
	peaks    []float64

	frame []float64
}

// NewMeter creates a loudness meter with the given options. Integration is
// running from the start unless [WithIntegrationPaused] is given.
func NewMeter(opts ...MeterOption) (*Meter, error) {
	cfg := applyMeterOptions(opts...)

	m := &Meter{
		sampleRate:  cfg.SampleRate,
		channels:    cfg.Channels,
		weights:     make([]*weighting.K, cfg.Channels),
		momWindow:   max(int(math.Round(momentaryDuration*cfg.SampleRate)), 1),
		shortWindow: max(int(math.Round(shortTermDuration*cfg.SampleRate)), 1),
		step:        max(int(math.Round(blockStepDuration*cfg.SampleRate)), 1),
		integrating: cfg.integrate,
	}

	m.momHistory = make([][]float64, m.channels)
	m.shortHistory = make([][]float64, m.channels)
	for ch := range m.channels {
		k, err := weighting.NewK(m.sampleRate)
		if err != nil {
			return nil, fmt.Errorf("loudness: %w", err)
		}
		m.weights[ch] = k
		m.momHistory[ch] = make([]float64, m.momWindow)
		m.shortHistory[ch] = make([]float64, m.shortWindow)
	}
	m.momSums = make([]float64, m.channels)
	m.shortSums = make([]float64, m.channels)
	m.peaks = make([]float64, m.channels)
	m.frame = make([]float64, m.channels)

	m.Reset()

	return m, nil
}

// Channels returns the number of metered channels.
func (m *Meter) Channels() int { return m.channels }

// Reset clears all integration state and peak values.
func (m *Meter) Reset() {
	for ch := range m.channels {
		m.weights[ch].Reset()
		clear(m.momHistory[ch])
		clear(m.shortHistory[ch])
		m.momSums[ch] = 0
		m.shortSums[ch] = 0
		m.peaks[ch] = 0
	}

	m.momPos = 0
	m.shortPos = 0
	m.filled = 0
	m.sinceStep = 0
	m.gateCount = [histogramBins]int{}
	m.gateEnergy = [histogramBins]float64{}
	m.momMax = Floor
	m.shortMax = Floor
}

// StartIntegration resumes accumulating gating blocks.
func (m *Meter) StartIntegration() {
	m.integrating = true
}

// StopIntegration pauses accumulating gating blocks. Momentary and
// short-term loudness keep updating.
func (m *Meter) StopIntegration() {
	m.integrating = false
}

// ProcessFrame meters one frame holding one sample per channel. Frames
// shorter than the channel count are ignored.
func (m *Meter) ProcessFrame(frame []float64) {
	if len(frame) < m.channels {
		return
	}

	for ch := range m.channels {
		x := frame[ch]
		if a := math.Abs(x); a > m.peaks[ch] {
			m.peaks[ch] = a
		}

		v := m.weights[ch].ProcessSample(x)
		sq := v * v

		m.momSums[ch] += sq - m.momHistory[ch][m.momPos]
		m.momHistory[ch][m.momPos] = sq
		if m.momSums[ch] < 0 {
			m.momSums[ch] = 0
		}

		m.shortSums[ch] += sq - m.shortHistory[ch][m.shortPos]
		m.shortHistory[ch][m.shortPos] = sq
		if m.shortSums[ch] < 0 {
			m.shortSums[ch] = 0
		}
	}

	m.momPos++
	if m.momPos == m.momWindow {
		m.momPos = 0
	}
	m.shortPos++
	if m.shortPos == m.shortWindow {
		m.shortPos = 0
	}
	if m.filled < m.shortWindow {
		m.filled++
	}

	m.sinceStep++
	if m.sinceStep >= m.step {
		m.sinceStep = 0
		m.stepBlock()
	}
}

// stepBlock runs every 100 ms: it updates the loudness maxima and, once the
// momentary window is full, adds a gating block.
func (m *Meter) stepBlock() {
	if m.filled < m.momWindow {
		return
	}

	ms := m.meanSquare(m.momSums, m.momWindow)
	m.momMax = max(m.momMax, toLUFS(ms))
	if m.filled >= m.shortWindow {
		m.shortMax = max(m.shortMax, m.ShortTerm())
	}

	if !m.integrating {
		return
	}
	l := toLUFS(ms)
	if l <= absThreshold {
		return
	}
	bin := min(int((l-absThreshold)/histogramResolution), histogramBins-1)
	m.gateCount[bin]++
	m.gateEnergy[bin] += ms
}

// ProcessBlock meters a block of interleaved samples.
func (m *Meter) ProcessBlock(block []float64) {
	for i := 0; i+m.channels <= len(block); i += m.channels {
		m.ProcessFrame(block[i : i+m.channels])
	}
}

// ProcessChannels meters a planar block, one slice per channel. Channels
// beyond len(block) or shorter than the longest slice read as silence.
func (m *Meter) ProcessChannels(block [][]float64) {
	frames := 0
	for _, c := range block {
		frames = max(frames, len(c))
	}
	frame := m.frame
	for i := range frames {
		for ch := range frame {
			frame[ch] = 0
			if ch < len(block) && i < len(block[ch]) {
				frame[ch] = block[ch][i]
			}
		}
		m.ProcessFrame(frame)
	}
}

func (m *Meter) meanSquare(sums []float64, window int) float64 {
	total := 0.0
	for _, s := range sums {
		total += s / float64(window)
	}
	return total
}

// Momentary returns the current momentary loudness in LUFS.
func (m *Meter) Momentary() float64 {
	return toLUFS(m.meanSquare(m.momSums, m.momWindow))
}

// ShortTerm returns the current short-term loudness in LUFS.
func (m *Meter) ShortTerm() float64 {
	return toLUFS(m.meanSquare(m.shortSums, m.shortWindow))
}

// MomentaryMax returns the largest momentary loudness since Reset.
func (m *Meter) MomentaryMax() float64 { return m.momMax }

// ShortTermMax returns the largest short-term loudness since Reset, taken
// once three seconds have been metered.
func (m *Meter) ShortTermMax() float64 { return m.shortMax }

// Integrated returns the gated integrated loudness in LUFS, or -Inf when no
// block passed the gates.
func (m *Meter) Integrated() float64 {
	count := 0
	energy := 0.0
	for i := range histogramBins {
		count += m.gateCount[i]
		energy += m.gateEnergy[i]
	}
	if count == 0 {
		return math.Inf(-1)
	}

	gate := toLUFS(energy/float64(count)) + relThreshold

	count = 0
	energy = 0
	for i := range histogramBins {
		upper := absThreshold + float64(i+1)*histogramResolution
		if upper <= gate {
			continue
		}
		count += m.gateCount[i]
		energy += m.gateEnergy[i]
	}
	if count == 0 {
		return math.Inf(-1)
	}

	return toLUFS(energy / float64(count))
}

// Peaks returns the maximum absolute sample value per channel since Reset.
func (m *Meter) Peaks() []float64 {
	p := make([]float64, m.channels)
	copy(p, m.peaks)

	return p
}

// Reading returns all current values. Integrated loudness without gated
// blocks reads as [Floor] so that readings always encode as JSON.
func (m *Meter) Reading() Reading {
	return Reading{
		Momentary:    m.Momentary(),
		ShortTerm:    m.ShortTerm(),
		Integrated:   max(m.Integrated(), Floor),
		MomentaryMax: m.momMax,
		ShortTermMax: m.shortMax,
		Peaks:        m.Peaks(),
	}
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return Floor
	}

	return max(-0.691+10.0*math.Log10(meanSquare), Floor)
}
