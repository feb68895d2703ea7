package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/filter/crossover"
)

// Band indexes the three bands of a [Multiband] compressor.
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh

	// NumBands is the number of bands.
	NumBands = 3
)

const (
	defaultMultibandLowFreq  = 150.0
	defaultMultibandHighFreq = 2500.0
)

type multibandChannel struct {
	split   *crossover.ThreeBand
	scSplit *crossover.ThreeBand
}

// Multiband is a three-band compressor. Programme and sidechain are split
// by their own crossover pairs; each band runs a VCA [GainComputer] driven
// by the matching sidechain band, and the compressed bands are summed.
type Multiband struct {
	bands    [NumBands]GainComputer
	makeupDB [NumBands]float64
	makeup   [NumBands]float64
	linked   bool

	channels  []multibandChannel
	reduction [][NumBands]float64
}

// NewMultiband returns a multiband compressor with splits at 150 Hz and
// 2.5 kHz and the [GainComputer] defaults on every band.
func NewMultiband(sampleRate float64, channels int) (*Multiband, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if channels <= 0 {
		return nil, fmt.Errorf("dynamics: channel count must be positive: %d", channels)
	}

	m := &Multiband{
		channels:  make([]multibandChannel, channels),
		reduction: make([][NumBands]float64, channels),
	}
	for b := range m.bands {
		m.bands[b].init(sampleRate)
		m.makeup[b] = 1
	}

	for ch := range m.channels {
		split, err := crossover.NewThreeBand(defaultMultibandLowFreq, defaultMultibandHighFreq, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("dynamics: multiband crossover: %w", err)
		}
		scSplit, err := crossover.NewThreeBand(defaultMultibandLowFreq, defaultMultibandHighFreq, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("dynamics: multiband sidechain crossover: %w", err)
		}
		m.channels[ch] = multibandChannel{split: split, scSplit: scSplit}
	}

	return m, nil
}

// Band returns the gain computer of band b for configuration.
func (m *Multiband) Band(b Band) *GainComputer { return &m.bands[b] }

// SetBandMakeup sets the makeup gain of band b in dB.
func (m *Multiband) SetBandMakeup(b Band, db float64) {
	if !core.IsFinite(db) {
		db = 0
	}
	m.makeupDB[b] = db
	m.makeup[b] = core.DBToLinear(db)
}

// BandMakeup returns the makeup gain of band b in dB.
func (m *Multiband) BandMakeup(b Band) float64 { return m.makeupDB[b] }

// SetCrossovers moves both split points on programme and sidechain paths.
func (m *Multiband) SetCrossovers(lowFreq, highFreq float64) {
	for i := range m.channels {
		m.channels[i].split.SetCutoffs(lowFreq, highFreq)
		m.channels[i].scSplit.SetCutoffs(lowFreq, highFreq)
	}
}

// Crossovers returns the current split frequencies.
func (m *Multiband) Crossovers() (lowFreq, highFreq float64) {
	return m.channels[0].split.Cutoffs()
}

// SetLinked selects linked or independent channel detection per band.
func (m *Multiband) SetLinked(linked bool) { m.linked = linked }

// BandReduction returns the largest gain reduction of band b in dB.
func (m *Multiband) BandReduction(b Band) float64 {
	r := 0.0
	for ch := range m.reduction {
		if v := m.reduction[ch][b]; v > r {
			r = v
		}
	}
	return r
}

// GainReduction returns the largest gain reduction over all bands.
func (m *Multiband) GainReduction() float64 {
	r := 0.0
	for b := Band(0); b < NumBands; b++ {
		if v := m.BandReduction(b); v > r {
			r = v
		}
	}
	return r
}

// ProcessFrame compresses one frame in place.
func (m *Multiband) ProcessFrame(frame, sidechain []float64) {
	n := len(frame)
	if n > len(m.channels) {
		n = len(m.channels)
	}

	var prog, det [2][NumBands]float64
	if n > len(prog) || !m.linked {
		for ch := range n {
			m.processChannel(ch, frame, sidechain)
		}
		return
	}

	// Linked: the loudest channel per band drives a shared reduction.
	var peak [NumBands]float64
	for ch := range n {
		st := &m.channels[ch]
		prog[ch][0], prog[ch][1], prog[ch][2] = st.split.ProcessSample(frame[ch])
		det[ch][0], det[ch][1], det[ch][2] = st.scSplit.ProcessSample(pick(sidechain, ch, frame[ch]))
		for b := range NumBands {
			if d := abs(det[ch][b]); d > peak[b] {
				peak[b] = d
			}
		}
	}

	for b := range NumBands {
		r := m.bands[b].Next(m.reduction[0][b], peak[b])
		for ch := range n {
			m.reduction[ch][b] = r
		}
	}

	for ch := range n {
		sum := 0.0
		for b := range NumBands {
			sum += prog[ch][b] * ReductionGain(m.reduction[ch][b]) * m.makeup[b]
		}
		frame[ch] = sum
	}
}

func (m *Multiband) processChannel(ch int, frame, sidechain []float64) {
	st := &m.channels[ch]
	var prog, det [NumBands]float64
	prog[0], prog[1], prog[2] = st.split.ProcessSample(frame[ch])
	det[0], det[1], det[2] = st.scSplit.ProcessSample(pick(sidechain, ch, frame[ch]))

	sum := 0.0
	for b := range NumBands {
		r := m.bands[b].Next(m.reduction[ch][b], det[b])
		m.reduction[ch][b] = r
		sum += prog[b] * ReductionGain(r) * m.makeup[b]
	}
	frame[ch] = sum
}

// ResetBallistics clears gain reduction on every band.
func (m *Multiband) ResetBallistics() {
	for ch := range m.reduction {
		m.reduction[ch] = [NumBands]float64{}
	}
}

// Reset clears all crossover and ballistics state.
func (m *Multiband) Reset() {
	m.ResetBallistics()
	for i := range m.channels {
		m.channels[i].split.Reset()
		m.channels[i].scSplit.Reset()
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
