package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/filter/crossover"
)

const (
	defaultDeEsserFreq      = 6000.0
	defaultDeEsserThreshold = -20.0
	defaultDeEsserRatio     = 4.0
	defaultDeEsserAttack    = 0.005
	defaultDeEsserRelease   = 0.05
)

type deEsserChannel struct {
	split   *crossover.Crossover
	scSplit *crossover.Crossover
}

// DeEsser is frequency-selective dynamics: the programme is split at the
// sibilance frequency and only the upper band is compressed, keyed by the
// upper band of the detector signal. In monitor mode the output is the
// detector band itself, for tuning the frequency by ear.
type DeEsser struct {
	GainComputer

	freq    float64
	monitor bool

	channels  []deEsserChannel
	reduction []float64
}

// NewDeEsser returns a de-esser at 6 kHz, threshold -20 dB, ratio 4:1,
// attack 5 ms and release 50 ms.
func NewDeEsser(sampleRate float64, channels int) (*DeEsser, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if channels <= 0 {
		return nil, fmt.Errorf("dynamics: channel count must be positive: %d", channels)
	}

	d := &DeEsser{
		freq:      defaultDeEsserFreq,
		channels:  make([]deEsserChannel, channels),
		reduction: make([]float64, channels),
	}
	d.init(sampleRate)
	d.SetThreshold(defaultDeEsserThreshold)
	d.SetRatio(defaultDeEsserRatio)
	d.SetAttack(defaultDeEsserAttack)
	d.SetRelease(defaultDeEsserRelease)

	for ch := range d.channels {
		split, err := crossover.New(d.freq, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("dynamics: de-esser crossover: %w", err)
		}
		scSplit, err := crossover.New(d.freq, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("dynamics: de-esser crossover: %w", err)
		}
		d.channels[ch] = deEsserChannel{split: split, scSplit: scSplit}
	}

	return d, nil
}

// SetFrequency moves the split frequency in Hz.
func (d *DeEsser) SetFrequency(freq float64) {
	if freq == d.freq {
		return
	}
	for i := range d.channels {
		d.channels[i].split.SetCutoff(freq)
		d.channels[i].scSplit.SetCutoff(freq)
	}
	d.freq = d.channels[0].split.Freq()
}

// SetMonitor switches the output to the detector band.
func (d *DeEsser) SetMonitor(on bool) { d.monitor = on }

// Frequency returns the split frequency in Hz.
func (d *DeEsser) Frequency() float64 { return d.freq }

// Monitor reports whether monitor mode is active.
func (d *DeEsser) Monitor() bool { return d.monitor }

// GainReduction returns the largest current reduction in dB.
func (d *DeEsser) GainReduction() float64 {
	m := 0.0
	for _, r := range d.reduction {
		if r > m {
			m = r
		}
	}
	return m
}

// ProcessFrame de-esses one frame in place.
func (d *DeEsser) ProcessFrame(frame, sidechain []float64) {
	n := len(frame)
	if n > len(d.channels) {
		n = len(d.channels)
	}

	for ch := range n {
		c := &d.channels[ch]
		lo, hi := c.split.ProcessSample(frame[ch])

		// The sidechain crossover always runs so its state stays continuous
		// when a sidechain is connected or dropped.
		_, det := c.scSplit.ProcessSample(pick(sidechain, ch, frame[ch]))

		r := d.Next(d.reduction[ch], det)
		d.reduction[ch] = r

		if d.monitor {
			frame[ch] = det
			continue
		}
		frame[ch] = lo + hi*ReductionGain(r)
	}
}

// ResetBallistics clears gain reduction.
func (d *DeEsser) ResetBallistics() {
	for i := range d.reduction {
		d.reduction[i] = 0
	}
}

// Reset clears all state.
func (d *DeEsser) Reset() {
	d.ResetBallistics()
	for i := range d.channels {
		d.channels[i].split.Reset()
		d.channels[i].scSplit.Reset()
	}
}
