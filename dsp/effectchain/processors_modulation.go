package effectchain

import (
	"github.com/cwbudde/algo-master/dsp/effects/modulation"
	"github.com/cwbudde/algo-master/dsp/effects/spatial"
	"github.com/cwbudde/algo-master/dsp/lfo"
	"github.com/cwbudde/algo-master/dsp/param"
	"github.com/cwbudde/algo-master/measure/loudness"
)

type chorusProc struct{ *modulation.Chorus }

func (p chorusProc) Apply(v []float64, changed param.Mask) {
	c := p.Chorus
	if changed.Has(chorusRate) {
		c.SetRate(v[chorusRate])
	}
	if changed.Has(chorusDelay) {
		c.SetDelay(v[chorusDelay])
	}
	if changed.Has(chorusDepth) {
		c.SetDepth(v[chorusDepth])
	}
	if changed.Has(chorusFeedback) {
		c.SetFeedback(v[chorusFeedback])
	}
	if changed.Has(chorusWet) {
		c.SetWet(v[chorusWet])
	}
}

func (p chorusProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type phaserProc struct{ *modulation.Phaser }

func (p phaserProc) Apply(v []float64, changed param.Mask) {
	ph := p.Phaser
	if changed.Has(phaserStages) {
		ph.SetStages(int(v[phaserStages]))
	}
	if changed.Has(phaserRate) {
		ph.SetRate(v[phaserRate])
	}
	if changed.Has(phaserBase) {
		ph.SetBaseFrequency(v[phaserBase])
	}
	if changed.Has(phaserOctaves) {
		ph.SetOctaves(v[phaserOctaves])
	}
	if changed.Has(phaserWet) {
		ph.SetWet(v[phaserWet])
	}
}

func (p phaserProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type tremoloProc struct{ *modulation.Tremolo }

func (p tremoloProc) Apply(v []float64, changed param.Mask) {
	t := p.Tremolo
	if changed.Has(tremRate) {
		t.SetRate(v[tremRate])
	}
	if changed.Has(tremDepth) {
		t.SetDepth(v[tremDepth])
	}
	if changed.Has(tremSpread) {
		t.SetSpread(v[tremSpread])
	}
	if changed.Has(tremWaveform) {
		t.SetWaveform(lfo.Waveform(int(v[tremWaveform])))
	}
	if changed.Has(tremMix) {
		t.SetMix(v[tremMix])
	}
}

func (p tremoloProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type autoWahProc struct{ *modulation.AutoWah }

func (p autoWahProc) Apply(v []float64, changed param.Mask) {
	a := p.AutoWah
	if changed.Has(wahBase) {
		a.SetBaseFrequency(v[wahBase])
	}
	if changed.Has(wahSensitivity) {
		a.SetSensitivity(v[wahSensitivity])
	}
	if changed.Has(wahOctaves) {
		a.SetOctaves(v[wahOctaves])
	}
	if changed.Has(wahQ) {
		a.SetQ(v[wahQ])
	}
	if changed.HasAny(wahAttack, wahRelease) {
		a.SetTimes(v[wahAttack], v[wahRelease])
	}
	if changed.Has(wahWet) {
		a.SetWet(v[wahWet])
	}
}

func (p autoWahProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type feedbackDelayProc struct{ *modulation.FeedbackDelay }

func (p feedbackDelayProc) Apply(v []float64, changed param.Mask) {
	d := p.FeedbackDelay
	if changed.Has(fdDelay) {
		d.SetDelay(v[fdDelay])
	}
	if changed.Has(fdFeedback) {
		d.SetFeedback(v[fdFeedback])
	}
	if changed.Has(fdWet) {
		d.SetWet(v[fdWet])
	}
}

func (p feedbackDelayProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type midSideEQProc struct{ *spatial.MidSideEQ }

func (p midSideEQProc) Apply(v []float64, changed param.Mask) {
	if changed.HasAny(msMidFreq, msMidGain) {
		p.SetMid(v[msMidFreq], v[msMidGain])
	}
	if changed.HasAny(msSideFreq, msSideGain) {
		p.SetSide(v[msSideFreq], v[msSideGain])
	}
}

func (p midSideEQProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type imagerProc struct{ *spatial.Imager }

func (p imagerProc) Apply(v []float64, changed param.Mask) {
	im := p.Imager
	if changed.HasAny(imgLowFreq, imgHighFreq) {
		im.SetCrossovers(v[imgLowFreq], v[imgHighFreq])
	}
	if changed.Has(imgWidthLow) {
		im.SetWidth(spatial.BandLow, v[imgWidthLow])
	}
	if changed.Has(imgWidthMid) {
		im.SetWidth(spatial.BandMid, v[imgWidthMid])
	}
	if changed.Has(imgWidthHigh) {
		im.SetWidth(spatial.BandHigh, v[imgWidthHigh])
	}
}

func (p imagerProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

// meterProc measures the signal at its position in the chain and passes
// it through unchanged.
type meterProc struct{ *loudness.Meter }

func (meterProc) Apply([]float64, param.Mask) {}

func (p meterProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

func (p meterProc) Loudness() loudness.Reading { return p.Reading() }
