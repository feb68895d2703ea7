package effectchain

import (
	"github.com/cwbudde/algo-master/dsp/effects/dynamics"
	"github.com/cwbudde/algo-master/dsp/param"
)

func flag(v float64) bool { return v >= 0.5 }

type compressorProc struct{ *dynamics.Compressor }

func (p compressorProc) Apply(v []float64, changed param.Mask) {
	c := p.Compressor
	if changed.Has(compThreshold) {
		c.SetThreshold(v[compThreshold])
	}
	if changed.Has(compRatio) {
		c.SetRatio(v[compRatio])
	}
	if changed.Has(compAttack) {
		c.SetAttack(v[compAttack])
	}
	if changed.Has(compRelease) {
		c.SetRelease(v[compRelease])
	}
	if changed.Has(compKnee) {
		c.SetKnee(v[compKnee])
	}
	if changed.Has(compMakeup) {
		c.SetMakeupGain(v[compMakeup])
	}
	if changed.Has(compMode) {
		c.SetTopology(dynamics.Topology(int(v[compMode])))
	}
	if changed.Has(compMix) {
		c.SetMix(v[compMix])
	}
	if changed.Has(compLink) {
		c.SetLinked(flag(v[compLink]))
	}
}

func (p compressorProc) Process(frame, sidechain []float64) { p.ProcessFrame(frame, sidechain) }

type limiterProc struct{ *dynamics.Limiter }

func (p limiterProc) Apply(v []float64, changed param.Mask) {
	l := p.Limiter
	if changed.Has(limThreshold) {
		l.SetThreshold(v[limThreshold])
	}
	if changed.Has(limCeiling) {
		l.SetCeiling(v[limCeiling])
	}
	if changed.Has(limRelease) {
		l.SetRelease(v[limRelease])
	}
	if changed.Has(limLookahead) {
		l.SetLookahead(v[limLookahead])
	}
	if changed.Has(limLink) {
		l.SetLinked(flag(v[limLink]))
	}
}

func (p limiterProc) Process(frame, sidechain []float64) { p.ProcessFrame(frame, sidechain) }

func (p limiterProc) Latency() int { return p.LatencySamples() }

type dynamicEQProc struct{ *dynamics.DynamicEQ }

func (p dynamicEQProc) Apply(v []float64, changed param.Mask) {
	d := p.DynamicEQ
	if changed.HasAny(deqFrequency, deqGain, deqQ) {
		d.SetBand(v[deqFrequency], v[deqQ], v[deqGain])
	}
	if changed.Has(deqThreshold) {
		d.SetThreshold(v[deqThreshold])
	}
	if changed.Has(deqRatio) {
		d.SetRatio(v[deqRatio])
	}
	if changed.HasAny(deqAttack, deqRelease) {
		d.SetTimes(v[deqAttack], v[deqRelease])
	}
}

func (p dynamicEQProc) Process(frame, sidechain []float64) { p.ProcessFrame(frame, sidechain) }

type transientShaperProc struct{ *dynamics.TransientShaper }

func (p transientShaperProc) Apply(v []float64, changed param.Mask) {
	ts := p.TransientShaper
	if changed.Has(tsAttack) {
		ts.SetAttackGain(v[tsAttack])
	}
	if changed.Has(tsSustain) {
		ts.SetSustainGain(v[tsSustain])
	}
	if changed.Has(tsMix) {
		ts.SetMix(v[tsMix])
	}
}

func (p transientShaperProc) Process(frame, sidechain []float64) { p.ProcessFrame(frame, sidechain) }

type deEsserProc struct{ *dynamics.DeEsser }

func (p deEsserProc) Apply(v []float64, changed param.Mask) {
	d := p.DeEsser
	if changed.Has(deessFrequency) {
		d.SetFrequency(v[deessFrequency])
	}
	if changed.Has(deessThreshold) {
		d.SetThreshold(v[deessThreshold])
	}
	if changed.Has(deessRatio) {
		d.SetRatio(v[deessRatio])
	}
	if changed.Has(deessAttack) {
		d.SetAttack(v[deessAttack])
	}
	if changed.Has(deessRelease) {
		d.SetRelease(v[deessRelease])
	}
	if changed.Has(deessMonitor) {
		d.SetMonitor(flag(v[deessMonitor]))
	}
}

func (p deEsserProc) Process(frame, sidechain []float64) { p.ProcessFrame(frame, sidechain) }

type multibandProc struct{ *dynamics.Multiband }

func (p multibandProc) Apply(v []float64, changed param.Mask) {
	m := p.Multiband
	if changed.HasAny(mbLowFreq, mbHighFreq) {
		m.SetCrossovers(v[mbLowFreq], v[mbHighFreq])
	}
	for b := range dynamics.NumBands {
		g := m.Band(dynamics.Band(b))
		if i := mbIndex(b, mbThresh); changed.Has(i) {
			g.SetThreshold(v[i])
		}
		if i := mbIndex(b, mbRatio); changed.Has(i) {
			g.SetRatio(v[i])
		}
		if i := mbIndex(b, mbAttack); changed.Has(i) {
			g.SetAttack(v[i])
		}
		if i := mbIndex(b, mbRelease); changed.Has(i) {
			g.SetRelease(v[i])
		}
		if i := mbIndex(b, mbGain); changed.Has(i) {
			m.SetBandMakeup(dynamics.Band(b), v[i])
		}
	}
	if changed.Has(mbLink) {
		m.SetLinked(flag(v[mbLink]))
	}
}

func (p multibandProc) Process(frame, sidechain []float64) { p.ProcessFrame(frame, sidechain) }
