package effectchain

import (
	"github.com/cwbudde/algo-master/dsp/effects"
	"github.com/cwbudde/algo-master/dsp/param"
	"github.com/cwbudde/algo-master/dsp/saturation"
)

type parametricEQProc struct{ *effects.ParametricEQ }

func (p parametricEQProc) Apply(v []float64, changed param.Mask) {
	e := p.ParametricEQ
	if changed.HasAny(eqLowFreq, eqLowGain) {
		e.SetLow(v[eqLowFreq], v[eqLowGain])
	}
	if changed.HasAny(eqMidFreq, eqMidGain, eqMidQ) {
		e.SetMid(v[eqMidFreq], v[eqMidGain], v[eqMidQ])
	}
	if changed.HasAny(eqHighFreq, eqHighGain) {
		e.SetHigh(v[eqHighFreq], v[eqHighGain])
	}
}

func (p parametricEQProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type saturationProc struct{ *effects.Saturation }

func (p saturationProc) Apply(v []float64, changed param.Mask) {
	s := p.Saturation
	if changed.Has(satDrive) {
		s.SetDrive(v[satDrive])
	}
	if changed.Has(satType) {
		s.SetShape(saturation.Shape(int(v[satType])))
	}
	if changed.Has(satOutput) {
		s.SetOutputGain(v[satOutput])
	}
	if changed.Has(satMix) {
		s.SetMix(v[satMix])
	}
}

func (p saturationProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

func (p saturationProc) Reset() {}

type distortionProc struct{ *effects.Distortion }

func (p distortionProc) Apply(v []float64, changed param.Mask) {
	d := p.Distortion
	if changed.Has(distDrive) {
		d.SetDrive(v[distDrive])
	}
	if changed.Has(distWet) {
		d.SetWet(v[distWet])
	}
	if changed.Has(distType) {
		d.SetCurve(saturation.Curve(int(v[distType])))
	}
	if changed.Has(distOutput) {
		d.SetOutputGain(v[distOutput])
	}
}

func (p distortionProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type bitCrusherProc struct{ *effects.BitCrusher }

func (p bitCrusherProc) Apply(v []float64, changed param.Mask) {
	bc := p.BitCrusher
	if changed.Has(crushBits) {
		bc.SetBits(v[crushBits])
	}
	if changed.Has(crushNormFreq) {
		bc.SetNormFreq(v[crushNormFreq])
	}
	if changed.Has(crushMix) {
		bc.SetMix(v[crushMix])
	}
}

func (p bitCrusherProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type ditherProc struct{ *effects.Dither }

func (p ditherProc) Apply(v []float64, changed param.Mask) {
	if changed.Has(ditherBits) {
		p.SetBitDepth(int(v[ditherBits]))
	}
	if changed.Has(ditherShaping) {
		p.SetShaping(flag(v[ditherShaping]))
	}
}

func (p ditherProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }

type cabSimProc struct{ *effects.CabSim }

func (p cabSimProc) Apply(v []float64, changed param.Mask) {
	if changed.Has(cabIR) {
		p.SetIR(int(v[cabIR]))
	}
	if changed.Has(cabMix) {
		p.SetMix(v[cabMix])
	}
}

func (p cabSimProc) Process(frame, _ []float64) { p.ProcessFrame(frame) }
