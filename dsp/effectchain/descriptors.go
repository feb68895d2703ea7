package effectchain

import "github.com/cwbudde/algo-master/dsp/param"

func num(name string, def, lo, hi float64) param.Descriptor {
	return param.Descriptor{Name: name, Default: def, Min: lo, Max: hi}
}

func step(name string, def, lo, hi float64) param.Descriptor {
	return param.Descriptor{Name: name, Default: def, Min: lo, Max: hi, Stepped: true}
}

// Parameter indices, in descriptor order, for each built-in module type.

const (
	compThreshold = iota
	compRatio
	compAttack
	compRelease
	compKnee
	compMakeup
	compMode
	compMix
	compLink
)

var compressorParams = []param.Descriptor{
	num("threshold", -24, -60, 0),
	num("ratio", 4, 1, 20),
	num("attack", 0.01, 0.0001, 1),
	num("release", 0.1, 0.001, 2),
	num("knee", 5, 0, 20),
	num("makeupGain", 0, 0, 24),
	step("mode", 0, 0, 3),
	num("mix", 1, 0, 1),
	step("link", 0, 0, 1),
}

const (
	eqLowFreq = iota
	eqLowGain
	eqMidFreq
	eqMidGain
	eqMidQ
	eqHighFreq
	eqHighGain
)

var parametricEQParams = []param.Descriptor{
	num("lowFreq", 100, 20, 1000),
	num("lowGain", 0, -24, 24),
	num("midFreq", 1000, 100, 10000),
	num("midGain", 0, -24, 24),
	num("midQ", 0.707, 0.1, 18),
	num("highFreq", 5000, 1000, 20000),
	num("highGain", 0, -24, 24),
}

const (
	satDrive = iota
	satType
	satOutput
	satMix
)

var saturationParams = []param.Descriptor{
	num("drive", 0, 0, 10),
	step("type", 1, 0, 2),
	num("outputGain", 0, -12, 12),
	num("mix", 1, 0, 1),
}

const (
	limThreshold = iota
	limCeiling
	limRelease
	limLookahead
	limLink
)

var limiterParams = []param.Descriptor{
	num("threshold", -0.5, -30, 0),
	num("ceiling", -0.1, -12, 0),
	num("release", 0.1, 0.001, 2),
	step("lookahead", 5, 0, 20),
	step("link", 1, 0, 1),
}

const (
	deqFrequency = iota
	deqGain
	deqQ
	deqThreshold
	deqRatio
	deqAttack
	deqRelease
)

var dynamicEQParams = []param.Descriptor{
	num("frequency", 1000, 20, 20000),
	num("gain", 0, -40, 40),
	num("Q", 1, 0.1, 100),
	num("threshold", -20, -100, 0),
	num("ratio", 2, 1, 20),
	num("attack", 0.01, 0.001, 1),
	num("release", 0.1, 0.001, 1),
}

const (
	tsAttack = iota
	tsSustain
	tsMix
)

var transientShaperParams = []param.Descriptor{
	num("attackGain", 0, -24, 24),
	num("sustainGain", 0, -24, 24),
	num("mix", 1, 0, 1),
}

const (
	msMidGain = iota
	msMidFreq
	msSideGain
	msSideFreq
)

var midSideEQParams = []param.Descriptor{
	num("midGain", 0, -24, 24),
	num("midFreq", 1000, 20, 20000),
	num("sideGain", 0, -24, 24),
	num("sideFreq", 1000, 20, 20000),
}

const (
	cabIR = iota
	cabMix
)

var cabSimParams = []param.Descriptor{
	step("ir", -1, -1, 255),
	num("mix", 1, 0, 1),
}

const (
	ditherBits = iota
	ditherShaping
)

var ditheringParams = []param.Descriptor{
	step("bitDepth", 24, 8, 32),
	step("shaping", 0, 0, 1),
}

const (
	distDrive = iota
	distWet
	distType
	distOutput
)

var distortionParams = []param.Descriptor{
	num("drive", 1, 1, 100),
	num("wet", 1, 0, 1),
	step("type", 0, 0, 2),
	num("outputGain", 0, -24, 24),
}

const (
	crushBits = iota
	crushNormFreq
	crushMix
)

var bitCrusherParams = []param.Descriptor{
	num("bits", 8, 1, 16),
	num("normFreq", 1, 0.01, 1),
	num("mix", 1, 0, 1),
}

const (
	chorusRate = iota
	chorusDelay
	chorusDepth
	chorusFeedback
	chorusWet
)

var chorusParams = []param.Descriptor{
	num("frequency", 1.5, 0.01, 10),
	num("delayTime", 0.03, 0.001, 0.1),
	num("depth", 0.002, 0, 0.02),
	num("feedback", 0, 0, 0.95),
	num("wet", 0.5, 0, 1),
}

const (
	phaserStages = iota
	phaserRate
	phaserBase
	phaserOctaves
	phaserWet
)

var phaserParams = []param.Descriptor{
	step("stages", 4, 1, 12),
	num("frequency", 0.5, 0.01, 10),
	num("baseFrequency", 1000, 20, 10000),
	num("octaves", 2, 0, 6),
	num("wet", 0.5, 0, 1),
}

const (
	tremRate = iota
	tremDepth
	tremSpread
	tremWaveform
	tremMix
)

var tremoloParams = []param.Descriptor{
	num("frequency", 4, 0.01, 20),
	num("depth", 0.5, 0, 1),
	num("spread", 0, 0, 1),
	step("waveform", 0, 0, 3),
	num("mix", 1, 0, 1),
}

const (
	wahBase = iota
	wahSensitivity
	wahOctaves
	wahQ
	wahAttack
	wahRelease
	wahWet
)

var autoWahParams = []param.Descriptor{
	num("baseFrequency", 100, 20, 2000),
	num("sensitivity", 0.5, 0, 1),
	num("octaves", 4, 0, 8),
	num("Q", 2, 0.1, 20),
	num("attack", 0.01, 0.001, 1),
	num("release", 0.1, 0.001, 2),
	num("wet", 1, 0, 1),
}

const (
	fdDelay = iota
	fdFeedback
	fdWet
)

var feedbackDelayParams = []param.Descriptor{
	num("delayTime", 0.5, 0.001, 2),
	num("feedback", 0.3, 0, 0.95),
	num("wet", 0.5, 0, 1),
}

const (
	deessFrequency = iota
	deessThreshold
	deessRatio
	deessAttack
	deessRelease
	deessMonitor
)

var deEsserParams = []param.Descriptor{
	num("frequency", 6000, 2000, 16000),
	num("threshold", -20, -60, 0),
	num("ratio", 4, 1, 20),
	num("attack", 0.005, 0.0001, 0.1),
	num("release", 0.05, 0.001, 1),
	step("monitor", 0, 0, 1),
}

const (
	imgLowFreq = iota
	imgHighFreq
	imgWidthLow
	imgWidthMid
	imgWidthHigh
)

var stereoImagerParams = []param.Descriptor{
	num("lowFreq", 150, 20, 1000),
	num("highFreq", 2500, 1000, 10000),
	num("widthLow", 0, 0, 2),
	num("widthMid", 1, 0, 2),
	num("widthHigh", 1.2, 0, 2),
}

// Multiband layout: the two crossovers, five parameters per band in band
// order, then link.
const (
	mbLowFreq = iota
	mbHighFreq
	mbBandBase
)

const (
	mbThresh = iota
	mbRatio
	mbAttack
	mbRelease
	mbGain
	mbPerBand
)

const mbLink = mbBandBase + 3*mbPerBand

func mbIndex(band, k int) int { return mbBandBase + band*mbPerBand + k }

var multibandParams = multibandDescriptors()

func multibandDescriptors() []param.Descriptor {
	out := []param.Descriptor{
		num("lowFreq", 150, 20, 1000),
		num("highFreq", 2500, 1000, 10000),
	}
	for _, b := range []string{"Low", "Mid", "High"} {
		out = append(out,
			num("thresh"+b, -24, -60, 0),
			num("ratio"+b, 4, 1, 20),
			num("att"+b, 0.01, 0.0001, 1),
			num("rel"+b, 0.1, 0.001, 2),
			num("gain"+b, 0, 0, 24),
		)
	}
	return append(out, step("link", 0, 0, 1))
}
