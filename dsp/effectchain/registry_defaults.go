package effectchain

import (
	"github.com/cwbudde/algo-master/dsp/effects"
	"github.com/cwbudde/algo-master/dsp/effects/dynamics"
	"github.com/cwbudde/algo-master/dsp/effects/modulation"
	"github.com/cwbudde/algo-master/dsp/effects/spatial"
	"github.com/cwbudde/algo-master/measure/loudness"
)

type registryConfig struct {
	irProvider IRProvider
}

// RegistryOption configures the default registry.
type RegistryOption func(*registryConfig)

// WithIRProvider sets the impulse response table for CAB_SIM modules.
func WithIRProvider(p IRProvider) RegistryOption {
	return func(c *registryConfig) { c.irProvider = p }
}

// DefaultRegistry returns a Registry with every built-in module type.
//
//nolint:funlen
func DefaultRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := NewRegistry()

	r.MustRegister(TypeCompressor, compressorParams, func(ctx Context) (Processor, error) {
		fx, err := dynamics.NewCompressor(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return compressorProc{fx}, nil
	})
	r.MustRegister(TypeParametricEQ, parametricEQParams, func(ctx Context) (Processor, error) {
		fx, err := effects.NewParametricEQ(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return parametricEQProc{fx}, nil
	})
	r.MustRegister(TypeSaturation, saturationParams, func(ctx Context) (Processor, error) {
		fx, err := effects.NewSaturation(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return saturationProc{fx}, nil
	})
	r.MustRegister(TypeLimiter, limiterParams, func(ctx Context) (Processor, error) {
		fx, err := dynamics.NewLimiter(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return limiterProc{fx}, nil
	})
	r.MustRegister(TypeDynamicEQ, dynamicEQParams, func(ctx Context) (Processor, error) {
		fx, err := dynamics.NewDynamicEQ(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return dynamicEQProc{fx}, nil
	})
	r.MustRegister(TypeTransientShaper, transientShaperParams, func(ctx Context) (Processor, error) {
		fx, err := dynamics.NewTransientShaper(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return transientShaperProc{fx}, nil
	})
	r.MustRegister(TypeMidSideEQ, midSideEQParams, func(ctx Context) (Processor, error) {
		fx, err := spatial.NewMidSideEQ(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return midSideEQProc{fx}, nil
	})
	r.MustRegister(TypeCabSim, cabSimParams, func(ctx Context) (Processor, error) {
		var irs [][]float64
		if cfg.irProvider != nil {
			irs = cfg.irProvider.ImpulseResponses()
		}

		fx, err := effects.NewCabSim(ctx.SampleRate, ctx.Channels, irs...)
		if err != nil {
			return nil, err
		}

		return cabSimProc{fx}, nil
	})
	r.MustRegister(TypeDithering, ditheringParams, func(ctx Context) (Processor, error) {
		fx, err := effects.NewDither(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return ditherProc{fx}, nil
	})
	r.MustRegister(TypeDistortion, distortionParams, func(ctx Context) (Processor, error) {
		fx, err := effects.NewDistortion(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return distortionProc{fx}, nil
	})
	r.MustRegister(TypeBitcrusher, bitCrusherParams, func(ctx Context) (Processor, error) {
		fx, err := effects.NewBitCrusher(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return bitCrusherProc{fx}, nil
	})
	r.MustRegister(TypeChorus, chorusParams, func(ctx Context) (Processor, error) {
		fx, err := modulation.NewChorus(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return chorusProc{fx}, nil
	})
	r.MustRegister(TypePhaser, phaserParams, func(ctx Context) (Processor, error) {
		fx, err := modulation.NewPhaser(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return phaserProc{fx}, nil
	})
	r.MustRegister(TypeTremolo, tremoloParams, func(ctx Context) (Processor, error) {
		fx, err := modulation.NewTremolo(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return tremoloProc{fx}, nil
	})
	r.MustRegister(TypeAutoWah, autoWahParams, func(ctx Context) (Processor, error) {
		fx, err := modulation.NewAutoWah(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return autoWahProc{fx}, nil
	})
	r.MustRegister(TypeFeedbackDelay, feedbackDelayParams, func(ctx Context) (Processor, error) {
		fx, err := modulation.NewFeedbackDelay(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return feedbackDelayProc{fx}, nil
	})
	r.MustRegister(TypeDeEsser, deEsserParams, func(ctx Context) (Processor, error) {
		fx, err := dynamics.NewDeEsser(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return deEsserProc{fx}, nil
	})
	r.MustRegister(TypeStereoImager, stereoImagerParams, func(ctx Context) (Processor, error) {
		fx, err := spatial.NewImager(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return imagerProc{fx}, nil
	})
	r.MustRegister(TypeMultibandCompressor, multibandParams, func(ctx Context) (Processor, error) {
		fx, err := dynamics.NewMultiband(ctx.SampleRate, ctx.Channels)
		if err != nil {
			return nil, err
		}

		return multibandProc{fx}, nil
	})
	r.MustRegister(TypeLoudnessMeter, nil, func(ctx Context) (Processor, error) {
		fx, err := loudness.NewMeter(
			loudness.WithSampleRate(ctx.SampleRate),
			loudness.WithChannels(ctx.Channels),
		)
		if err != nil {
			return nil, err
		}

		return meterProc{fx}, nil
	})

	return r
}
