package loudness

import "github.com/cwbudde/algo-master/dsp/core"

type meterConfig struct {
	core.ProcessorConfig
	integrate bool
}

// MeterOption configures a Meter.
type MeterOption func(*meterConfig)

// WithSampleRate sets the sample rate. The default is 48 kHz.
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *meterConfig) { core.WithSampleRate(sampleRate)(&cfg.ProcessorConfig) }
}

// WithChannels sets the channel count. The default is stereo.
func WithChannels(channels int) MeterOption {
	return func(cfg *meterConfig) { core.WithChannels(channels)(&cfg.ProcessorConfig) }
}

// WithIntegrationPaused creates the meter with integrated loudness
// stopped until [Meter.StartIntegration].
func WithIntegrationPaused() MeterOption {
	return func(cfg *meterConfig) { cfg.integrate = false }
}

func applyMeterOptions(opts ...MeterOption) meterConfig {
	cfg := meterConfig{ProcessorConfig: core.DefaultProcessorConfig(), integrate: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
