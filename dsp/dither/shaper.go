package dither

// ErrorFeedback is a first-order noise shaper: the previous quantization
// error is subtracted from the next input, giving the noise transfer function
// 1 - z^-1 (rising 6 dB per octave, away from the most audible band).
//
// Per sample:
//  1. shaped := s.Shape(scaledInput)
//  2. quantized := round(shaped + dither)
//  3. s.RecordError(quantized - shaped)
type ErrorFeedback struct {
	enabled bool
	err     float64
}

// Shape subtracts the recorded error from input when shaping is enabled.
func (s *ErrorFeedback) Shape(input float64) float64 {
	if !s.enabled {
		return input
	}
	return input - s.err
}

// RecordError stores the quantization error of the current sample.
func (s *ErrorFeedback) RecordError(quantizationError float64) {
	if s.enabled {
		s.err = quantizationError
	}
}

// Enabled reports whether shaping is active.
func (s *ErrorFeedback) Enabled() bool { return s.enabled }

// SetEnabled switches shaping on or off and clears the error memory.
func (s *ErrorFeedback) SetEnabled(on bool) {
	s.enabled = on
	s.err = 0
}

// Reset clears the error memory.
func (s *ErrorFeedback) Reset() { s.err = 0 }
