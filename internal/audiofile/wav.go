package audiofile

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// DecodeWAV reads an integer PCM WAV stream of 16, 24 or 32 bits.
func DecodeWAV(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV stream", ErrUnsupportedFormat)
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	depth := int(dec.BitDepth)
	switch depth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit WAV", ErrUnsupportedFormat, depth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode wav: %w", err)
	}

	channels := int(dec.NumChans)
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, ErrEmpty
	}

	scale := 1 / fullScale(depth)
	a := &Audio{SampleRate: int(dec.SampleRate), Channels: make([][]float64, channels)}
	for ch := range a.Channels {
		a.Channels[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			a.Channels[ch][i] = float64(buf.Data[i*channels+ch]) * scale
		}
	}

	return a, nil
}

// EncodeWAV writes a as interleaved integer PCM. Samples are clipped to
// full scale and rounded.
func EncodeWAV(w io.WriteSeeker, a *Audio, bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d-bit output", ErrUnsupportedFormat, bitDepth)
	}

	channels := len(a.Channels)
	if channels == 0 || a.SampleRate <= 0 {
		return fmt.Errorf("audiofile: encode wav: %d channels at %d Hz", channels, a.SampleRate)
	}

	frames := a.Frames()
	full := fullScale(bitDepth)
	hi := full - 1

	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			v := 0.0
			if i < len(a.Channels[ch]) {
				v = math.Round(a.Channels[ch][i] * full)
			}
			if math.IsNaN(v) {
				v = 0
			}
			data[i*channels+ch] = int(math.Max(-full, math.Min(hi, v)))
		}
	}

	enc := wav.NewEncoder(w, a.SampleRate, bitDepth, channels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audiofile: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: encode wav: %w", err)
	}

	return nil
}

func fullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}
