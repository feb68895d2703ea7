// Package audiofile decodes and encodes the sound files masterfx reads and
// writes. Samples are held planar as float64 in [-1, 1].
package audiofile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-master/dsp/resample"
)

var (
	// ErrUnsupportedFormat is returned for containers or sample formats
	// this package cannot decode.
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")
	// ErrEmpty is returned for a file without sample frames.
	ErrEmpty = errors.New("audiofile: no audio frames")
)

// Audio is a decoded planar signal.
type Audio struct {
	SampleRate int
	Channels   [][]float64
}

// Frames returns the number of sample frames.
func (a *Audio) Frames() int {
	if a == nil || len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

// Duration returns the length in seconds.
func (a *Audio) Duration() float64 {
	if a == nil || a.SampleRate <= 0 {
		return 0
	}
	return float64(a.Frames()) / float64(a.SampleRate)
}

// Conform returns the signal with exactly n channels. A mono source is
// copied to every channel, folding to mono averages all channels, and any
// other mismatch drops surplus channels or repeats the source cyclically.
func (a *Audio) Conform(n int) [][]float64 {
	frames := a.Frames()
	out := make([][]float64, n)
	src := len(a.Channels)

	for ch := range out {
		out[ch] = make([]float64, frames)
		if src == 0 {
			continue
		}
		if n == 1 && src > 1 {
			for _, c := range a.Channels {
				for i, v := range c {
					out[0][i] += v
				}
			}
			scale := 1 / float64(src)
			for i := range out[0] {
				out[0][i] *= scale
			}
			continue
		}
		copy(out[ch], a.Channels[ch%src])
	}

	return out
}

// Resample converts the signal to rate. The result is aligned with the
// source and has the nominal length for the new rate.
func (a *Audio) Resample(rate int) (*Audio, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("audiofile: invalid target rate %d", rate)
	}
	if rate == a.SampleRate {
		return a, nil
	}

	channels, err := resample.Planar(a.Channels, a.SampleRate, rate, resample.WithQuality(resample.QualityBest))
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}

	return &Audio{SampleRate: rate, Channels: channels}, nil
}

// Read decodes a WAV or MP3 file, chosen by extension.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	defer f.Close()

	var a *Audio
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		a, err = DecodeWAV(f)
	case ".mp3":
		a, err = DecodeMP3(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

// Write encodes a as a PCM WAV file of the given bit depth.
func Write(path string, a *Audio, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("audiofile: %w", cerr)
		}
	}()

	return EncodeWAV(f, a, bitDepth)
}
