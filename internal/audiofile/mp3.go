package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 reads an MPEG-1/2 Layer III stream. The decoder always
// produces 16-bit stereo.
func DecodeMP3(r io.Reader) (*Audio, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode mp3: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode mp3: %w", err)
	}

	const bytesPerFrame = 4
	frames := len(pcm) / bytesPerFrame
	if frames == 0 {
		return nil, ErrEmpty
	}

	a := &Audio{
		SampleRate: dec.SampleRate(),
		Channels:   [][]float64{make([]float64, frames), make([]float64, frames)},
	}
	for i := 0; i < frames; i++ {
		off := i * bytesPerFrame
		a.Channels[0][i] = float64(int16(binary.LittleEndian.Uint16(pcm[off:]))) / 32768
		a.Channels[1][i] = float64(int16(binary.LittleEndian.Uint16(pcm[off+2:]))) / 32768
	}

	return a, nil
}
