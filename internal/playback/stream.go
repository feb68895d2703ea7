// Package playback streams engine output to the system audio device.
package playback

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-master/engine"
)

const bytesPerSample = 4

// Source produces planar output blocks for a [Stream].
type Source interface {
	// Next fills block and returns the number of frames written. Zero ends
	// the stream.
	Next(block [][]float64) int
}

// Stream adapts a Source to the interleaved float32 little-endian byte
// stream the audio device reads.
type Stream struct {
	src      Source
	block    [][]float64
	pending  []byte
	buf      []byte
	frames   atomic.Int64
	finished atomic.Bool
}

// NewStream pulls blocks of blockSize frames with the given channel count.
func NewStream(src Source, channels, blockSize int) *Stream {
	block := make([][]float64, channels)
	for ch := range block {
		block[ch] = make([]float64, blockSize)
	}

	return &Stream{
		src:   src,
		block: block,
		buf:   make([]byte, 0, channels*blockSize*bytesPerSample),
	}
}

// Read implements io.Reader. It returns io.EOF once the source is exhausted
// and every byte has been delivered.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			if s.finished.Load() || !s.pull() {
				break
			}
		}

		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

// Frames returns the number of frames pulled from the source so far.
func (s *Stream) Frames() int64 { return s.frames.Load() }

// Finished reports whether the source has ended.
func (s *Stream) Finished() bool { return s.finished.Load() }

func (s *Stream) pull() bool {
	for ch := range s.block {
		clear(s.block[ch])
	}

	n := s.src.Next(s.block)
	if n <= 0 {
		s.finished.Store(true)
		return false
	}

	s.buf = s.buf[:0]
	for i := 0; i < n; i++ {
		for ch := range s.block {
			v := max(-1, min(1, s.block[ch][i]))
			s.buf = binary.LittleEndian.AppendUint32(s.buf, math.Float32bits(float32(v)))
		}
	}

	s.pending = s.buf
	s.frames.Add(int64(n))

	return true
}

// EngineSource feeds a decoded signal through an engine block by block.
type EngineSource struct {
	eng   *engine.Engine
	input [][]float64
	view  [][]float64
	pos   int

	// Loop restarts the input at its end instead of ending the stream.
	Loop bool
}

// NewEngineSource plays input through eng. The channel layout of input
// must match the engine's.
func NewEngineSource(eng *engine.Engine, input [][]float64) *EngineSource {
	return &EngineSource{eng: eng, input: input}
}

// Next implements Source.
func (s *EngineSource) Next(block [][]float64) int {
	total := 0
	if len(s.input) > 0 {
		total = len(s.input[0])
	}

	if s.pos >= total {
		if !s.Loop || total == 0 {
			return 0
		}
		s.pos = 0
	}

	n := min(len(block[0]), total-s.pos)
	for ch := range block {
		if ch < len(s.input) {
			copy(block[ch][:n], s.input[ch][s.pos:s.pos+n])
		}
	}
	s.pos += n

	if len(s.view) != len(block) {
		s.view = make([][]float64, len(block))
	}
	for ch := range block {
		s.view[ch] = block[ch][:n]
	}
	s.eng.Process(s.view, nil)

	return n
}
