package delay

import (
	"fmt"
	"math"
)

// Line is a circular delay line. Delays are counted from the most recent
// write: Read(0) returns the last written sample.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line that can delay by up to size-1 samples.
func New(size int) (*Line, error) {
	if size <= 1 {
		return nil, fmt.Errorf("delay: size must be > 1: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// ForDuration returns a line long enough to delay maxSeconds at sampleRate,
// with two samples of headroom for interpolation.
func ForDuration(maxSeconds, sampleRate float64) (*Line, error) {
	if !(maxSeconds >= 0) || !(sampleRate > 0) || math.IsInf(maxSeconds*sampleRate, 0) {
		return nil, fmt.Errorf("delay: invalid duration %v s at %v Hz", maxSeconds, sampleRate)
	}
	return New(int(math.Ceil(maxSeconds*sampleRate)) + 2)
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// MaxDelay returns the longest readable delay in samples.
func (d *Line) MaxDelay() int {
	return len(d.buffer) - 1
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads the sample written delay samples before the most recent one.
// delay is limited to [0, MaxDelay].
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if delay < 0 {
		delay = 0
	}
	if delay >= size {
		delay = size - 1
	}
	readPos := d.writePos - 1 - delay
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// ReadLinear reads a fractional delay with linear interpolation between the
// two neighbouring samples. delay is limited to [0, MaxDelay-1].
func (d *Line) ReadLinear(delay float64) float64 {
	if !(delay > 0) {
		return d.Read(0)
	}
	if maxDelay := float64(len(d.buffer) - 2); delay > maxDelay {
		delay = maxDelay
	}

	p := int(delay)
	frac := delay - float64(p)
	a := d.Read(p)
	b := d.Read(p + 1)
	return a + (b-a)*frac
}

// Process writes x and returns the sample delayed by delay samples, using
// linear interpolation. A delay below one sample returns x itself for 0.
func (d *Line) Process(x, delay float64) float64 {
	d.Write(x)
	return d.ReadLinear(delay)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
