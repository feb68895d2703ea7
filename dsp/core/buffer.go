package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// ZeroFill copies src into dst and zeroes whatever part of dst src does not
// cover. A nil or short src therefore reads as silence.
func ZeroFill(dst, src []float64) {
	n := CopyInto(dst, src)
	Zero(dst[n:])
}

// NewBlock allocates a channels x frames sample block.
func NewBlock(channels, frames int) [][]float64 {
	if channels <= 0 || frames < 0 {
		return nil
	}
	backing := make([]float64, channels*frames)
	block := make([][]float64, channels)
	for ch := range block {
		block[ch] = backing[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}
	return block
}

// Frames returns the shortest channel length in block, or 0 for an empty block.
func Frames(block [][]float64) int {
	if len(block) == 0 {
		return 0
	}
	n := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	return n
}

// CopyBlock copies src into dst channel by channel, zero-filling any
// channel or tail that src lacks.
func CopyBlock(dst, src [][]float64) {
	for ch := range dst {
		if ch < len(src) {
			ZeroFill(dst[ch], src[ch])
			continue
		}
		Zero(dst[ch])
	}
}
