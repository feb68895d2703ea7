package effectchain

import "github.com/cwbudde/algo-master/dsp/core"

// External maps a sidechain source name to a planar block aligned with the
// block passed to [Chain.Process].
type External map[string][][]float64

// Process runs block through the connected nodes in place. Blocks longer
// than the context block size are processed in chunks; missing channels
// and short channel slices read as silence. Non-finite input samples are
// replaced by zero. external may be nil.
func (c *Chain) Process(block [][]float64, external External) {
	frames := maxFrames(block)
	for off := 0; off < frames; off += c.ctx.BlockSize {
		n := min(c.ctx.BlockSize, frames-off)
		c.processChunk(block, external, off, n)
	}
}

func (c *Chain) processChunk(block [][]float64, external External, off, n int) {
	for ch := range c.view {
		c.view[ch] = c.work[ch][:n]
		core.ZeroFill(c.view[ch], window(block, ch, off, n))
		sanitize(c.view[ch])
	}

	for i, nd := range c.connected {
		nd.process(c.view, c.sidechain(i, external, off, n), n)

		if nd.capture != nil {
			for ch, buf := range nd.capture {
				copy(buf[:n], c.view[ch])
			}
		}
	}

	for ch := range block {
		if ch < len(c.view) {
			copy(window(block, ch, off, n), c.view[ch])
		}
	}
}

// sidechain returns the detector block of connected position i, or nil
// when the node should detect on its own input.
func (c *Chain) sidechain(i int, external External, off, n int) [][]float64 {
	t := &c.taps[i]
	switch t.kind {
	case tapNode:
		for ch := range t.view {
			t.view[ch] = t.source.capture[ch][:n]
		}
		return t.view

	case tapExternal:
		src, ok := external[t.name]
		if !ok || maxFrames(src) == 0 {
			return nil
		}
		for ch := range t.view {
			t.view[ch] = window(src, ch, off, n)
		}
		return t.view

	default:
		return nil
	}
}

// window returns block[ch][off:off+n], clipped to what the channel holds.
func window(block [][]float64, ch, off, n int) []float64 {
	if ch >= len(block) || off >= len(block[ch]) {
		return nil
	}
	return block[ch][off:min(off+n, len(block[ch]))]
}

func sanitize(buf []float64) {
	for i, v := range buf {
		if !core.IsFinite(v) {
			buf[i] = 0
		}
	}
}
