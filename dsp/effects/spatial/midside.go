package spatial

// Encode converts left/right to mid/side: m = (l+r)/2, s = (l-r)/2.
func Encode(l, r float64) (mid, side float64) {
	return 0.5 * (l + r), 0.5 * (l - r)
}

// Decode converts mid/side back to left/right.
func Decode(mid, side float64) (l, r float64) {
	return mid + side, mid - side
}

// ApplyWidth scales the side component of a left/right pair by width:
// 0 folds to mono, 1 is unchanged, values above 1 widen.
func ApplyWidth(l, r, width float64) (float64, float64) {
	if width == 1 {
		return l, r
	}
	m, s := Encode(l, r)
	return Decode(m, s*width)
}

func isStereo(frame []float64) bool { return len(frame) >= 2 }
