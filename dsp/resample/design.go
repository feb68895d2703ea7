package resample

import "math"

// design returns the Kaiser-windowed sinc prototype at the upsampled rate,
// scaled to a DC gain of up. The length is odd so the delay is integral.
func design(up, down int, p profile) []float64 {
	n := p.tapsPerPhase*up + 1
	if n%2 == 0 {
		n++
	}

	fc := 0.5 / float64(max(up, down)) * p.cutoffScale
	centre := float64(n-1) / 2
	norm := besselI0(p.kaiserBeta)

	taps := make([]float64, n)
	var sum float64
	for i := range taps {
		t := float64(i) - centre
		r := t / centre
		w := besselI0(p.kaiserBeta*math.Sqrt(max(0, 1-r*r))) / norm
		taps[i] = 2 * fc * sinc(2*fc*t) * w
		sum += taps[i]
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	return taps
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// besselI0 evaluates the zeroth-order modified Bessel function by its power
// series.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	q := x * x / 4
	for k := 1; k < 64; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
