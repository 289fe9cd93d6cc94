package scoring

import "math"

// Round2 rounds x to two decimals, halves away from zero.
func Round2(x float64) float64 {
	r := math.Round(x*100) / 100
	if r == 0 {
		// avoid -0 in JSON output
		return 0
	}
	return r
}

func ptr(v float64) *float64 { return &v }

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
