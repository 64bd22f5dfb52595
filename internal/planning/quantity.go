package planning

import "math"

// clampTotal turns an untrusted number into a non-negative integer
// quantity. NaN, infinities and negative values become 0, fractions are
// floored.
func clampTotal(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(v))
}

// clampWeight is clampTotal without the flooring.
func clampWeight(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// addQuantity adds a non-negative amount to q, saturating at the same
// bound as clampTotal. Values already above the bound are kept.
func addQuantity(q, amount int) int {
	if q >= math.MaxInt32-amount {
		return max(q, math.MaxInt32)
	}
	return q + amount
}
