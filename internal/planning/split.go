package planning

import "math"

// Split spreads quantity over Monday to Friday. Every weekday gets
// quantity/5 and the first quantity%5 weekdays, Monday first, get one
// more unit. Saturday is always 0.
//
// Negative quantities are treated as 0.
func Split(quantity int) DayVector {
	quantity = clampInt(quantity)

	base := quantity / WorkingDays
	remainder := quantity % WorkingDays

	var days DayVector
	for d := Monday; d <= Friday; d++ {
		days[d] = base
		if int(d) < remainder {
			days[d]++
		}
	}

	return days
}

// SplitFloat is Split for untrusted input. Negative, non-finite and
// non-integer values are treated as 0.
func SplitFloat(quantity float64) DayVector {
	if quantity != math.Trunc(quantity) {
		return Split(0)
	}
	return Split(clampTotal(quantity))
}
