package planning

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/slices"
)

// Policy selects how a total is redistributed over week buckets.
type Policy string

const (
	PolicyCopyObjective Policy = "COPY_OBJECTIF" // planned = objective, the objectives define the new total
	PolicyEqualize      Policy = "EQUALIZE"      // same amount per bucket, earliest buckets take the remainder
	PolicyProportional  Policy = "PROPORTIONAL"  // weighted by the bucket objectives
	PolicySplitHalf     Policy = "SPLIT_HALF"    // half of the total on the first half of the buckets
)

var ErrUnknownPolicy = errors.New("unknown distribution policy")

// ParsePolicy returns the Policy for its name. Matching ignores case.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case PolicyCopyObjective, PolicyEqualize, PolicyProportional, PolicySplitHalf:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Bucket is one week of an order in chronological order.
type Bucket struct {
	Objective float64
	Planned   int
}

// Distribution is the result of Distribute. Planned has one entry per
// input bucket and sums to Total.
type Distribution struct {
	Policy  Policy
	Planned []int
	Total   int
}

// Distribute computes new planned values for the buckets. total is
// ignored by PolicyCopyObjective, which derives the total from the
// bucket objectives.
func Distribute(policy Policy, buckets []Bucket, total float64) (Distribution, error) {
	var planned []int
	t := clampTotal(total)

	switch policy {
	case PolicyCopyObjective:
		objectives := make([]float64, len(buckets))
		for i, b := range buckets {
			objectives[i] = b.Objective
		}
		planned, _ = CopyObjectifToPlanifie(objectives)
	case PolicyEqualize:
		planned = Equalize(t, len(buckets))
	case PolicyProportional:
		weights := make([]float64, len(buckets))
		for i, b := range buckets {
			weights[i] = b.Objective
		}
		planned = Proportional(t, weights)
	case PolicySplitHalf:
		planned = SplitHalfStartHalfEnd(t, len(buckets))
	default:
		return Distribution{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}

	sum := 0
	for _, p := range planned {
		sum += p
	}

	return Distribution{Policy: policy, Planned: planned, Total: sum}, nil
}

// CopyObjectifToPlanifie sets every planned value to its floored
// objective and returns the sum of the objectives as the new overall
// target.
func CopyObjectifToPlanifie(objectives []float64) ([]int, int) {
	planned := make([]int, len(objectives))
	total := 0
	for i, o := range objectives {
		planned[i] = clampTotal(o)
		total += planned[i]
	}
	return planned, total
}

// Equalize splits total into n parts that differ by at most one unit.
// The first total%n parts get the extra unit.
func Equalize(total, n int) []int {
	if n <= 0 {
		return []int{}
	}
	total = clampInt(total)

	base := total / n
	remainder := total % n

	parts := make([]int, n)
	for i := range parts {
		parts[i] = base
		if i < remainder {
			parts[i]++
		}
	}
	return parts
}

// Proportional splits total according to weights with the largest
// remainder method: every share is floored, then the units lost to
// rounding go one by one to the largest fractional parts, earliest
// index first on ties. Without any positive weight it falls back to
// Equalize.
func Proportional(total int, weights []float64) []int {
	n := len(weights)
	if n == 0 {
		return []int{}
	}
	total = clampInt(total)

	// Weights are scaled to at most 1 so that neither their sum nor a
	// share can overflow.
	largest := 0.0
	clean := make([]float64, n)
	for i, w := range weights {
		clean[i] = clampWeight(w)
		largest = math.Max(largest, clean[i])
	}
	if largest == 0 {
		return Equalize(total, n)
	}

	sum := 0.0
	for i := range clean {
		clean[i] /= largest
		sum += clean[i]
	}

	parts := make([]int, n)
	fractions := make([]float64, n)
	assigned := 0
	for i, w := range clean {
		raw := math.Min(w/sum*float64(total), float64(total))
		floor := math.Floor(raw)
		parts[i] = int(floor)
		fractions[i] = raw - floor
		assigned += parts[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case fractions[a] > fractions[b]:
			return -1
		case fractions[a] < fractions[b]:
			return 1
		}
		return 0
	})

	for left, k := total-assigned, 0; left > 0; left, k = left-1, k+1 {
		parts[order[k%n]]++
	}

	// Float rounding on very large totals can floor to more than total.
	// The excess is taken back from the smallest fractions.
	for excess, k := assigned-total, n-1; excess > 0; k-- {
		i := order[(k%n+n)%n]
		if parts[i] > 0 {
			parts[i]--
			excess--
		}
	}

	return parts
}

// SplitHalfStartHalfEnd puts floor(total/2) on the first ceil(n/2)
// buckets and the rest on the remaining ones, equalized within each
// half. With a single bucket there is no second half and the bucket
// takes the whole total.
func SplitHalfStartHalfEnd(total, n int) []int {
	if n <= 0 {
		return []int{}
	}
	total = clampInt(total)

	firstCount := (n + 1) / 2
	secondCount := n - firstCount
	if secondCount == 0 {
		return Equalize(total, firstCount)
	}

	firstTotal := total / 2
	secondTotal := total - firstTotal

	return append(Equalize(firstTotal, firstCount), Equalize(secondTotal, secondCount)...)
}
