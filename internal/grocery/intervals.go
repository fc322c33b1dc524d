package grocery

import "sort"

// Sentinel values returned when there is not enough history to answer.
const (
	// NoInterval is returned when fewer than two purchases exist.
	NoInterval = -1.0
	// NeverPurchased is returned for items with no recorded purchase.
	NeverPurchased = -1
)

const (
	// dueTolerance suggests an item half a week before its average
	// interval has fully elapsed.
	dueTolerance = 0.5
	// sensitiveGapWeeks is the fixed repurchase window for
	// time-sensitive items without interval data.
	sensitiveGapWeeks = 2
	// rotationLagWeeks is how far back Rotate looks for perishables.
	rotationLagWeeks = 2
)

// averageInterval computes the mean gap between consecutive purchases.
// The week list is copied and sorted at query time; insertion order is
// preserved in the ledger itself. Returns NoInterval for fewer than two
// purchases.
func averageInterval(weeks []int) float64 {
	if len(weeks) < 2 {
		return NoInterval
	}

	sorted := make([]int, len(weeks))
	copy(sorted, weeks)
	sort.Ints(sorted)

	total := 0
	for i := 1; i < len(sorted); i++ {
		total += sorted[i] - sorted[i-1]
	}
	return float64(total) / float64(len(sorted)-1)
}

// dueByInterval reports whether an item is due given its average
// interval and the weeks elapsed since its last purchase. An item comes
// due slightly before the full interval has passed. Never true when the
// interval is undefined.
func dueByInterval(avgInterval float64, weeksSince int) bool {
	if avgInterval == NoInterval {
		return false
	}
	return float64(weeksSince) >= avgInterval-dueTolerance
}
