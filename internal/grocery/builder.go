// Package grocery maintains a purchase history of grocery items across
// numbered weeks and derives shopping suggestions from it: which items
// are bought most often, which are due again given their historical
// cadence, and which perishables should rotate back onto the list.
package grocery

import (
	"sort"
	"sync"
)

const (
	// defaultMinSuggestions pads the suggestion list up to this size.
	defaultMinSuggestions = 5
	// DefaultTopFrequentLimit caps TopFrequent when no limit is given.
	DefaultTopFrequentLimit = 10
)

// Config tunes display-level behavior of a ListBuilder. The interval and
// rotation semantics themselves are fixed.
type Config struct {
	// MinSuggestions is the padding floor for Suggestions. Zero means
	// the default of 5.
	MinSuggestions int
	// ExtraPerishables marks additional categories as auto
	// time-sensitive on assignment, on top of the built-in set.
	ExtraPerishables []Category
}

// ListBuilder accumulates purchase events and answers suggestion
// queries. All state lives behind one lock; every mutation appears
// atomic to readers. Entries are created lazily on first reference and
// never deleted.
type ListBuilder struct {
	mu sync.RWMutex

	frequency     map[string]int      // item -> total purchase count
	weeklyItems   map[int][]string    // week -> items bought that week, insertion order
	lastPurchase  map[string]int      // item -> max week ever recorded
	purchaseWeeks map[string][]int    // item -> weeks bought, insertion order
	categories    map[string]Category // item -> assigned category
	timeSensitive map[string]bool     // items flagged perishable
	currentWeek   int

	minSuggestions int
	perishable     map[Category]bool
}

// New creates a ListBuilder with default settings.
func New() *ListBuilder {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a ListBuilder with the given tuning.
func NewWithConfig(cfg Config) *ListBuilder {
	min := cfg.MinSuggestions
	if min <= 0 {
		min = defaultMinSuggestions
	}

	perishable := make(map[Category]bool, len(perishableByDefault)+len(cfg.ExtraPerishables))
	for c := range perishableByDefault {
		perishable[c] = true
	}
	for _, c := range cfg.ExtraPerishables {
		perishable[c] = true
	}

	return &ListBuilder{
		frequency:      make(map[string]int),
		weeklyItems:    make(map[int][]string),
		lastPurchase:   make(map[string]int),
		purchaseWeeks:  make(map[string][]int),
		categories:     make(map[string]Category),
		timeSensitive:  make(map[string]bool),
		currentWeek:    1,
		minSuggestions: min,
		perishable:     perishable,
	}
}

// RecordPurchase appends a purchase event for item in the given week.
// It is total: any string and any week are accepted, and callers own
// validation of week positivity. The current week advances if the event
// is newer than anything seen so far.
func (b *ListBuilder) RecordPurchase(item string, week int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(item, week)
}

// record is the single write path. Callers must hold the write lock.
func (b *ListBuilder) record(item string, week int) {
	b.frequency[item]++
	b.weeklyItems[week] = append(b.weeklyItems[week], item)
	b.purchaseWeeks[item] = append(b.purchaseWeeks[item], week)

	if last, ok := b.lastPurchase[item]; !ok || week > last {
		b.lastPurchase[item] = week
	}
	if week > b.currentWeek {
		b.currentWeek = week
	}
}

// AssignCategory sets the item's category. Assigning a perishable
// category also flags the item time-sensitive; that trigger is one-way,
// so a later non-perishable assignment does not clear the flag.
func (b *ListBuilder) AssignCategory(item string, category Category) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.categories[item] = category
	if b.perishable[category] {
		b.timeSensitive[item] = true
	}
}

// Category returns the item's assigned category, or "" if unset.
func (b *ListBuilder) Category(item string) Category {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.categories[item]
}

// MarkTimeSensitive flags the item as perishable.
func (b *ListBuilder) MarkTimeSensitive(item string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timeSensitive[item] = true
}

// UnmarkTimeSensitive clears the perishable flag.
func (b *ListBuilder) UnmarkTimeSensitive(item string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.timeSensitive, item)
}

// IsTimeSensitive reports whether the item is flagged perishable.
func (b *ListBuilder) IsTimeSensitive(item string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.timeSensitive[item]
}

// TopFrequent returns up to limit item names ordered by total purchase
// count, highest first. Equal counts order lexically. A limit of zero
// or less means DefaultTopFrequentLimit.
func (b *ListBuilder) TopFrequent(limit int) []string {
	if limit <= 0 {
		limit = DefaultTopFrequentLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	return topFrequent(b.frequency, limit)
}

// Frequency returns the total purchase count for the item.
func (b *ListBuilder) Frequency(item string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frequency[item]
}

// AveragePurchaseInterval returns the mean number of weeks between the
// item's consecutive purchases, or NoInterval when fewer than two
// purchases are recorded.
func (b *ListBuilder) AveragePurchaseInterval(item string) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return averageInterval(b.purchaseWeeks[item])
}

// LastPurchaseWeek returns the highest week the item was ever bought,
// or NeverPurchased.
func (b *ListBuilder) LastPurchaseWeek(item string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	last, ok := b.lastPurchase[item]
	if !ok {
		return NeverPurchased
	}
	return last
}

// CurrentWeek returns the week suggestions are evaluated against.
func (b *ListBuilder) CurrentWeek() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.currentWeek
}

// SetCurrentWeek moves the evaluation point directly, independent of
// recorded data.
func (b *ListBuilder) SetCurrentWeek(week int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentWeek = week
}

// Suggestions builds the shopping list for the current week. An item is
// included when its purchase cadence says it is due, or when it is
// time-sensitive and at least two weeks have passed since it was last
// bought. Short lists are padded with the most frequent repeat
// purchases until at least the configured minimum is reached or
// candidates run out; the padding is a display heuristic, not a cadence
// judgment.
//
// Due items appear first, ordered by name; padding follows in
// descending frequency order.
func (b *ListBuilder) Suggestions() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	items := make([]string, 0, len(b.purchaseWeeks))
	for item := range b.purchaseWeeks {
		items = append(items, item)
	}
	sort.Strings(items)

	suggested := []string{}
	included := make(map[string]bool)
	for _, item := range items {
		weeks := b.purchaseWeeks[item]
		since := b.currentWeek - b.lastPurchase[item]

		due := dueByInterval(averageInterval(weeks), since)
		sensitiveDue := b.timeSensitive[item] && since >= sensitiveGapWeeks
		if due || sensitiveDue {
			suggested = append(suggested, item)
			included[item] = true
		}
	}

	if len(suggested) < b.minSuggestions {
		for _, item := range topFrequent(b.frequency, len(b.frequency)) {
			if len(suggested) >= b.minSuggestions {
				break
			}
			if included[item] || len(b.purchaseWeeks[item]) < 2 {
				continue
			}
			suggested = append(suggested, item)
			included[item] = true
		}
	}

	return suggested
}

// Rotate re-adds perishables bought exactly two weeks before the given
// week, provided they have not been bought since. Each rotation is a
// real purchase event: history, frequency and last-purchase tracking
// all advance, so a rotated item is no longer due afterwards. Returns
// the items actually rotated, in the order they were originally bought.
func (b *ListBuilder) Rotate(week int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if week > b.currentWeek {
		b.currentWeek = week
	}

	rotated := []string{}
	for _, item := range b.weeklyItems[week-rotationLagWeeks] {
		if !b.timeSensitive[item] {
			continue
		}
		last, ok := b.lastPurchase[item]
		if !ok || last > week-rotationLagWeeks {
			continue
		}
		b.record(item, week)
		rotated = append(rotated, item)
	}
	return rotated
}

// ItemsInCategory returns the names of all items assigned the given
// category, ordered by name.
func (b *ListBuilder) ItemsInCategory(category Category) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	items := []string{}
	for item, c := range b.categories {
		if c == category {
			items = append(items, item)
		}
	}
	sort.Strings(items)
	return items
}

// WeeklyItems returns the items bought in the given week, in purchase
// order.
func (b *ListBuilder) WeeklyItems(week int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	items := make([]string, len(b.weeklyItems[week]))
	copy(items, b.weeklyItems[week])
	return items
}

// Categories returns every category assigned so far, ordered by name.
func (b *ListBuilder) Categories() []Category {
	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[Category]bool)
	categories := []Category{}
	for _, c := range b.categories {
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

// Weeks returns every week with recorded purchases, ascending.
func (b *ListBuilder) Weeks() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	weeks := []int{}
	for week := range b.weeklyItems {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)
	return weeks
}

// Items returns every item ever purchased, ordered by name.
func (b *ListBuilder) Items() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	items := []string{}
	for item := range b.purchaseWeeks {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}
