package grocery

import "sort"

// ItemInfo is a point-in-time view of everything tracked for one item.
// Sentinel values follow the query methods: NeverPurchased for the last
// week, NoInterval for the average interval.
type ItemInfo struct {
	Name            string   `json:"name"`
	Category        Category `json:"category,omitempty"`
	TimeSensitive   bool     `json:"time_sensitive"`
	Frequency       int      `json:"frequency"`
	LastPurchase    int      `json:"last_purchase_week"`
	AverageInterval float64  `json:"average_interval"`
}

// ItemInfo assembles the full view of one item under a single read
// lock, so frequency and history are never observed torn.
func (b *ListBuilder) ItemInfo(name string) ItemInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()

	info := ItemInfo{
		Name:            name,
		Category:        b.categories[name],
		TimeSensitive:   b.timeSensitive[name],
		Frequency:       b.frequency[name],
		LastPurchase:    NeverPurchased,
		AverageInterval: averageInterval(b.purchaseWeeks[name]),
	}
	if last, ok := b.lastPurchase[name]; ok {
		info.LastPurchase = last
	}
	return info
}

// Snapshot summarizes the whole session.
type Snapshot struct {
	CurrentWeek   int      `json:"current_week"`
	Items         int      `json:"items"`
	Purchases     int      `json:"purchases"`
	Weeks         []int    `json:"weeks"`
	TimeSensitive []string `json:"time_sensitive"`
}

// Snapshot returns session-level totals under one read lock.
func (b *ListBuilder) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0
	for _, count := range b.frequency {
		total += count
	}

	weeks := []int{}
	for week := range b.weeklyItems {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	sensitive := []string{}
	for item := range b.timeSensitive {
		sensitive = append(sensitive, item)
	}
	sort.Strings(sensitive)

	return Snapshot{
		CurrentWeek:   b.currentWeek,
		Items:         len(b.purchaseWeeks),
		Purchases:     total,
		Weeks:         weeks,
		TimeSensitive: sensitive,
	}
}
