package importer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ItemScore pairs an item with its purchase-regularity score.
type ItemScore struct {
	Item  string  `json:"item"`
	Score float64 `json:"score"`
}

// AnalyzeRegularity scores how regular each item's purchase cadence is
// in a history file. Items bought in evenly spaced weeks score high;
// erratic cadences score low; items seen in fewer than two distinct
// weeks score zero. A high score hints the item is worth marking
// time-sensitive. The format matches Import.
//
// The score is distinctWeeks / (1 + variance(intervals)): more distinct
// weeks raise it, interval variance lowers it.
func AnalyzeRegularity(r io.Reader) (map[string]float64, error) {
	weekCounts := make(map[string]map[int]int)

	probe := &collectingBuilder{weeks: weekCounts}
	if err := scanRows(r, probe.add); err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(weekCounts))
	for item, weeks := range weekCounts {
		scores[item] = regularityScore(weeks)
	}
	return scores, nil
}

// RankScores orders scores descending, ties broken by name.
func RankScores(scores map[string]float64) []ItemScore {
	ranked := make([]ItemScore, 0, len(scores))
	for item, score := range scores {
		ranked = append(ranked, ItemScore{Item: item, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Item < ranked[j].Item
	})
	return ranked
}

// collectingBuilder accumulates per-item week counts without touching
// the engine; the regularity pass is read-only analysis.
type collectingBuilder struct {
	weeks map[string]map[int]int
}

func (c *collectingBuilder) add(item string, week int) {
	if c.weeks[item] == nil {
		c.weeks[item] = make(map[int]int)
	}
	c.weeks[item][week]++
}

// scanRows walks the same record format as Import, invalid rows
// silently skipped: the analysis is advisory and partial data is fine.
func scanRows(r io.Reader, record func(item string, week int)) error {
	scanner := bufio.NewScanner(r)
	header := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}
		item, week, _, err := parseLine(line)
		if err != nil {
			continue
		}
		record(item, week)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading history data: %w", err)
	}
	return nil
}

// regularityScore computes distinctWeeks / (1 + variance) over the
// gaps between consecutive distinct purchase weeks.
func regularityScore(weekCounts map[int]int) float64 {
	if len(weekCounts) < 2 {
		return 0.0
	}

	weeks := make([]int, 0, len(weekCounts))
	for week := range weekCounts {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	intervals := make([]int, 0, len(weeks)-1)
	sum := 0
	for i := 1; i < len(weeks); i++ {
		gap := weeks[i] - weeks[i-1]
		intervals = append(intervals, gap)
		sum += gap
	}
	mean := float64(sum) / float64(len(intervals))

	variance := 0.0
	for _, gap := range intervals {
		diff := float64(gap) - mean
		variance += diff * diff
	}
	variance /= float64(len(intervals))

	return float64(len(weekCounts)) * (1.0 / (1.0 + variance))
}
