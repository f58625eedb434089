package analytics

import (
	"math"
	"sort"

	"finsight/internal/domain/transaction"
)

// Frequency classes checked in order; the first whose tolerance band
// contains every gap wins.
var frequencyClasses = []struct {
	name string
	days float64
}{
	{"weekly", 7},
	{"bi-weekly", 14},
	{"monthly", 30},
}

const (
	gapTolerance    = 0.25 // gaps may deviate +-25% from the class interval
	amountTolerance = 0.15 // amounts may deviate +-15% from the group mean
	minOccurrences  = 3
)

// DetectRecurring finds repeating charges: expense transactions grouped by
// category and exact description, with at least three occurrences whose
// consecutive day-gaps all fit a weekly, bi-weekly, or monthly cadence.
func DetectRecurring(txns []*transaction.Transaction) []RecurringPattern {
	type key struct {
		category string
		merchant string
	}
	groups := make(map[key][]*transaction.Transaction)
	for _, t := range txns {
		if !t.IsExpense() || t.Description == "" {
			continue
		}
		category := t.Category
		if category == "" {
			category = transaction.DefaultCategory
		}
		k := key{category: category, merchant: t.Description}
		groups[k] = append(groups[k], t)
	}

	var patterns []RecurringPattern
	for k, group := range groups {
		if len(group) < minOccurrences {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		frequency := classifyGaps(group)
		if frequency == "" {
			continue
		}

		var sum float64
		for _, t := range group {
			sum += math.Abs(t.Amount)
		}
		mean := sum / float64(len(group))

		regular := true
		for _, t := range group {
			if math.Abs(math.Abs(t.Amount)-mean) > amountTolerance*mean {
				regular = false
				break
			}
		}

		patterns = append(patterns, RecurringPattern{
			Category:         k.category,
			Merchant:         k.merchant,
			Frequency:        frequency,
			AverageAmount:    mean,
			TransactionCount: len(group),
			IsRegularAmount:  regular,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Category != patterns[j].Category {
			return patterns[i].Category < patterns[j].Category
		}
		return patterns[i].Merchant < patterns[j].Merchant
	})

	return patterns
}

// classifyGaps returns the first frequency class whose tolerance band
// contains every consecutive gap, or "" when none fits.
func classifyGaps(group []*transaction.Transaction) string {
	gaps := make([]float64, 0, len(group)-1)
	for i := 1; i < len(group); i++ {
		gaps = append(gaps, group[i].Date.Sub(group[i-1].Date).Hours()/24)
	}

	for _, class := range frequencyClasses {
		fits := true
		for _, gap := range gaps {
			if math.Abs(gap-class.days) > gapTolerance*class.days {
				fits = false
				break
			}
		}
		if fits {
			return class.name
		}
	}
	return ""
}
