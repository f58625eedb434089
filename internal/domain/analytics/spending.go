package analytics

import (
	"math"
	"sort"

	"finsight/internal/domain/transaction"
)

// AggregateSpending groups expense transactions (amount < 0) by category.
// Categories are sorted by total spent, highest first; percentages are of
// total spend and sum to ~100 whenever anything was spent.
func AggregateSpending(txns []*transaction.Transaction, windowMonths int) SpendingAnalysis {
	type bucket struct {
		total float64
		count int
	}
	buckets := make(map[string]*bucket)

	var totalSpent float64
	for _, t := range txns {
		if !t.IsExpense() {
			continue
		}
		category := t.Category
		if category == "" {
			category = transaction.DefaultCategory
		}
		b, ok := buckets[category]
		if !ok {
			b = &bucket{}
			buckets[category] = b
		}
		amount := math.Abs(t.Amount)
		b.total += amount
		b.count++
		totalSpent += amount
	}

	categories := make([]CategorySpending, 0, len(buckets))
	for name, b := range buckets {
		cs := CategorySpending{
			Category:           name,
			Total:              b.total,
			Count:              b.count,
			AverageTransaction: b.total / float64(b.count),
		}
		if totalSpent > 0 {
			cs.Percentage = b.total / totalSpent * 100
		}
		categories = append(categories, cs)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Total != categories[j].Total {
			return categories[i].Total > categories[j].Total
		}
		return categories[i].Category < categories[j].Category
	})

	return SpendingAnalysis{
		TotalSpent:   totalSpent,
		Categories:   categories,
		WindowMonths: windowMonths,
	}
}
