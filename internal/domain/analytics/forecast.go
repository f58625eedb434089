package analytics

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"finsight/internal/domain/bill"
	"finsight/internal/domain/transaction"
)

// Forecaster projects spending for the next three calendar months from
// per-category historical averages. The random source and clock are
// injected so tests can pin exact outputs.
type Forecaster struct {
	rng *rand.Rand
	now func() time.Time
}

func NewForecaster(rng *rand.Rand, now func() time.Time) *Forecaster {
	if now == nil {
		now = time.Now
	}
	return &Forecaster{rng: rng, now: now}
}

const forecastMonths = 3

// Forecast computes per-category monthly averages over the trailing window,
// then projects each of the next 3 calendar months as average x jitter,
// jitter uniform in [0.9, 1.1] sampled independently per category per month.
// Upcoming bills due in a projected month are added to their category.
func (f *Forecaster) Forecast(txns []*transaction.Transaction, upcomingBills []*bill.Bill, windowMonths int) ForecastResult {
	if windowMonths < 1 {
		windowMonths = 1
	}

	categoryAverages := make(map[string]float64)
	var totalSpent float64
	for _, t := range txns {
		if !t.IsExpense() {
			continue
		}
		category := t.Category
		if category == "" {
			category = transaction.DefaultCategory
		}
		amount := math.Abs(t.Amount)
		categoryAverages[category] += amount
		totalSpent += amount
	}
	for category := range categoryAverages {
		categoryAverages[category] /= float64(windowMonths)
	}

	// Stable iteration order so the jitter stream is deterministic for a
	// given seed regardless of map layout.
	categories := make([]string, 0, len(categoryAverages))
	for category := range categoryAverages {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	now := f.now()
	forecast := make([]MonthForecast, 0, forecastMonths)
	for i := 1; i <= forecastMonths; i++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, i, 0)
		mf := MonthForecast{
			Month:      monthStart.Format("2006-01"),
			Categories: make(map[string]float64),
		}

		for _, category := range categories {
			jitter := 0.9 + f.rng.Float64()*0.2
			mf.Categories[category] = categoryAverages[category] * jitter
		}

		// Fold bills due inside this calendar month into their category
		monthEnd := monthStart.AddDate(0, 1, 0)
		for _, b := range upcomingBills {
			if b.DueDate.Before(monthStart) || !b.DueDate.Before(monthEnd) {
				continue
			}
			category := b.Category
			if category == "" {
				category = "Bills"
			}
			mf.Categories[category] += b.Amount
		}

		for _, amount := range mf.Categories {
			mf.Total += amount
		}
		forecast = append(forecast, mf)
	}

	return ForecastResult{
		MonthlyAverage:   totalSpent / float64(windowMonths),
		CategoryAverages: categoryAverages,
		Forecast:         forecast,
		WindowMonths:     windowMonths,
	}
}
