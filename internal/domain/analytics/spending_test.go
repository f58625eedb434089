package analytics

import (
	"math"
	"testing"
	"time"

	"finsight/internal/domain/transaction"
)

func tx(amount float64, category string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		UserID:   1,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestAggregateSpending_Scenario(t *testing.T) {
	now := time.Now()
	txns := []*transaction.Transaction{
		tx(-100, "Food", now),
		tx(-50, "Food", now),
		tx(-200, "Housing", now),
	}

	result := AggregateSpending(txns, 3)

	if !approx(result.TotalSpent, 350) {
		t.Fatalf("TotalSpent = %v, want 350", result.TotalSpent)
	}
	if len(result.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(result.Categories))
	}

	housing := result.Categories[0]
	if housing.Category != "Housing" || !approx(housing.Total, 200) || !approx(housing.Percentage, 57.14) {
		t.Errorf("first category = %+v, want Housing 200 (57.14%%)", housing)
	}
	food := result.Categories[1]
	if food.Category != "Food" || !approx(food.Total, 150) || !approx(food.Percentage, 42.86) {
		t.Errorf("second category = %+v, want Food 150 (42.86%%)", food)
	}
	if !approx(food.AverageTransaction, 75) {
		t.Errorf("Food averageTransaction = %v, want 75", food.AverageTransaction)
	}
}

func TestAggregateSpending_IgnoresDeposits(t *testing.T) {
	now := time.Now()
	txns := []*transaction.Transaction{
		tx(2000, "Salary", now),
		tx(-100, "Food", now),
	}

	result := AggregateSpending(txns, 3)
	if !approx(result.TotalSpent, 100) {
		t.Errorf("TotalSpent = %v, want 100 (deposits excluded)", result.TotalSpent)
	}
	if len(result.Categories) != 1 || result.Categories[0].Category != "Food" {
		t.Errorf("categories = %+v, want only Food", result.Categories)
	}
}

func TestAggregateSpending_Empty(t *testing.T) {
	result := AggregateSpending(nil, 3)
	if result.TotalSpent != 0 {
		t.Errorf("TotalSpent = %v, want 0", result.TotalSpent)
	}
	if len(result.Categories) != 0 {
		t.Errorf("categories = %+v, want empty", result.Categories)
	}
}

func TestAggregateSpending_EmptyCategoryDefaults(t *testing.T) {
	result := AggregateSpending([]*transaction.Transaction{
		tx(-30, "", time.Now()),
	}, 3)
	if len(result.Categories) != 1 || result.Categories[0].Category != transaction.DefaultCategory {
		t.Errorf("categories = %+v, want Uncategorized", result.Categories)
	}
}

func TestAggregateSpending_Conservation(t *testing.T) {
	now := time.Now()
	txns := []*transaction.Transaction{
		tx(-12.34, "A", now), tx(-56.78, "B", now), tx(-9.99, "A", now),
		tx(-100, "C", now), tx(500, "Salary", now),
	}

	result := AggregateSpending(txns, 3)

	var catSum, pctSum float64
	for _, c := range result.Categories {
		catSum += c.Total
		pctSum += c.Percentage
	}
	if !approx(catSum, result.TotalSpent) {
		t.Errorf("category totals sum to %v, TotalSpent is %v", catSum, result.TotalSpent)
	}
	if !approx(pctSum, 100) {
		t.Errorf("percentages sum to %v, want 100", pctSum)
	}
}
