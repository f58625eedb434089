package analytics

import (
	"math"

	"finsight/internal/domain/bill"
	"finsight/internal/domain/budget"
	"finsight/internal/domain/transaction"
)

// emergencyMonthsCap is the sentinel reported when monthly expenses are
// zero: the runway is effectively unbounded.
const emergencyMonthsCap = 999

// debtCategory marks bills counted toward the debt-to-income ratio.
const debtCategory = "Debt"

// ComputeHealthMetrics derives the raw financial metrics over a trailing
// window. Monthly income/expenses prefer the stored budget and fall back
// to historical figures divided by the window length. Every ratio carries
// an explicit zero-denominator guard.
func ComputeHealthMetrics(txns []*transaction.Transaction, b *budget.Budget, upcomingBills []*bill.Bill, balance float64, windowMonths int) HealthMetrics {
	if windowMonths < 1 {
		windowMonths = 1
	}

	var income, expenses float64
	for _, t := range txns {
		if t.Amount > 0 {
			income += t.Amount
		} else {
			expenses += math.Abs(t.Amount)
		}
	}

	m := HealthMetrics{
		Balance:  balance,
		Income:   income,
		Expenses: expenses,
	}

	// Savings rate is meaningless without income; zero income (or a
	// refund-only negative window) reports 0 rather than a blown-up ratio.
	if income > 0 {
		m.SavingsRate = (income - expenses) / income
	}

	m.MonthlyIncome = income / float64(windowMonths)
	m.MonthlyExpenses = expenses / float64(windowMonths)
	if b != nil {
		if b.Income > 0 {
			m.MonthlyIncome = b.Income
		}
		if planned := b.TotalExpenses(); planned > 0 {
			m.MonthlyExpenses = planned
		}
	}

	var debt float64
	for _, bl := range upcomingBills {
		if bl.Category == debtCategory {
			debt += bl.Amount
		}
	}
	if m.MonthlyIncome > 0 {
		m.DebtToIncome = debt / m.MonthlyIncome
	}

	if m.MonthlyExpenses > 0 {
		m.EmergencyMonths = balance / m.MonthlyExpenses
		if m.EmergencyMonths > emergencyMonthsCap {
			m.EmergencyMonths = emergencyMonthsCap
		}
	} else {
		m.EmergencyMonths = emergencyMonthsCap
	}

	return m
}
