package analytics

import (
	"context"
	"time"

	"finsight/internal/domain/bill"
	"finsight/internal/domain/budget"
	"finsight/internal/domain/transaction"
)

const (
	defaultWindowMonths = 3
	maxWindowMonths     = 24
)

// Service loads a user's financial data and runs the deterministic
// analytics over it.
type Service struct {
	transactions transaction.Repository
	bills        bill.Repository
	budgets      budget.Repository
	forecaster   *Forecaster
	now          func() time.Time
}

func NewService(transactions transaction.Repository, bills bill.Repository, budgets budget.Repository, forecaster *Forecaster) *Service {
	return &Service{
		transactions: transactions,
		bills:        bills,
		budgets:      budgets,
		forecaster:   forecaster,
		now:          time.Now,
	}
}

// ClampWindow normalizes a months query parameter to a sane range.
func ClampWindow(months int) int {
	if months < 1 {
		return defaultWindowMonths
	}
	if months > maxWindowMonths {
		return maxWindowMonths
	}
	return months
}

func (s *Service) windowTransactions(ctx context.Context, userID int64, months int) ([]*transaction.Transaction, error) {
	since := s.now().AddDate(0, -months, 0)
	return s.transactions.ListSince(ctx, userID, since)
}

// Spending aggregates the user's expenses by category over the window.
func (s *Service) Spending(ctx context.Context, userID int64, months int) (*SpendingAnalysis, error) {
	months = ClampWindow(months)
	txns, err := s.windowTransactions(ctx, userID, months)
	if err != nil {
		return nil, err
	}
	result := AggregateSpending(txns, months)
	return &result, nil
}

// Forecast projects the next three months of spending from history plus
// scheduled bills.
func (s *Service) Forecast(ctx context.Context, userID int64, months int) (*ForecastResult, error) {
	months = ClampWindow(months)
	txns, err := s.windowTransactions(ctx, userID, months)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.bills.ListByStatus(ctx, userID, bill.StatusUpcoming)
	if err != nil {
		return nil, err
	}
	result := s.forecaster.Forecast(txns, upcoming, months)
	return &result, nil
}

// HealthMetrics computes the raw health inputs over a fixed 3-month window.
// A missing budget is not an error; historical fallbacks apply.
func (s *Service) HealthMetrics(ctx context.Context, userID int64) (*HealthMetrics, error) {
	txns, err := s.windowTransactions(ctx, userID, defaultWindowMonths)
	if err != nil {
		return nil, err
	}

	balance, err := s.transactions.SumByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	b, err := s.budgets.GetByUserID(ctx, userID)
	if err != nil {
		b = nil
	}

	upcoming, err := s.bills.ListByStatus(ctx, userID, bill.StatusUpcoming)
	if err != nil {
		return nil, err
	}

	m := ComputeHealthMetrics(txns, b, upcoming, balance, defaultWindowMonths)
	return &m, nil
}

// Shortfall predicts whether the projected balance covers upcoming bills.
func (s *Service) Shortfall(ctx context.Context, userID int64) (*ShortfallPrediction, error) {
	balance, err := s.transactions.SumByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var income float64
	if b, err := s.budgets.GetByUserID(ctx, userID); err == nil && b != nil {
		income = b.Income
	}

	upcoming, err := s.bills.ListByStatus(ctx, userID, bill.StatusUpcoming)
	if err != nil {
		return nil, err
	}

	p := PredictShortfall(balance, income, upcoming)
	return &p, nil
}

// Recurring detects repeating charges over the window.
func (s *Service) Recurring(ctx context.Context, userID int64, months int) ([]RecurringPattern, error) {
	months = ClampWindow(months)
	txns, err := s.windowTransactions(ctx, userID, months)
	if err != nil {
		return nil, err
	}
	return DetectRecurring(txns), nil
}
