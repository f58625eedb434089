package transaction

import (
	"context"
	"strings"
	"time"
)

// Service contains the business logic for transaction operations
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records a new transaction. The amount's sign determines the type;
// an empty category defaults to Uncategorized and a zero date to now.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Category) == "" {
		params.Category = DefaultCategory
	}
	if params.Date.IsZero() {
		params.Date = time.Now()
	}

	return s.repo.Create(ctx, params)
}

// List returns the user's transactions, newest first, applying the filter.
func (s *Service) List(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListByUserID(ctx, userID, filter)
}

// Balance returns the sum of all transaction amounts for the user.
func (s *Service) Balance(ctx context.Context, userID int64) (float64, error) {
	return s.repo.SumByUserID(ctx, userID)
}
