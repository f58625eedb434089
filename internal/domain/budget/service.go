package budget

import "context"

// Service contains the business logic for budget operations
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's budget, or ErrBudgetNotFound if none was set.
func (s *Service) Get(ctx context.Context, userID int64) (*Budget, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update replaces the user's budget wholesale.
func (s *Service) Update(ctx context.Context, params UpsertParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Expenses == nil {
		params.Expenses = []ExpenseItem{}
	}
	return s.repo.Upsert(ctx, params)
}
