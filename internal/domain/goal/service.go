package goal

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service contains the business logic for goal operations
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new goal with its derived progress and status.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	g := &Goal{
		ID:            uuid.NewString(),
		UserID:        params.UserID,
		Name:          params.Name,
		TargetAmount:  params.TargetAmount,
		CurrentAmount: params.CurrentAmount,
		TargetDate:    params.TargetDate,
		Category:      params.Category,
	}
	g.Recompute()

	return s.repo.Create(ctx, g)
}

// List returns all goals for the user.
func (s *Service) List(ctx context.Context, userID int64) ([]*Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Get returns a single goal, enforcing ownership.
func (s *Service) Get(ctx context.Context, userID int64, goalID string) (*Goal, error) {
	g, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrForbidden
	}
	return g, nil
}

// UpdateProgress sets a goal's saved amount and recomputes progress/status.
func (s *Service) UpdateProgress(ctx context.Context, userID int64, goalID string, currentAmount float64) (*Goal, error) {
	if currentAmount < 0 {
		return nil, errors.New("current amount must not be negative")
	}

	g, err := s.Get(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	g.CurrentAmount = currentAmount
	g.Recompute()

	return s.repo.UpdateProgress(ctx, g.ID, g.CurrentAmount, g.Progress, g.Status)
}
