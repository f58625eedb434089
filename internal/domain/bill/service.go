package bill

import (
	"context"
	"strings"
)

// Service contains the business logic for bill operations
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new bill; bills always start as upcoming.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Bill, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Category) == "" {
		params.Category = "General"
	}
	return s.repo.Create(ctx, params)
}

// List returns all bills for the user, soonest due first.
func (s *Service) List(ctx context.Context, userID int64) ([]*Bill, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Upcoming returns the user's bills that are still awaiting payment.
func (s *Service) Upcoming(ctx context.Context, userID int64) ([]*Bill, error) {
	return s.repo.ListByStatus(ctx, userID, StatusUpcoming)
}

// UpdateStatus transitions a bill to a new status. The bill must belong to
// the requesting user.
func (s *Service) UpdateStatus(ctx context.Context, userID int64, billID, status string) (*Bill, error) {
	if !IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}

	return s.repo.UpdateStatus(ctx, billID, status)
}
