package goal

import "context"

// Repository defines the interface for goal data access
type Repository interface {
	Create(ctx context.Context, g *Goal) (*Goal, error)
	GetByID(ctx context.Context, id string) (*Goal, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Goal, error)
	UpdateProgress(ctx context.Context, id string, currentAmount, progress float64, status string) (*Goal, error)
}
