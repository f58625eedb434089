package bill

import (
	"context"
	"time"
)

// Repository defines the interface for bill data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Bill, error)
	GetByID(ctx context.Context, id string) (*Bill, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Bill, error)
	ListByStatus(ctx context.Context, userID int64, status string) ([]*Bill, error)
	UpdateStatus(ctx context.Context, id, status string) (*Bill, error)

	// Scheduler queries, spanning all users. MarkOverdue returns the bills
	// it transitioned so callers can notify their owners.
	MarkOverdue(ctx context.Context, asOf time.Time) ([]*Bill, error)
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*Bill, error)
}
