package transaction

import (
	"context"
	"time"
)

// Repository defines the interface for transaction data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Transaction, error)
	ListByUserID(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, error)
	ListSince(ctx context.Context, userID int64, since time.Time) ([]*Transaction, error)
	SumByUserID(ctx context.Context, userID int64) (float64, error)
}
