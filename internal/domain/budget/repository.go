package budget

import "context"

// Repository defines the interface for budget data access
type Repository interface {
	GetByUserID(ctx context.Context, userID int64) (*Budget, error)
	Upsert(ctx context.Context, params UpsertParams) (*Budget, error)
}
