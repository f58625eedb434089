package news

import "context"

// Repository defines the interface for the news sentiment cache
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Item, error)
	ListRecent(ctx context.Context, limit int) ([]*Item, error)
}
