package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"finsight/internal/domain/news"
)

type NewsRepository struct {
	db *DB
}

func NewNewsRepository(db *DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(ctx context.Context, params news.CreateParams) (*news.Item, error) {
	query := `
		INSERT INTO news (id, title, content, source, sentiment_score, keywords, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, content, source, sentiment_score, keywords, summary, created_at
	`

	var item news.Item
	var keywords pq.StringArray
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.Title, params.Content, params.Source,
		params.SentimentScore, pq.Array(params.Keywords), params.Summary,
	).Scan(
		&item.ID, &item.Title, &item.Content, &item.Source,
		&item.SentimentScore, &keywords, &item.Summary, &item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create news item: %w", err)
	}
	item.Keywords = keywords

	return &item, nil
}

func (r *NewsRepository) ListRecent(ctx context.Context, limit int) ([]*news.Item, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, title, content, source, sentiment_score, keywords, summary, created_at
		FROM news
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	var items []*news.Item
	for rows.Next() {
		var item news.Item
		var keywords pq.StringArray
		err := rows.Scan(
			&item.ID, &item.Title, &item.Content, &item.Source,
			&item.SentimentScore, &keywords, &item.Summary, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		item.Keywords = keywords
		items = append(items, &item)
	}
	return items, rows.Err()
}
