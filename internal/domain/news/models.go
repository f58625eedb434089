package news

import (
	"errors"
	"time"
)

var ErrNewsNotFound = errors.New("news item not found")

// Item is a cached market-sentiment analysis result. Append-only.
type Item struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Source         string    `json:"source"`
	SentimentScore float64   `json:"sentimentScore"` // -1 (bearish) .. 1 (bullish)
	Keywords       []string  `json:"keywords"`
	Summary        string    `json:"summary"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateParams contains parameters for caching a sentiment result
type CreateParams struct {
	Title          string
	Content        string
	Source         string
	SentimentScore float64
	Keywords       []string
	Summary        string
}

func (p CreateParams) Validate() error {
	if p.Content == "" {
		return errors.New("news content is required")
	}
	if p.SentimentScore < -1 || p.SentimentScore > 1 {
		return errors.New("sentiment score must be within [-1, 1]")
	}
	return nil
}
