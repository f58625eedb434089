package goal

import (
	"errors"
	"time"
)

// Goal status values
const (
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Domain errors
var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrForbidden    = errors.New("access forbidden")
)

// Goal is a savings target. Progress and Status are derived from the
// amounts and recomputed on every write; status is completed exactly when
// currentAmount has reached targetAmount.
type Goal struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"-"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	TargetDate    time.Time `json:"targetDate"`
	Category      string    `json:"category"`
	Progress      float64   `json:"progress"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Recompute refreshes the derived Progress and Status fields.
func (g *Goal) Recompute() {
	g.Progress = g.CurrentAmount / g.TargetAmount
	if g.CurrentAmount >= g.TargetAmount {
		g.Status = StatusCompleted
	} else {
		g.Status = StatusInProgress
	}
}

// CreateParams contains parameters for creating a new goal
type CreateParams struct {
	UserID        int64
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    time.Time
	Category      string
}

func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("goal name is required")
	}
	if p.TargetAmount <= 0 {
		return errors.New("target amount must be positive")
	}
	if p.CurrentAmount < 0 {
		return errors.New("current amount must not be negative")
	}
	return nil
}
