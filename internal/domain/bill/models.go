package bill

import (
	"errors"
	"time"
)

// Bill status values
const (
	StatusUpcoming = "upcoming"
	StatusPaid     = "paid"
	StatusOverdue  = "overdue"
)

var billStatuses = map[string]struct{}{
	StatusUpcoming: {},
	StatusPaid:     {},
	StatusOverdue:  {},
}

// Domain errors
var (
	ErrBillNotFound  = errors.New("bill not found")
	ErrForbidden     = errors.New("access forbidden")
	ErrInvalidStatus = errors.New("invalid bill status")
)

// Bill represents a recurring or one-off obligation with a due date
type Bill struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	DueDate   time.Time `json:"dueDate"`
	Status    string    `json:"status"` // upcoming, paid, overdue
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new bill
type CreateParams struct {
	UserID   int64
	Name     string
	Amount   float64
	DueDate  time.Time
	Category string
}

func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("bill name is required")
	}
	if p.Amount <= 0 {
		return errors.New("bill amount must be positive")
	}
	if p.DueDate.IsZero() {
		return errors.New("due date is required")
	}
	return nil
}

// IsValidStatus checks if the provided status is valid
func IsValidStatus(s string) bool {
	_, ok := billStatuses[s]
	return ok
}
