package budget

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrInvalidIncome  = errors.New("monthly income must be positive")
)

// ExpenseItem is one planned expense line in a budget
type ExpenseItem struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// Budget is a user's planned monthly income and expense lines. One budget
// per user, upserted as a whole (last write wins).
type Budget struct {
	UserID    int64         `json:"-"`
	Income    float64       `json:"income"`
	Expenses  []ExpenseItem `json:"expenses"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// TotalExpenses sums all planned expense lines.
func (b *Budget) TotalExpenses() float64 {
	var total float64
	for _, e := range b.Expenses {
		total += e.Amount
	}
	return total
}

// Shortfall is how far planned expenses exceed income, floored at zero.
func (b *Budget) Shortfall() float64 {
	if d := b.TotalExpenses() - b.Income; d > 0 {
		return d
	}
	return 0
}

// UpsertParams contains parameters for replacing a user's budget
type UpsertParams struct {
	UserID   int64
	Income   float64
	Expenses []ExpenseItem
}

func (p UpsertParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Income <= 0 {
		return ErrInvalidIncome
	}
	for _, e := range p.Expenses {
		if e.Category == "" {
			return errors.New("every expense line needs a category")
		}
		if e.Amount < 0 {
			return errors.New("expense amounts must not be negative")
		}
	}
	return nil
}
