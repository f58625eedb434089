package transaction

import (
	"encoding/json"
	"errors"
	"time"
)

// Transaction types, derived from the amount's sign and never stored
const (
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
)

const DefaultCategory = "Uncategorized"

// Domain errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("transaction amount must be non-zero")
	ErrInvalidType         = errors.New("type must be 'deposit' or 'withdrawal'")
)

// Transaction is an immutable ledger entry. Positive amounts are deposits,
// negative amounts withdrawals.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"-"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Method      string    `json:"method"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Type derives the transaction type from the amount's sign.
func (t *Transaction) Type() string {
	if t.Amount > 0 {
		return TypeDeposit
	}
	return TypeWithdrawal
}

// IsExpense reports whether the transaction is a withdrawal.
func (t *Transaction) IsExpense() bool {
	return t.Amount < 0
}

// MarshalJSON includes the derived type field in API responses.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Type string `json:"type"`
	}{alias(t), t.Type()})
}

// CreateParams contains parameters for recording a transaction
type CreateParams struct {
	UserID      int64
	Amount      float64
	Category    string
	Description string
	Method      string
	Date        time.Time
}

func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Amount == 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ListFilter narrows transaction listings. Zero values mean "no constraint".
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Type      string // deposit | withdrawal
	Method    string
}

func (f ListFilter) Validate() error {
	if f.Type != "" && f.Type != TypeDeposit && f.Type != TypeWithdrawal {
		return ErrInvalidType
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return errors.New("endDate must not precede startDate")
	}
	return nil
}
