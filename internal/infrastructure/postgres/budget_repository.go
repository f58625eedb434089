package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"finsight/internal/domain/budget"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Expense lines are stored as a JSONB column; one budget row per user.

func (r *BudgetRepository) GetByUserID(ctx context.Context, userID int64) (*budget.Budget, error) {
	query := `
		SELECT user_id, income, expenses, updated_at
		FROM budgets
		WHERE user_id = $1
	`

	var b budget.Budget
	var expensesJSON []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&b.UserID, &b.Income, &expensesJSON, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, budget.ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	if err := json.Unmarshal(expensesJSON, &b.Expenses); err != nil {
		return nil, fmt.Errorf("failed to decode budget expenses: %w", err)
	}
	if b.Expenses == nil {
		b.Expenses = []budget.ExpenseItem{}
	}

	return &b, nil
}

func (r *BudgetRepository) Upsert(ctx context.Context, params budget.UpsertParams) (*budget.Budget, error) {
	expensesJSON, err := json.Marshal(params.Expenses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode budget expenses: %w", err)
	}

	query := `
		INSERT INTO budgets (user_id, income, expenses, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET income = EXCLUDED.income, expenses = EXCLUDED.expenses, updated_at = NOW()
		RETURNING user_id, income, expenses, updated_at
	`

	var b budget.Budget
	var returnedJSON []byte
	err = r.db.QueryRowContext(ctx, query, params.UserID, params.Income, expensesJSON).Scan(
		&b.UserID, &b.Income, &returnedJSON, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}

	if err := json.Unmarshal(returnedJSON, &b.Expenses); err != nil {
		return nil, fmt.Errorf("failed to decode budget expenses: %w", err)
	}
	if b.Expenses == nil {
		b.Expenses = []budget.ExpenseItem{}
	}

	return &b, nil
}
