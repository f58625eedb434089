package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finsight/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, amount, category, description, method, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, amount, category, description, method, date, created_at
	`

	var t transaction.Transaction
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.UserID, params.Amount, params.Category,
		params.Description, params.Method, params.Date,
	).Scan(
		&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Description, &t.Method, &t.Date, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &t, nil
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, amount, category, description, method, date, created_at
		FROM transactions
		WHERE user_id = $1
	`
	args := []any{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Method != "" {
		args = append(args, filter.Method)
		query += fmt.Sprintf(" AND method = $%d", len(args))
	}
	// Type is derived from the amount's sign
	switch filter.Type {
	case transaction.TypeDeposit:
		query += " AND amount > 0"
	case transaction.TypeWithdrawal:
		query += " AND amount < 0"
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) ListSince(ctx context.Context, userID int64, since time.Time) ([]*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, amount, category, description, method, date, created_at
		FROM transactions
		WHERE user_id = $1 AND date >= $2
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions since %s: %w", since.Format("2006-01-02"), err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) SumByUserID(ctx context.Context, userID int64) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1`

	var sum float64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}

func scanTransactions(rows *sql.Rows) ([]*transaction.Transaction, error) {
	var txns []*transaction.Transaction
	for rows.Next() {
		var t transaction.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Description, &t.Method, &t.Date, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, &t)
	}
	return txns, rows.Err()
}
