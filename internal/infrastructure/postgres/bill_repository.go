package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finsight/internal/domain/bill"
)

type BillRepository struct {
	db *DB
}

func NewBillRepository(db *DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, params bill.CreateParams) (*bill.Bill, error) {
	query := `
		INSERT INTO bills (id, user_id, name, amount, due_date, status, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, name, amount, due_date, status, category, created_at, updated_at
	`

	var b bill.Bill
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.UserID, params.Name, params.Amount,
		params.DueDate, bill.StatusUpcoming, params.Category,
	).Scan(
		&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate, &b.Status, &b.Category, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	return &b, nil
}

func (r *BillRepository) GetByID(ctx context.Context, id string) (*bill.Bill, error) {
	query := `
		SELECT id, user_id, name, amount, due_date, status, category, created_at, updated_at
		FROM bills
		WHERE id = $1
	`

	var b bill.Bill
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate, &b.Status, &b.Category, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, bill.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return &b, nil
}

func (r *BillRepository) ListByUserID(ctx context.Context, userID int64) ([]*bill.Bill, error) {
	query := `
		SELECT id, user_id, name, amount, due_date, status, category, created_at, updated_at
		FROM bills
		WHERE user_id = $1
		ORDER BY due_date ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	return scanBills(rows)
}

func (r *BillRepository) ListByStatus(ctx context.Context, userID int64, status string) ([]*bill.Bill, error) {
	query := `
		SELECT id, user_id, name, amount, due_date, status, category, created_at, updated_at
		FROM bills
		WHERE user_id = $1 AND status = $2
		ORDER BY due_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by status: %w", err)
	}
	defer rows.Close()

	return scanBills(rows)
}

func (r *BillRepository) UpdateStatus(ctx context.Context, id, status string) (*bill.Bill, error) {
	query := `
		UPDATE bills
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, name, amount, due_date, status, category, created_at, updated_at
	`

	var b bill.Bill
	err := r.db.QueryRowContext(ctx, query, id, status).Scan(
		&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate, &b.Status, &b.Category, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, bill.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update bill status: %w", err)
	}

	return &b, nil
}

// MarkOverdue flips every upcoming bill past its due date to overdue,
// across all users, and returns the bills it flipped. Run by the scheduler.
func (r *BillRepository) MarkOverdue(ctx context.Context, asOf time.Time) ([]*bill.Bill, error) {
	query := `
		UPDATE bills
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND due_date < $3
		RETURNING id, user_id, name, amount, due_date, status, category, created_at, updated_at
	`

	rows, err := r.db.QueryContext(ctx, query, bill.StatusOverdue, bill.StatusUpcoming, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue bills: %w", err)
	}
	defer rows.Close()

	return scanBills(rows)
}

// ListDueBetween returns upcoming bills, for all users, with a due date in
// [from, to). Used for reminder notifications.
func (r *BillRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*bill.Bill, error) {
	query := `
		SELECT id, user_id, name, amount, due_date, status, category, created_at, updated_at
		FROM bills
		WHERE status = $1 AND due_date >= $2 AND due_date < $3
		ORDER BY due_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, bill.StatusUpcoming, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list due bills: %w", err)
	}
	defer rows.Close()

	return scanBills(rows)
}

func scanBills(rows *sql.Rows) ([]*bill.Bill, error) {
	var bills []*bill.Bill
	for rows.Next() {
		var b bill.Bill
		err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate, &b.Status, &b.Category, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, &b)
	}
	return bills, rows.Err()
}
