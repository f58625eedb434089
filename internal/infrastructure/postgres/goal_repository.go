package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finsight/internal/domain/goal"
)

type GoalRepository struct {
	db *DB
}

func NewGoalRepository(db *DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) (*goal.Goal, error) {
	query := `
		INSERT INTO goals (id, user_id, name, target_amount, current_amount, target_date, category, progress, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, name, target_amount, current_amount, target_date, category, progress, status, created_at, updated_at
	`

	var out goal.Goal
	err := r.db.QueryRowContext(
		ctx, query,
		g.ID, g.UserID, g.Name, g.TargetAmount, g.CurrentAmount, g.TargetDate, g.Category, g.Progress, g.Status,
	).Scan(
		&out.ID, &out.UserID, &out.Name, &out.TargetAmount, &out.CurrentAmount,
		&out.TargetDate, &out.Category, &out.Progress, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &out, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id string) (*goal.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, target_date, category, progress, status, created_at, updated_at
		FROM goals
		WHERE id = $1
	`

	var g goal.Goal
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
		&g.TargetDate, &g.Category, &g.Progress, &g.Status, &g.CreatedAt, &g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, goal.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return &g, nil
}

func (r *GoalRepository) ListByUserID(ctx context.Context, userID int64) ([]*goal.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, target_date, category, progress, status, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY target_date ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		var g goal.Goal
		err := rows.Scan(
			&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.TargetDate, &g.Category, &g.Progress, &g.Status, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, &g)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) UpdateProgress(ctx context.Context, id string, currentAmount, progress float64, status string) (*goal.Goal, error) {
	query := `
		UPDATE goals
		SET current_amount = $2, progress = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, name, target_amount, current_amount, target_date, category, progress, status, created_at, updated_at
	`

	var g goal.Goal
	err := r.db.QueryRowContext(ctx, query, id, currentAmount, progress, status).Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
		&g.TargetDate, &g.Category, &g.Progress, &g.Status, &g.CreatedAt, &g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, goal.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}

	return &g, nil
}
