package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"finsight/internal/domain/notification"
)

type NotificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// UpsertDeviceToken registers or updates a device token for a user.
// If the token exists for a different user, it is reassigned.
func (r *NotificationRepository) UpsertDeviceToken(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE fcm_device_tokens SET user_id = $1, is_active = true, last_used = NOW() WHERE token = $2 AND user_id != $1`,
		params.UserID, params.Token,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reassign device token: %w", err)
	}

	query := `
		INSERT INTO fcm_device_tokens (user_id, token, device_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE
			SET user_id = EXCLUDED.user_id,
			    device_type = EXCLUDED.device_type,
			    is_active = true,
			    last_used = NOW()
		RETURNING id, user_id, token, device_type, is_active, created_at, last_used
	`

	var dt notification.DeviceToken
	err = r.db.QueryRowContext(ctx, query, params.UserID, params.Token, params.DeviceType).Scan(
		&dt.ID, &dt.UserID, &dt.Token, &dt.DeviceType, &dt.IsActive, &dt.CreatedAt, &dt.LastUsed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert device token: %w", err)
	}

	return &dt, nil
}

func (r *NotificationRepository) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	query := `
		SELECT id, user_id, token, device_type, is_active, created_at, last_used
		FROM fcm_device_tokens
		WHERE user_id = $1 AND is_active = true
		ORDER BY last_used DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get device tokens: %w", err)
	}
	defer rows.Close()

	return scanDeviceTokens(rows)
}

func scanDeviceTokens(rows *sql.Rows) ([]*notification.DeviceToken, error) {
	var tokens []*notification.DeviceToken
	for rows.Next() {
		var dt notification.DeviceToken
		if err := rows.Scan(&dt.ID, &dt.UserID, &dt.Token, &dt.DeviceType, &dt.IsActive, &dt.CreatedAt, &dt.LastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, &dt)
	}
	return tokens, rows.Err()
}

func (r *NotificationRepository) DeactivateToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE fcm_device_tokens SET is_active = false WHERE token = $1`,
		token,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate token: %w", err)
	}
	return nil
}

// GetPreferences returns notification preferences for a user.
// Returns notification.ErrPreferencesNotFound if none exist yet.
func (r *NotificationRepository) GetPreferences(ctx context.Context, userID int64) (*notification.NotificationPreference, error) {
	query := `
		SELECT id, user_id, bills_enabled, budgets_enabled, goals_enabled, general_enabled, updated_at
		FROM notification_preferences
		WHERE user_id = $1
	`

	var p notification.NotificationPreference
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.BillsEnabled, &p.BudgetsEnabled, &p.GoalsEnabled, &p.GeneralEnabled, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, notification.ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}

	return &p, nil
}

// UpsertPreferences creates or partially updates preferences. Nil fields
// keep their stored (or default true) value.
func (r *NotificationRepository) UpsertPreferences(ctx context.Context, userID int64, params notification.UpdatePreferenceParams) (*notification.NotificationPreference, error) {
	query := `
		INSERT INTO notification_preferences (user_id, bills_enabled, budgets_enabled, goals_enabled, general_enabled)
		VALUES ($1, COALESCE($2, true), COALESCE($3, true), COALESCE($4, true), COALESCE($5, true))
		ON CONFLICT (user_id) DO UPDATE SET
			bills_enabled   = COALESCE($2, notification_preferences.bills_enabled),
			budgets_enabled = COALESCE($3, notification_preferences.budgets_enabled),
			goals_enabled   = COALESCE($4, notification_preferences.goals_enabled),
			general_enabled = COALESCE($5, notification_preferences.general_enabled),
			updated_at      = NOW()
		RETURNING id, user_id, bills_enabled, budgets_enabled, goals_enabled, general_enabled, updated_at
	`

	var p notification.NotificationPreference
	err := r.db.QueryRowContext(ctx, query, userID,
		params.BillsEnabled, params.BudgetsEnabled, params.GoalsEnabled, params.GeneralEnabled,
	).Scan(
		&p.ID, &p.UserID, &p.BillsEnabled, &p.BudgetsEnabled, &p.GoalsEnabled, &p.GeneralEnabled, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert notification preferences: %w", err)
	}

	return &p, nil
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, params notification.CreateNotificationParams) (*notification.Notification, error) {
	dataJSON, err := json.Marshal(params.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (user_id, title, message, category, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, message, category, data, opened_at, created_at
	`

	var n notification.Notification
	var returnedData []byte
	var openedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, params.UserID, params.Title, params.Message, params.Category, dataJSON).Scan(
		&n.ID, &n.UserID, &n.Title, &n.Message, &n.Category, &returnedData, &openedAt, &n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if len(returnedData) > 0 {
		if err := json.Unmarshal(returnedData, &n.Data); err != nil {
			return nil, fmt.Errorf("failed to decode notification data: %w", err)
		}
	}
	if openedAt.Valid {
		n.OpenedAt = &openedAt.Time
	}

	return &n, nil
}

func (r *NotificationRepository) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, user_id, title, message, category, data, opened_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		var data []byte
		var openedAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Category, &data, &openedAt, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, 0, fmt.Errorf("failed to decode notification data: %w", err)
			}
		}
		if openedAt.Valid {
			n.OpenedAt = &openedAt.Time
		}
		notifications = append(notifications, &n)
	}

	return notifications, total, rows.Err()
}

func (r *NotificationRepository) MarkOpened(ctx context.Context, notificationID string, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET opened_at = NOW() WHERE id = $1 AND user_id = $2 AND opened_at IS NULL`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification opened: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}
