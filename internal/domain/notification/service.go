package notification

import (
	"context"
	"errors"
	"log"
)

// Service contains the business logic for notification operations
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a new notification service. The messenger may be nil,
// in which case notifications are stored but never pushed.
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice registers a device token for the authenticated user. A
// token previously registered by another user is taken over. First-time
// registration also seeds default preferences so later preference reads
// hit a row.
func (s *Service) RegisterDevice(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	token, err := s.repo.UpsertDeviceToken(ctx, params)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetPreferences(ctx, params.UserID); err != nil {
		if _, err := s.repo.UpsertPreferences(ctx, params.UserID, UpdatePreferenceParams{}); err != nil {
			log.Printf("Warning: failed to create default notification preferences for user %d: %v", params.UserID, err)
		}
	}

	return token, nil
}

// GetPreferences returns the notification preferences for a user, falling
// back to all-enabled defaults when none have been stored yet.
func (s *Service) GetPreferences(ctx context.Context, userID int64) (*NotificationPreference, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}

	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return &NotificationPreference{
			UserID:         userID,
			BillsEnabled:   true,
			BudgetsEnabled: true,
			GoalsEnabled:   true,
			GeneralEnabled: true,
		}, nil
	}
	return prefs, nil
}

// UpdatePreferences partially updates a user's preferences; nil fields keep
// their stored value.
func (s *Service) UpdatePreferences(ctx context.Context, userID int64, params UpdatePreferenceParams) (*NotificationPreference, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}
	return s.repo.UpsertPreferences(ctx, userID, params)
}

// ListNotifications returns one page of a user's notification history plus
// the total count.
func (s *Service) ListNotifications(ctx context.Context, userID int64, page, perPage int) ([]*Notification, int, error) {
	if userID <= 0 {
		return nil, 0, errors.New("valid user ID is required")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.ListByUserID(ctx, userID, page, perPage)
}

// MarkNotificationOpened records that the user opened a notification.
func (s *Service) MarkNotificationOpened(ctx context.Context, notificationID string, userID int64) error {
	if notificationID == "" {
		return errors.New("notification ID is required")
	}
	if userID <= 0 {
		return errors.New("valid user ID is required")
	}
	return s.repo.MarkOpened(ctx, notificationID, userID)
}

// SendToUser stores a notification for the user and pushes it to all of
// their active devices. The category gate is the user's preferences; a
// disabled category drops the notification silently. Push failures are
// logged but never fail the caller, the stored record is the source of
// truth.
func (s *Service) SendToUser(ctx context.Context, userID int64, title, body, category string, data map[string]string) error {
	if !IsValidCategory(category) {
		return ErrInvalidCategory
	}

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return err
	}
	if !prefs.IsCategoryEnabled(category) {
		log.Printf("Notification skipped for user %d: category %q disabled", userID, category)
		return nil
	}

	tokens, err := s.repo.GetActiveTokensByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		log.Printf("No active device tokens for user %d", userID)
		return nil
	}

	data = withRoute(data, category)

	if s.messenger != nil {
		targets := make([]string, len(tokens))
		for i, t := range tokens {
			targets[i] = t.Token
		}
		if err := s.messenger.SendMulticast(ctx, targets, title, body, data); err != nil {
			log.Printf("Error sending notification to user %d: %v", userID, err)
		}
	}

	if _, err := s.repo.CreateNotification(ctx, CreateNotificationParams{
		UserID:   userID,
		Title:    title,
		Message:  body,
		Category: category,
		Data:     data,
	}); err != nil {
		log.Printf("Error storing notification for user %d: %v", userID, err)
	}

	return nil
}

// withRoute makes sure the payload tells the client app which screen to
// open; the category doubles as the default route.
func withRoute(data map[string]string, category string) map[string]string {
	if data == nil {
		data = make(map[string]string)
	}
	if _, ok := data["route"]; !ok {
		data["route"] = category
	}
	return data
}
