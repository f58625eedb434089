package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"finsight/internal/domain/notification"
)

// MockNotificationRepo implements notification.Repository for testing
type MockNotificationRepo struct {
	UpsertDeviceTokenFunc       func(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error)
	GetActiveTokensByUserIDFunc func(ctx context.Context, userID int64) ([]*notification.DeviceToken, error)
	DeactivateTokenFunc         func(ctx context.Context, token string) error
	GetPreferencesFunc          func(ctx context.Context, userID int64) (*notification.NotificationPreference, error)
	UpsertPreferencesFunc       func(ctx context.Context, userID int64, params notification.UpdatePreferenceParams) (*notification.NotificationPreference, error)
	CreateNotificationFunc      func(ctx context.Context, params notification.CreateNotificationParams) (*notification.Notification, error)
	ListByUserIDFunc            func(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error)
	MarkOpenedFunc              func(ctx context.Context, notificationID string, userID int64) error
}

func (m *MockNotificationRepo) UpsertDeviceToken(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error) {
	if m.UpsertDeviceTokenFunc != nil {
		return m.UpsertDeviceTokenFunc(ctx, params)
	}
	return &notification.DeviceToken{ID: "dt-1", UserID: params.UserID, Token: params.Token, IsActive: true}, nil
}

func (m *MockNotificationRepo) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	if m.GetActiveTokensByUserIDFunc != nil {
		return m.GetActiveTokensByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockNotificationRepo) DeactivateToken(ctx context.Context, token string) error {
	if m.DeactivateTokenFunc != nil {
		return m.DeactivateTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockNotificationRepo) GetPreferences(ctx context.Context, userID int64) (*notification.NotificationPreference, error) {
	if m.GetPreferencesFunc != nil {
		return m.GetPreferencesFunc(ctx, userID)
	}
	return nil, notification.ErrPreferencesNotFound
}

func (m *MockNotificationRepo) UpsertPreferences(ctx context.Context, userID int64, params notification.UpdatePreferenceParams) (*notification.NotificationPreference, error) {
	if m.UpsertPreferencesFunc != nil {
		return m.UpsertPreferencesFunc(ctx, userID, params)
	}
	return &notification.NotificationPreference{ID: "pref-1", UserID: userID, BillsEnabled: true, BudgetsEnabled: true, GoalsEnabled: true, GeneralEnabled: true}, nil
}

func (m *MockNotificationRepo) CreateNotification(ctx context.Context, params notification.CreateNotificationParams) (*notification.Notification, error) {
	if m.CreateNotificationFunc != nil {
		return m.CreateNotificationFunc(ctx, params)
	}
	return &notification.Notification{ID: "n-1", UserID: params.UserID, Title: params.Title}, nil
}

func (m *MockNotificationRepo) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, page, perPage)
	}
	return nil, 0, nil
}

func (m *MockNotificationRepo) MarkOpened(ctx context.Context, notificationID string, userID int64) error {
	if m.MarkOpenedFunc != nil {
		return m.MarkOpenedFunc(ctx, notificationID, userID)
	}
	return notification.ErrNotificationNotFound
}

func TestHandleRegisterDevice(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		userID         int64
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"token": "fcm-token-1", "device_type": "android"}`,
			userID:         1,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "MissingToken",
			body:           `{"device_type": "android"}`,
			userID:         1,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unauthorized",
			body:           `{"token": "fcm-token-1"}`,
			userID:         0,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewNotificationHandler(notification.NewService(&MockNotificationRepo{}, nil))

			req := authedRequest(http.MethodPost, "/api/notifications/register-device", bytes.NewBufferString(tt.body), tt.userID)
			rec := httptest.NewRecorder()
			handler.HandleRegisterDevice(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandleNotificationsList(t *testing.T) {
	repo := &MockNotificationRepo{
		ListByUserIDFunc: func(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error) {
			return []*notification.Notification{
				{ID: "n-1", UserID: userID, Title: "Bill due soon", Category: notification.CategoryBills},
			}, 41, nil
		},
	}
	handler := NewNotificationHandler(notification.NewService(repo, nil))

	req := authedRequest(http.MethodGet, "/api/notifications?page=2&per_page=20", nil, 1)
	rec := httptest.NewRecorder()
	handler.HandleNotifications(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	pagination, ok := data["pagination"].(map[string]any)
	if !ok {
		t.Fatal("expected pagination object")
	}
	if pagination["pages"] != 3.0 {
		t.Errorf("expected 3 pages for 41 items at 20 per page, got %v", pagination["pages"])
	}
}

func TestHandleNotificationOpened(t *testing.T) {
	tests := []struct {
		name           string
		notificationID string
		mockRepo       func() *MockNotificationRepo
		expectedStatus int
	}{
		{
			name:           "Success",
			notificationID: "n-1",
			mockRepo: func() *MockNotificationRepo {
				return &MockNotificationRepo{
					MarkOpenedFunc: func(ctx context.Context, notificationID string, userID int64) error {
						return nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotFound",
			notificationID: "missing",
			mockRepo:       func() *MockNotificationRepo { return &MockNotificationRepo{} },
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewNotificationHandler(notification.NewService(tt.mockRepo(), nil))

			req := authedRequest(http.MethodPost, "/api/notifications/"+tt.notificationID+"/opened", nil, 1)
			req.SetPathValue("id", tt.notificationID)
			rec := httptest.NewRecorder()
			handler.HandleNotificationOpened(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandlePreferencesUpdate(t *testing.T) {
	var got notification.UpdatePreferenceParams
	repo := &MockNotificationRepo{
		UpsertPreferencesFunc: func(ctx context.Context, userID int64, params notification.UpdatePreferenceParams) (*notification.NotificationPreference, error) {
			got = params
			return &notification.NotificationPreference{ID: "pref-1", UserID: userID, BillsEnabled: false, BudgetsEnabled: true, GoalsEnabled: true, GeneralEnabled: true}, nil
		},
	}
	handler := NewNotificationHandler(notification.NewService(repo, nil))

	body := `{"bills_enabled": false}`
	req := authedRequest(http.MethodPost, "/api/notifications/preferences", bytes.NewBufferString(body), 1)
	rec := httptest.NewRecorder()
	handler.HandlePreferences(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got.BillsEnabled == nil || *got.BillsEnabled {
		t.Error("expected bills_enabled=false to be forwarded")
	}
	if got.BudgetsEnabled != nil {
		t.Error("expected omitted fields to stay nil")
	}
}
