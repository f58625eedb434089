package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"finsight/internal/domain/notification"
	"finsight/internal/shared/middleware"
)

type NotificationHandler struct {
	notifications *notification.Service
}

func NewNotificationHandler(notifications *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type RegisterDeviceRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}

type UpdatePreferencesRequest struct {
	BillsEnabled   *bool `json:"bills_enabled"`
	BudgetsEnabled *bool `json:"budgets_enabled"`
	GoalsEnabled   *bool `json:"goals_enabled"`
	GeneralEnabled *bool `json:"general_enabled"`
}

type NotificationListResponse struct {
	Notifications []*notification.Notification `json:"notifications"`
	Pagination    PaginationResponse           `json:"pagination"`
}

type PaginationResponse struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// HandleRegisterDevice handles POST /api/notifications/register-device
func (h *NotificationHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := notification.CreateDeviceTokenParams{
		UserID:     userID,
		Token:      req.Token,
		DeviceType: req.DeviceType,
	}
	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dt, err := h.notifications.RegisterDevice(r.Context(), params)
	if err != nil {
		log.Printf("Error registering device for user %d: %v", userID, err)
		respondInternal(w, "Failed to register device", err)
		return
	}

	respondData(w, http.StatusCreated, dt)
}

// HandleNotifications handles GET /api/notifications (?page&per_page)
func (h *NotificationHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = 20
	}

	notifications, total, err := h.notifications.ListNotifications(r.Context(), userID, page, perPage)
	if err != nil {
		log.Printf("Error listing notifications for user %d: %v", userID, err)
		respondInternal(w, "Failed to list notifications", err)
		return
	}
	if notifications == nil {
		notifications = []*notification.Notification{}
	}

	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}

	respondData(w, http.StatusOK, NotificationListResponse{
		Notifications: notifications,
		Pagination: PaginationResponse{
			Page:    page,
			PerPage: perPage,
			Total:   total,
			Pages:   pages,
		},
	})
}

// HandleNotificationOpened handles POST /api/notifications/{id}/opened
func (h *NotificationHandler) HandleNotificationOpened(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notificationID := r.PathValue("id")
	if notificationID == "" {
		respondError(w, http.StatusBadRequest, "Notification ID is required")
		return
	}

	if err := h.notifications.MarkNotificationOpened(r.Context(), notificationID, userID); err != nil {
		if err == notification.ErrNotificationNotFound {
			respondError(w, http.StatusNotFound, "Notification not found")
			return
		}
		log.Printf("Error marking notification %s as opened: %v", notificationID, err)
		respondInternal(w, "Failed to update notification", err)
		return
	}

	respondMessage(w, http.StatusOK, "Notification marked as opened")
}

// HandlePreferences handles GET and POST /api/notifications/preferences
func (h *NotificationHandler) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		prefs, err := h.notifications.GetPreferences(r.Context(), userID)
		if err != nil {
			log.Printf("Error getting preferences for user %d: %v", userID, err)
			respondInternal(w, "Failed to get preferences", err)
			return
		}
		respondData(w, http.StatusOK, prefs)
	case http.MethodPost:
		var req UpdatePreferencesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		prefs, err := h.notifications.UpdatePreferences(r.Context(), userID, notification.UpdatePreferenceParams{
			BillsEnabled:   req.BillsEnabled,
			BudgetsEnabled: req.BudgetsEnabled,
			GoalsEnabled:   req.GoalsEnabled,
			GeneralEnabled: req.GeneralEnabled,
		})
		if err != nil {
			log.Printf("Error updating preferences for user %d: %v", userID, err)
			respondInternal(w, "Failed to update preferences", err)
			return
		}
		respondData(w, http.StatusOK, prefs)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
