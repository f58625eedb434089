package http

import (
	"encoding/json"
	"log"
	"net/http"

	"finsight/internal/domain/advisor"
	"finsight/internal/domain/analytics"
	"finsight/internal/domain/goal"
	"finsight/internal/shared/middleware"
)

type GoalHandler struct {
	goals     *goal.Service
	analytics *analytics.Service
	advisor   *advisor.Service
}

func NewGoalHandler(goals *goal.Service, analyticsService *analytics.Service, advisorService *advisor.Service) *GoalHandler {
	return &GoalHandler{goals: goals, analytics: analyticsService, advisor: advisorService}
}

type CreateGoalRequest struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetDate    string  `json:"targetDate"`
	Category      string  `json:"category"`
}

type UpdateGoalProgressRequest struct {
	GoalID        string  `json:"goalId"`
	CurrentAmount float64 `json:"currentAmount"`
}

type GoalSuggestionsResponse struct {
	Goal   *goal.Goal          `json:"goal"`
	Advice *advisor.GoalAdvice `json:"advice"`
}

// HandleGoals handles GET (list) and POST (create) /api/goals
func (h *GoalHandler) HandleGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r, userID)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *GoalHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	goals, err := h.goals.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing goals for user %d: %v", userID, err)
		respondInternal(w, "Failed to list goals", err)
		return
	}
	if goals == nil {
		goals = []*goal.Goal{}
	}

	respondData(w, http.StatusOK, goals)
}

func (h *GoalHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := goal.CreateParams{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Category:      req.Category,
	}
	if req.TargetDate != "" {
		targetDate, err := parseDate(req.TargetDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid targetDate format")
			return
		}
		params.TargetDate = targetDate
	}
	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.goals.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating goal for user %d: %v", userID, err)
		respondInternal(w, "Failed to create goal", err)
		return
	}

	respondData(w, http.StatusCreated, g)
}

// HandleGoalProgress handles POST /api/goals/progress
func (h *GoalHandler) HandleGoalProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateGoalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GoalID == "" {
		respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}
	if req.CurrentAmount < 0 {
		respondError(w, http.StatusBadRequest, "Current amount must not be negative")
		return
	}

	g, err := h.goals.UpdateProgress(r.Context(), userID, req.GoalID, req.CurrentAmount)
	if err != nil {
		switch err {
		case goal.ErrGoalNotFound:
			respondError(w, http.StatusNotFound, "Goal not found")
		case goal.ErrForbidden:
			respondError(w, http.StatusForbidden, "Access forbidden")
		default:
			log.Printf("Error updating progress for goal %s: %v", req.GoalID, err)
			respondInternal(w, "Failed to update goal progress", err)
		}
		return
	}

	respondData(w, http.StatusOK, g)
}

// HandleGoalSuggestions handles GET /api/goals/{id}/suggestions
func (h *GoalHandler) HandleGoalSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goalID := r.PathValue("id")
	if goalID == "" {
		respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}

	g, err := h.goals.Get(r.Context(), userID, goalID)
	if err != nil {
		switch err {
		case goal.ErrGoalNotFound:
			respondError(w, http.StatusNotFound, "Goal not found")
		case goal.ErrForbidden:
			respondError(w, http.StatusForbidden, "Access forbidden")
		default:
			log.Printf("Error getting goal %s: %v", goalID, err)
			respondInternal(w, "Failed to get goal", err)
		}
		return
	}

	metrics, err := h.analytics.HealthMetrics(r.Context(), userID)
	if err != nil {
		log.Printf("Error computing health metrics for user %d: %v", userID, err)
		respondInternal(w, "Failed to compute health metrics", err)
		return
	}

	advice, err := h.advisor.SuggestForGoal(r.Context(), g, metrics)
	if err != nil {
		log.Printf("Error generating suggestions for goal %s: %v", goalID, err)
		respondInternal(w, "Failed to generate goal suggestions", err)
		return
	}

	respondData(w, http.StatusOK, GoalSuggestionsResponse{Goal: g, Advice: advice})
}
