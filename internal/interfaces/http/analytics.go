package http

import (
	"log"
	"net/http"
	"strconv"

	"finsight/internal/domain/advisor"
	"finsight/internal/domain/analytics"
	"finsight/internal/shared/middleware"
)

type AnalyticsHandler struct {
	analytics *analytics.Service
	advisor   *advisor.Service
}

func NewAnalyticsHandler(analyticsService *analytics.Service, advisorService *advisor.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analyticsService, advisor: advisorService}
}

type SpendingResponse struct {
	Analysis    *analytics.SpendingAnalysis `json:"analysis"`
	Suggestions *advisor.OptimizationAdvice `json:"suggestions,omitempty"`
}

type HabitsResponse struct {
	Patterns []analytics.RecurringPattern `json:"patterns"`
	Analysis *advisor.HabitAnalysis       `json:"analysis,omitempty"`
}

type HealthScoreResponse struct {
	Metrics *analytics.HealthMetrics `json:"metrics"`
	Score   *advisor.HealthScore     `json:"score,omitempty"`
}

func windowMonths(r *http.Request) int {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))
	return analytics.ClampWindow(months)
}

// HandleSpending handles GET /api/analytics/spending.
// The per-category breakdown is always returned; advisor suggestions are
// attached when the generator is reachable.
func (h *AnalyticsHandler) HandleSpending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	analysis, err := h.analytics.Spending(r.Context(), userID, windowMonths(r))
	if err != nil {
		log.Printf("Error analyzing spending for user %d: %v", userID, err)
		respondInternal(w, "Failed to analyze spending", err)
		return
	}

	resp := SpendingResponse{Analysis: analysis}
	if suggestions, err := h.advisor.OptimizeSpending(r.Context(), analysis); err != nil {
		log.Printf("Error generating spending suggestions for user %d: %v", userID, err)
	} else {
		resp.Suggestions = suggestions
	}

	respondData(w, http.StatusOK, resp)
}

// HandleHabits handles GET /api/analytics/habits
func (h *AnalyticsHandler) HandleHabits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	patterns, err := h.analytics.Recurring(r.Context(), userID, windowMonths(r))
	if err != nil {
		log.Printf("Error detecting recurring patterns for user %d: %v", userID, err)
		respondInternal(w, "Failed to detect spending habits", err)
		return
	}
	if patterns == nil {
		patterns = []analytics.RecurringPattern{}
	}

	resp := HabitsResponse{Patterns: patterns}
	if analysis, err := h.advisor.ClassifyHabits(r.Context(), patterns); err != nil {
		log.Printf("Error classifying habits for user %d: %v", userID, err)
	} else {
		resp.Analysis = analysis
	}

	respondData(w, http.StatusOK, resp)
}

// HandleForecast handles GET /api/analytics/forecast
func (h *AnalyticsHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	forecast, err := h.analytics.Forecast(r.Context(), userID, windowMonths(r))
	if err != nil {
		log.Printf("Error forecasting expenses for user %d: %v", userID, err)
		respondInternal(w, "Failed to forecast expenses", err)
		return
	}

	respondData(w, http.StatusOK, forecast)
}

// HandleHealthScore handles GET /api/analytics/health-score
func (h *AnalyticsHandler) HandleHealthScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	metrics, err := h.analytics.HealthMetrics(r.Context(), userID)
	if err != nil {
		log.Printf("Error computing health metrics for user %d: %v", userID, err)
		respondInternal(w, "Failed to compute health metrics", err)
		return
	}

	resp := HealthScoreResponse{Metrics: metrics}
	if score, err := h.advisor.ScoreHealth(r.Context(), metrics); err != nil {
		log.Printf("Error scoring financial health for user %d: %v", userID, err)
	} else {
		resp.Score = score
	}

	respondData(w, http.StatusOK, resp)
}
