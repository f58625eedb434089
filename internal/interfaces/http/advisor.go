package http

import (
	"encoding/json"
	"log"
	"net/http"

	"finsight/internal/domain/advisor"
	"finsight/internal/domain/analytics"
	"finsight/internal/shared/middleware"
)

type AdvisorHandler struct {
	advisor   *advisor.Service
	analytics *analytics.Service
}

func NewAdvisorHandler(advisorService *advisor.Service, analyticsService *analytics.Service) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisorService, analytics: analyticsService}
}

type ChatRequest struct {
	Question string `json:"question"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type ShortfallResponse struct {
	Prediction *analytics.ShortfallPrediction `json:"prediction"`
	Risk       *advisor.BillRiskAnalysis      `json:"risk,omitempty"`
}

type SentimentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// HandlePurchase handles POST /api/advice/purchase
func (h *AdvisorHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req advisor.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics, err := h.analytics.HealthMetrics(r.Context(), userID)
	if err != nil {
		log.Printf("Error computing health metrics for user %d: %v", userID, err)
		respondInternal(w, "Failed to compute health metrics", err)
		return
	}

	evaluation, err := h.advisor.EvaluatePurchase(r.Context(), req, metrics)
	if err != nil {
		log.Printf("Error evaluating purchase for user %d: %v", userID, err)
		respondInternal(w, "Failed to evaluate purchase", err)
		return
	}

	respondData(w, http.StatusOK, evaluation)
}

// HandleChat handles POST /api/advice/chat
func (h *AdvisorHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "Question is required")
		return
	}

	metrics, err := h.analytics.HealthMetrics(r.Context(), userID)
	if err != nil {
		log.Printf("Error computing health metrics for user %d: %v", userID, err)
		respondInternal(w, "Failed to compute health metrics", err)
		return
	}

	answer, err := h.advisor.Chat(r.Context(), req.Question, metrics)
	if err != nil {
		log.Printf("Error answering chat for user %d: %v", userID, err)
		respondInternal(w, "Failed to answer question", err)
		return
	}

	respondData(w, http.StatusOK, ChatResponse{Answer: answer})
}

// HandleShortfall handles GET /api/advice/shortfall.
// The arithmetic prediction is always returned; the LLM risk annotation
// is attached when available.
func (h *AdvisorHandler) HandleShortfall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	prediction, err := h.analytics.Shortfall(r.Context(), userID)
	if err != nil {
		log.Printf("Error predicting shortfall for user %d: %v", userID, err)
		respondInternal(w, "Failed to predict shortfall", err)
		return
	}

	resp := ShortfallResponse{Prediction: prediction}
	if risk, err := h.advisor.AssessBillRisk(r.Context(), prediction); err != nil {
		log.Printf("Error assessing bill risk for user %d: %v", userID, err)
	} else {
		resp.Risk = risk
	}

	respondData(w, http.StatusOK, resp)
}

// HandlePredict handles POST /api/predict
func (h *AdvisorHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if _, ok := r.Context().Value(middleware.UserIDKey).(int64); !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req advisor.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	prediction, err := h.advisor.PredictStock(r.Context(), req)
	if err != nil {
		log.Printf("Error predicting stock %s: %v", req.Symbol, err)
		respondInternal(w, "Failed to generate prediction", err)
		return
	}

	respondData(w, http.StatusOK, prediction)
}

// HandleSentiment handles POST /api/sentiment
func (h *AdvisorHandler) HandleSentiment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if _, ok := r.Context().Value(middleware.UserIDKey).(int64); !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "Content is required")
		return
	}

	result, err := h.advisor.AnalyzeSentiment(r.Context(), req.Title, req.Content, req.Source)
	if err != nil {
		log.Printf("Error analyzing sentiment: %v", err)
		respondInternal(w, "Failed to analyze sentiment", err)
		return
	}

	respondData(w, http.StatusOK, result)
}
