package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"finsight/internal/domain/transaction"
	"finsight/internal/shared/middleware"
)

type TransactionHandler struct {
	transactions *transaction.Service
}

func NewTransactionHandler(transactions *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type CreateTransactionRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Method      string  `json:"method"`
	Date        string  `json:"date"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// HandleTransactions handles GET (list) and POST (create) /api/transactions
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
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

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	filter := transaction.ListFilter{
		Category: r.URL.Query().Get("category"),
		Type:     r.URL.Query().Get("type"),
		Method:   r.URL.Query().Get("method"),
	}

	if v := r.URL.Query().Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid startDate format")
			return
		}
		filter.StartDate = &t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid endDate format")
			return
		}
		filter.EndDate = &t
	}

	txns, err := h.transactions.List(r.Context(), userID, filter)
	if err != nil {
		if err == transaction.ErrInvalidType {
			respondError(w, http.StatusBadRequest, "type must be 'deposit' or 'withdrawal'")
			return
		}
		log.Printf("Error listing transactions for user %d: %v", userID, err)
		respondInternal(w, "Failed to list transactions", err)
		return
	}
	if txns == nil {
		txns = []*transaction.Transaction{}
	}

	respondData(w, http.StatusOK, txns)
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := transaction.CreateParams{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Method:      req.Method,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date format")
			return
		}
		params.Date = date
	}

	txn, err := h.transactions.Create(r.Context(), params)
	if err != nil {
		if err == transaction.ErrInvalidAmount {
			respondError(w, http.StatusBadRequest, "Amount must be non-zero")
			return
		}
		log.Printf("Error creating transaction for user %d: %v", userID, err)
		respondInternal(w, "Failed to create transaction", err)
		return
	}

	respondData(w, http.StatusCreated, txn)
}

// HandleBalance handles GET /api/balance
func (h *TransactionHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	balance, err := h.transactions.Balance(r.Context(), userID)
	if err != nil {
		log.Printf("Error computing balance for user %d: %v", userID, err)
		respondInternal(w, "Failed to compute balance", err)
		return
	}

	respondData(w, http.StatusOK, BalanceResponse{Balance: balance})
}

// parseDate accepts date-only and RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
