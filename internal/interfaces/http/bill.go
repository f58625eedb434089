package http

import (
	"encoding/json"
	"log"
	"net/http"

	"finsight/internal/domain/bill"
	"finsight/internal/shared/middleware"
)

type BillHandler struct {
	bills *bill.Service
}

func NewBillHandler(bills *bill.Service) *BillHandler {
	return &BillHandler{bills: bills}
}

type CreateBillRequest struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	DueDate  string  `json:"dueDate"`
	Category string  `json:"category"`
}

type UpdateBillStatusRequest struct {
	Status string `json:"status"`
}

// HandleBills handles GET (list) and POST (create) /api/bills
func (h *BillHandler) HandleBills(w http.ResponseWriter, r *http.Request) {
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

func (h *BillHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	bills, err := h.bills.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing bills for user %d: %v", userID, err)
		respondInternal(w, "Failed to list bills", err)
		return
	}
	if bills == nil {
		bills = []*bill.Bill{}
	}

	respondData(w, http.StatusOK, bills)
}

func (h *BillHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid dueDate format")
		return
	}

	params := bill.CreateParams{
		UserID:   userID,
		Name:     req.Name,
		Amount:   req.Amount,
		DueDate:  dueDate,
		Category: req.Category,
	}
	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.bills.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating bill for user %d: %v", userID, err)
		respondInternal(w, "Failed to create bill", err)
		return
	}

	respondData(w, http.StatusCreated, b)
}

// HandleBillStatus handles POST /api/bills/{id}/status
func (h *BillHandler) HandleBillStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	billID := r.PathValue("id")
	if billID == "" {
		respondError(w, http.StatusBadRequest, "Bill ID is required")
		return
	}

	var req UpdateBillStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.bills.UpdateStatus(r.Context(), userID, billID, req.Status)
	if err != nil {
		switch err {
		case bill.ErrInvalidStatus:
			respondError(w, http.StatusBadRequest, "Status must be upcoming, paid or overdue")
		case bill.ErrBillNotFound:
			respondError(w, http.StatusNotFound, "Bill not found")
		case bill.ErrForbidden:
			respondError(w, http.StatusForbidden, "Access forbidden")
		default:
			log.Printf("Error updating status for bill %s: %v", billID, err)
			respondInternal(w, "Failed to update bill status", err)
		}
		return
	}

	respondData(w, http.StatusOK, b)
}
