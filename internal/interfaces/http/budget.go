package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"finsight/internal/domain/bill"
	"finsight/internal/domain/budget"
	"finsight/internal/shared/middleware"
)

type BudgetHandler struct {
	budgets *budget.Service
	bills   *bill.Service
}

func NewBudgetHandler(budgets *budget.Service, bills *bill.Service) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, bills: bills}
}

type UpdateBudgetRequest struct {
	Income   float64              `json:"income"`
	Expenses []budget.ExpenseItem `json:"expenses"`
}

// BudgetResponse is the stored budget enriched with the derived shortfall
// and the bills still awaiting payment.
type BudgetResponse struct {
	Income        float64              `json:"income"`
	Expenses      []budget.ExpenseItem `json:"expenses"`
	Shortfall     float64              `json:"shortfall"`
	UpcomingBills []*bill.Bill         `json:"upcomingBills"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func (h *BudgetHandler) budgetResponse(ctx context.Context, userID int64, b *budget.Budget) (*BudgetResponse, error) {
	upcoming, err := h.bills.Upcoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upcoming == nil {
		upcoming = []*bill.Bill{}
	}
	return &BudgetResponse{
		Income:        b.Income,
		Expenses:      b.Expenses,
		Shortfall:     b.Shortfall(),
		UpcomingBills: upcoming,
		UpdatedAt:     b.UpdatedAt,
	}, nil
}

// HandleGetBudget handles GET /api/budget
func (h *BudgetHandler) HandleGetBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	b, err := h.budgets.Get(r.Context(), userID)
	if err != nil {
		if err == budget.ErrBudgetNotFound {
			respondError(w, http.StatusNotFound, "Budget not found")
			return
		}
		log.Printf("Error getting budget for user %d: %v", userID, err)
		respondInternal(w, "Failed to get budget", err)
		return
	}

	resp, err := h.budgetResponse(r.Context(), userID, b)
	if err != nil {
		log.Printf("Error listing upcoming bills for user %d: %v", userID, err)
		respondInternal(w, "Failed to get budget", err)
		return
	}

	respondData(w, http.StatusOK, resp)
}

// HandleUpdateBudget handles POST /api/budget/update
func (h *BudgetHandler) HandleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := budget.UpsertParams{
		UserID:   userID,
		Income:   req.Income,
		Expenses: req.Expenses,
	}
	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.budgets.Update(r.Context(), params)
	if err != nil {
		log.Printf("Error updating budget for user %d: %v", userID, err)
		respondInternal(w, "Failed to update budget", err)
		return
	}

	resp, err := h.budgetResponse(r.Context(), userID, b)
	if err != nil {
		log.Printf("Error listing upcoming bills for user %d: %v", userID, err)
		respondInternal(w, "Failed to update budget", err)
		return
	}

	respondData(w, http.StatusOK, resp)
}
