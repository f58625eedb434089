package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"finsight/internal/domain/transaction"
)

func TestHandleTransactionsList(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		userID         int64
		mockRepo       func() *MockTransactionRepo
		expectedStatus int
	}{
		{
			name:   "Success",
			target: "/api/transactions",
			userID: 1,
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					ListByUserIDFunc: func(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
						return []*transaction.Transaction{{ID: "tx-1", Amount: -50}}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "FiltersForwarded",
			target: "/api/transactions?startDate=2026-01-01&endDate=2026-02-01&category=Food&type=withdrawal",
			userID: 1,
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					ListByUserIDFunc: func(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
						if filter.StartDate == nil || filter.EndDate == nil {
							return nil, errors.New("expected date bounds")
						}
						if filter.Category != "Food" || filter.Type != "withdrawal" {
							return nil, errors.New("expected category and type filters")
						}
						return nil, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "InvalidType",
			target:         "/api/transactions?type=transfer",
			userID:         1,
			mockRepo:       func() *MockTransactionRepo { return &MockTransactionRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "InvalidStartDate",
			target:         "/api/transactions?startDate=not-a-date",
			userID:         1,
			mockRepo:       func() *MockTransactionRepo { return &MockTransactionRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unauthorized",
			target:         "/api/transactions",
			userID:         0,
			mockRepo:       func() *MockTransactionRepo { return &MockTransactionRepo{} },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "RepoError",
			target: "/api/transactions",
			userID: 1,
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					ListByUserIDFunc: func(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
						return nil, errors.New("db down")
					},
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(transaction.NewService(tt.mockRepo()))

			req := authedRequest(http.MethodGet, tt.target, nil, tt.userID)
			rec := httptest.NewRecorder()
			handler.HandleTransactions(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandleTransactionsCreate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		userID         int64
		mockRepo       func() *MockTransactionRepo
		expectedStatus int
	}{
		{
			name:   "Success",
			body:   `{"amount": -42.50, "category": "Food", "date": "2026-08-01"}`,
			userID: 1,
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					CreateFunc: func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
						return &transaction.Transaction{ID: "tx-1", Amount: params.Amount, Category: params.Category}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "ZeroAmount",
			body:           `{"amount": 0}`,
			userID:         1,
			mockRepo:       func() *MockTransactionRepo { return &MockTransactionRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "InvalidBody",
			body:           `{not json`,
			userID:         1,
			mockRepo:       func() *MockTransactionRepo { return &MockTransactionRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "InvalidDate",
			body:           `{"amount": -10, "date": "yesterday"}`,
			userID:         1,
			mockRepo:       func() *MockTransactionRepo { return &MockTransactionRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(transaction.NewService(tt.mockRepo()))

			req := authedRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString(tt.body), tt.userID)
			rec := httptest.NewRecorder()
			handler.HandleTransactions(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandleBalance(t *testing.T) {
	repo := &MockTransactionRepo{
		SumByUserIDFunc: func(ctx context.Context, userID int64) (float64, error) {
			return 1234.56, nil
		},
	}
	handler := NewTransactionHandler(transaction.NewService(repo))

	req := authedRequest(http.MethodGet, "/api/balance", nil, 1)
	rec := httptest.NewRecorder()
	handler.HandleBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["success"] != true {
		t.Error("expected success=true")
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data object")
	}
	if data["balance"] != 1234.56 {
		t.Errorf("expected balance 1234.56, got %v", data["balance"])
	}
}

func TestHandleTransactionsMethodNotAllowed(t *testing.T) {
	handler := NewTransactionHandler(transaction.NewService(&MockTransactionRepo{}))

	req := authedRequest(http.MethodDelete, "/api/transactions", nil, 1)
	rec := httptest.NewRecorder()
	handler.HandleTransactions(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}
