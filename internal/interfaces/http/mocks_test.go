package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finsight/internal/domain/bill"
	"finsight/internal/domain/budget"
	"finsight/internal/domain/goal"
	"finsight/internal/domain/news"
	"finsight/internal/domain/transaction"
	"finsight/internal/shared/middleware"
)

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc       func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
	ListByUserIDFunc func(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	ListSinceFunc    func(ctx context.Context, userID int64, since time.Time) ([]*transaction.Transaction, error)
	SumByUserIDFunc  func(ctx context.Context, userID int64) (float64, error)
}

func (m *MockTransactionRepo) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ListByUserID(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ListSince(ctx context.Context, userID int64, since time.Time) ([]*transaction.Transaction, error) {
	if m.ListSinceFunc != nil {
		return m.ListSinceFunc(ctx, userID, since)
	}
	return nil, nil
}

func (m *MockTransactionRepo) SumByUserID(ctx context.Context, userID int64) (float64, error) {
	if m.SumByUserIDFunc != nil {
		return m.SumByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

// MockBillRepo implements bill.Repository for testing
type MockBillRepo struct {
	CreateFunc         func(ctx context.Context, params bill.CreateParams) (*bill.Bill, error)
	GetByIDFunc        func(ctx context.Context, id string) (*bill.Bill, error)
	ListByUserIDFunc   func(ctx context.Context, userID int64) ([]*bill.Bill, error)
	ListByStatusFunc   func(ctx context.Context, userID int64, status string) ([]*bill.Bill, error)
	UpdateStatusFunc   func(ctx context.Context, id, status string) (*bill.Bill, error)
	MarkOverdueFunc    func(ctx context.Context, asOf time.Time) ([]*bill.Bill, error)
	ListDueBetweenFunc func(ctx context.Context, from, to time.Time) ([]*bill.Bill, error)
}

func (m *MockBillRepo) Create(ctx context.Context, params bill.CreateParams) (*bill.Bill, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockBillRepo) GetByID(ctx context.Context, id string) (*bill.Bill, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, bill.ErrBillNotFound
}

func (m *MockBillRepo) ListByUserID(ctx context.Context, userID int64) ([]*bill.Bill, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBillRepo) ListByStatus(ctx context.Context, userID int64, status string) ([]*bill.Bill, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, userID, status)
	}
	return nil, nil
}

func (m *MockBillRepo) UpdateStatus(ctx context.Context, id, status string) (*bill.Bill, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil, nil
}

func (m *MockBillRepo) MarkOverdue(ctx context.Context, asOf time.Time) ([]*bill.Bill, error) {
	if m.MarkOverdueFunc != nil {
		return m.MarkOverdueFunc(ctx, asOf)
	}
	return nil, nil
}

func (m *MockBillRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]*bill.Bill, error) {
	if m.ListDueBetweenFunc != nil {
		return m.ListDueBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

// MockBudgetRepo implements budget.Repository for testing
type MockBudgetRepo struct {
	GetByUserIDFunc func(ctx context.Context, userID int64) (*budget.Budget, error)
	UpsertFunc      func(ctx context.Context, params budget.UpsertParams) (*budget.Budget, error)
}

func (m *MockBudgetRepo) GetByUserID(ctx context.Context, userID int64) (*budget.Budget, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, budget.ErrBudgetNotFound
}

func (m *MockBudgetRepo) Upsert(ctx context.Context, params budget.UpsertParams) (*budget.Budget, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return nil, nil
}

// MockGoalRepo implements goal.Repository for testing
type MockGoalRepo struct {
	CreateFunc         func(ctx context.Context, g *goal.Goal) (*goal.Goal, error)
	GetByIDFunc        func(ctx context.Context, id string) (*goal.Goal, error)
	ListByUserIDFunc   func(ctx context.Context, userID int64) ([]*goal.Goal, error)
	UpdateProgressFunc func(ctx context.Context, id string, currentAmount, progress float64, status string) (*goal.Goal, error)
}

func (m *MockGoalRepo) Create(ctx context.Context, g *goal.Goal) (*goal.Goal, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, g)
	}
	return g, nil
}

func (m *MockGoalRepo) GetByID(ctx context.Context, id string) (*goal.Goal, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, goal.ErrGoalNotFound
}

func (m *MockGoalRepo) ListByUserID(ctx context.Context, userID int64) ([]*goal.Goal, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockGoalRepo) UpdateProgress(ctx context.Context, id string, currentAmount, progress float64, status string) (*goal.Goal, error) {
	if m.UpdateProgressFunc != nil {
		return m.UpdateProgressFunc(ctx, id, currentAmount, progress, status)
	}
	return nil, nil
}

// MockNewsRepo implements news.Repository for testing
type MockNewsRepo struct {
	CreateFunc     func(ctx context.Context, params news.CreateParams) (*news.Item, error)
	ListRecentFunc func(ctx context.Context, limit int) ([]*news.Item, error)
}

func (m *MockNewsRepo) Create(ctx context.Context, params news.CreateParams) (*news.Item, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockNewsRepo) ListRecent(ctx context.Context, limit int) ([]*news.Item, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

// stubGenerator implements advisor.TextGenerator for testing
type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// authedRequest builds a request carrying the given user ID in context.
// Pass userID 0 to simulate a request without auth.
func authedRequest(method, target string, body io.Reader, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if userID > 0 {
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
		req = req.WithContext(ctx)
	}
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}
