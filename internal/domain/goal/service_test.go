package goal

import (
	"context"
	"errors"
	"math"
	"testing"
)

type mockRepo struct {
	CreateFunc         func(ctx context.Context, g *Goal) (*Goal, error)
	GetByIDFunc        func(ctx context.Context, id string) (*Goal, error)
	ListByUserIDFunc   func(ctx context.Context, userID int64) ([]*Goal, error)
	UpdateProgressFunc func(ctx context.Context, id string, currentAmount, progress float64, status string) (*Goal, error)
}

func (m *mockRepo) Create(ctx context.Context, g *Goal) (*Goal, error) {
	return m.CreateFunc(ctx, g)
}
func (m *mockRepo) GetByID(ctx context.Context, id string) (*Goal, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockRepo) ListByUserID(ctx context.Context, userID int64) ([]*Goal, error) {
	return m.ListByUserIDFunc(ctx, userID)
}
func (m *mockRepo) UpdateProgress(ctx context.Context, id string, currentAmount, progress float64, status string) (*Goal, error) {
	return m.UpdateProgressFunc(ctx, id, currentAmount, progress, status)
}

func TestRecompute_Invariant(t *testing.T) {
	tests := []struct {
		name       string
		current    float64
		target     float64
		wantStatus string
	}{
		{"fresh goal", 0, 1000, StatusInProgress},
		{"partway", 400, 1000, StatusInProgress},
		{"just under", 999.99, 1000, StatusInProgress},
		{"exactly met", 1000, 1000, StatusCompleted},
		{"overshot", 1500, 1000, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{CurrentAmount: tt.current, TargetAmount: tt.target}
			g.Recompute()

			if g.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", g.Status, tt.wantStatus)
			}
			wantProgress := tt.current / tt.target
			if math.Abs(g.Progress-wantProgress) > 1e-9 {
				t.Errorf("progress = %v, want %v", g.Progress, wantProgress)
			}
			// The invariant both ways: completed iff current >= target
			if (g.Status == StatusCompleted) != (g.CurrentAmount >= g.TargetAmount) {
				t.Error("completed status does not match amounts")
			}
		})
	}
}

func TestCreate(t *testing.T) {
	repo := &mockRepo{
		CreateFunc: func(ctx context.Context, g *Goal) (*Goal, error) {
			return g, nil
		},
	}
	svc := NewService(repo)

	t.Run("derives status on create", func(t *testing.T) {
		g, err := svc.Create(context.Background(), CreateParams{
			UserID: 1, Name: "Emergency fund", TargetAmount: 5000, CurrentAmount: 5000,
		})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		if g.Status != StatusCompleted {
			t.Errorf("status = %q, want completed", g.Status)
		}
		if g.ID == "" {
			t.Error("expected generated ID")
		}
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		if _, err := svc.Create(context.Background(), CreateParams{
			UserID: 1, Name: "X", TargetAmount: 0,
		}); err == nil {
			t.Error("expected error for zero target amount")
		}
	})

	t.Run("rejects negative current", func(t *testing.T) {
		if _, err := svc.Create(context.Background(), CreateParams{
			UserID: 1, Name: "X", TargetAmount: 100, CurrentAmount: -1,
		}); err == nil {
			t.Error("expected error for negative current amount")
		}
	})
}

func TestUpdateProgress(t *testing.T) {
	stored := &Goal{ID: "g1", UserID: 1, Name: "Trip", TargetAmount: 2000, CurrentAmount: 500}
	stored.Recompute()

	repo := &mockRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*Goal, error) {
			if id == "g1" {
				g := *stored
				return &g, nil
			}
			return nil, ErrGoalNotFound
		},
		UpdateProgressFunc: func(ctx context.Context, id string, currentAmount, progress float64, status string) (*Goal, error) {
			g := *stored
			g.CurrentAmount = currentAmount
			g.Progress = progress
			g.Status = status
			return &g, nil
		},
	}
	svc := NewService(repo)

	t.Run("completes when target reached", func(t *testing.T) {
		g, err := svc.UpdateProgress(context.Background(), 1, "g1", 2000)
		if err != nil {
			t.Fatalf("UpdateProgress() failed: %v", err)
		}
		if g.Status != StatusCompleted || g.Progress != 1 {
			t.Errorf("got status=%q progress=%v, want completed/1", g.Status, g.Progress)
		}
	})

	t.Run("wrong owner", func(t *testing.T) {
		_, err := svc.UpdateProgress(context.Background(), 2, "g1", 100)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		if _, err := svc.UpdateProgress(context.Background(), 1, "g1", -5); err == nil {
			t.Error("expected error for negative amount")
		}
	})
}
