package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"finsight/internal/domain/bill"
	"finsight/internal/domain/notification"
)

// mockBillRepo implements bill.Repository for testing
type mockBillRepo struct {
	MarkOverdueFunc    func(ctx context.Context, asOf time.Time) ([]*bill.Bill, error)
	ListDueBetweenFunc func(ctx context.Context, from, to time.Time) ([]*bill.Bill, error)
}

func (m *mockBillRepo) Create(ctx context.Context, params bill.CreateParams) (*bill.Bill, error) {
	return nil, nil
}

func (m *mockBillRepo) GetByID(ctx context.Context, id string) (*bill.Bill, error) {
	return nil, bill.ErrBillNotFound
}

func (m *mockBillRepo) ListByUserID(ctx context.Context, userID int64) ([]*bill.Bill, error) {
	return nil, nil
}

func (m *mockBillRepo) ListByStatus(ctx context.Context, userID int64, status string) ([]*bill.Bill, error) {
	return nil, nil
}

func (m *mockBillRepo) UpdateStatus(ctx context.Context, id, status string) (*bill.Bill, error) {
	return nil, nil
}

func (m *mockBillRepo) MarkOverdue(ctx context.Context, asOf time.Time) ([]*bill.Bill, error) {
	if m.MarkOverdueFunc != nil {
		return m.MarkOverdueFunc(ctx, asOf)
	}
	return nil, nil
}

func (m *mockBillRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]*bill.Bill, error) {
	if m.ListDueBetweenFunc != nil {
		return m.ListDueBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

// mockNotificationRepo implements notification.Repository with just enough
// behavior for the reminder job path.
type mockNotificationRepo struct {
	created []notification.CreateNotificationParams
}

func (m *mockNotificationRepo) UpsertDeviceToken(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error) {
	return nil, nil
}

func (m *mockNotificationRepo) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	return []*notification.DeviceToken{{ID: "dt-1", UserID: userID, Token: "tok-1", IsActive: true}}, nil
}

func (m *mockNotificationRepo) DeactivateToken(ctx context.Context, token string) error {
	return nil
}

func (m *mockNotificationRepo) GetPreferences(ctx context.Context, userID int64) (*notification.NotificationPreference, error) {
	return &notification.NotificationPreference{
		ID: "pref-1", UserID: userID,
		BillsEnabled: true, BudgetsEnabled: true, GoalsEnabled: true, GeneralEnabled: true,
	}, nil
}

func (m *mockNotificationRepo) UpsertPreferences(ctx context.Context, userID int64, params notification.UpdatePreferenceParams) (*notification.NotificationPreference, error) {
	return nil, nil
}

func (m *mockNotificationRepo) CreateNotification(ctx context.Context, params notification.CreateNotificationParams) (*notification.Notification, error) {
	m.created = append(m.created, params)
	return &notification.Notification{ID: "n-1", UserID: params.UserID, Title: params.Title}, nil
}

func (m *mockNotificationRepo) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error) {
	return nil, 0, nil
}

func (m *mockNotificationRepo) MarkOpened(ctx context.Context, notificationID string, userID int64) error {
	return nil
}

func TestOverdueSweepJob(t *testing.T) {
	var gotAsOf time.Time
	overdue := time.Now().AddDate(0, 0, -2)
	repo := &mockBillRepo{
		MarkOverdueFunc: func(ctx context.Context, asOf time.Time) ([]*bill.Bill, error) {
			gotAsOf = asOf
			return []*bill.Bill{
				{ID: "bill-1", UserID: 1, Name: "Electric", Amount: 85.5, DueDate: overdue, Status: bill.StatusOverdue},
				{ID: "bill-2", UserID: 2, Name: "Internet", Amount: 60, DueDate: overdue, Status: bill.StatusOverdue},
			}, nil
		},
	}
	notifRepo := &mockNotificationRepo{}

	job := NewOverdueSweepJob(repo, notification.NewService(notifRepo, nil), nil)
	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAsOf.IsZero() {
		t.Error("expected sweep to pass the current time")
	}

	// One notice per newly-overdue bill, addressed to its owner.
	if len(notifRepo.created) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifRepo.created))
	}
	n := notifRepo.created[0]
	if n.UserID != 1 {
		t.Errorf("expected notice for user 1, got %d", n.UserID)
	}
	if n.Category != notification.CategoryBills {
		t.Errorf("expected category %q, got %q", notification.CategoryBills, n.Category)
	}
	if n.Message != "Electric ($85.50) is past its due date" {
		t.Errorf("unexpected message: %q", n.Message)
	}
}

func TestOverdueSweepJobNothingMarked(t *testing.T) {
	notifRepo := &mockNotificationRepo{}

	job := NewOverdueSweepJob(&mockBillRepo{}, notification.NewService(notifRepo, nil), nil)
	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifRepo.created) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifRepo.created))
	}
}

func TestOverdueSweepJobError(t *testing.T) {
	repo := &mockBillRepo{
		MarkOverdueFunc: func(ctx context.Context, asOf time.Time) ([]*bill.Bill, error) {
			return nil, errors.New("db down")
		},
	}

	job := NewOverdueSweepJob(repo, notification.NewService(&mockNotificationRepo{}, nil), nil)
	if err := job.Execute(context.Background()); err == nil {
		t.Error("expected error to propagate")
	}
}

func TestBillReminderJob(t *testing.T) {
	due := time.Now().AddDate(0, 0, 2)
	billRepo := &mockBillRepo{
		ListDueBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*bill.Bill, error) {
			if to.Sub(from) < 72*time.Hour {
				t.Errorf("expected at least a 3 day window, got %v", to.Sub(from))
			}
			return []*bill.Bill{
				{ID: "bill-1", UserID: 1, Name: "Rent", Amount: 1200, DueDate: due, Status: bill.StatusUpcoming},
				{ID: "bill-2", UserID: 2, Name: "Water", Amount: 40, DueDate: due, Status: bill.StatusPaid},
			}, nil
		},
	}
	notifRepo := &mockNotificationRepo{}
	notifications := notification.NewService(notifRepo, nil)

	job := NewBillReminderJob(billRepo, notifications, nil, 3)
	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the upcoming bill produces a reminder; the paid one is skipped.
	if len(notifRepo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifRepo.created))
	}
	n := notifRepo.created[0]
	if n.UserID != 1 {
		t.Errorf("expected notification for user 1, got %d", n.UserID)
	}
	if n.Category != notification.CategoryBills {
		t.Errorf("expected category %q, got %q", notification.CategoryBills, n.Category)
	}
	if n.Message != "Rent ($1200.00) is due soon" {
		t.Errorf("unexpected message: %q", n.Message)
	}
}

func TestBillJobProvider(t *testing.T) {
	provider := BillJobProvider(&mockBillRepo{}, notification.NewService(&mockNotificationRepo{}, nil), nil, 3)

	jobs, err := provider(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	for _, j := range jobs {
		if j.Description() == "" {
			t.Error("expected a job description")
		}
	}
}

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{"08:00", ScheduleTime{8, 0}, false},
		{"23:59", ScheduleTime{23, 59}, false},
		{"0:5", ScheduleTime{0, 5}, false},
		{"24:00", ScheduleTime{}, true},
		{"12:60", ScheduleTime{}, true},
		{"noon", ScheduleTime{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScheduleTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSchedulerShouldRunOncePerMinute(t *testing.T) {
	s, err := NewScheduler(SchedulerConfig{
		ScheduleTimes: []string{"08:00"},
		WorkerCount:   1,
		QueueSize:     1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	at := time.Date(2026, 8, 28, 8, 0, 30, 0, time.UTC)
	if !s.shouldRun(at) {
		t.Error("expected scheduler to fire at the scheduled minute")
	}
	if s.shouldRun(at.Add(10 * time.Second)) {
		t.Error("expected scheduler to fire only once per minute")
	}
	if s.shouldRun(at.Add(5 * time.Minute)) {
		t.Error("expected scheduler not to fire off-schedule")
	}
}
