package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"finsight/internal/domain/bill"
	"finsight/internal/domain/notification"
	"finsight/internal/shared/messages"
)

// OverdueSweepJob transitions every upcoming bill whose due date has passed
// to the overdue status and notifies the owner of each. Runs across all
// users.
type OverdueSweepJob struct {
	bills         bill.Repository
	notifications *notification.Service
	messages      *messages.Messages
	now           func() time.Time
}

func NewOverdueSweepJob(bills bill.Repository, notifications *notification.Service, msgs *messages.Messages) *OverdueSweepJob {
	if msgs == nil {
		msgs = messages.Defaults()
	}
	return &OverdueSweepJob{
		bills:         bills,
		notifications: notifications,
		messages:      msgs,
		now:           time.Now,
	}
}

func (j *OverdueSweepJob) Execute(ctx context.Context) error {
	marked, err := j.bills.MarkOverdue(ctx, j.now())
	if err != nil {
		return fmt.Errorf("overdue sweep failed: %w", err)
	}
	if len(marked) == 0 {
		return nil
	}

	log.Printf("Overdue sweep: marked %d bills overdue", len(marked))

	var failed int
	for _, b := range marked {
		body := fmt.Sprintf(j.messages.BillOverdue.Body, b.Name, b.Amount)
		data := map[string]string{
			"bill_id":  b.ID,
			"due_date": b.DueDate.Format("2006-01-02"),
		}

		if err := j.notifications.SendToUser(ctx, b.UserID, j.messages.BillOverdue.Title, body, notification.CategoryBills, data); err != nil {
			log.Printf("Failed to send overdue notice for bill %s (user %d): %v", b.ID, b.UserID, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("overdue notices: %d of %d sends failed", failed, len(marked))
	}
	return nil
}

func (j *OverdueSweepJob) UserID() string {
	return "all"
}

func (j *OverdueSweepJob) Description() string {
	return "Mark past-due upcoming bills overdue and notify their owners"
}

// BillReminderJob notifies users about bills coming due within the
// configured reminder window.
type BillReminderJob struct {
	bills         bill.Repository
	notifications *notification.Service
	messages      *messages.Messages
	reminderDays  int
	now           func() time.Time
}

func NewBillReminderJob(bills bill.Repository, notifications *notification.Service, msgs *messages.Messages, reminderDays int) *BillReminderJob {
	if msgs == nil {
		msgs = messages.Defaults()
	}
	if reminderDays < 1 {
		reminderDays = 3
	}
	return &BillReminderJob{
		bills:         bills,
		notifications: notifications,
		messages:      msgs,
		reminderDays:  reminderDays,
		now:           time.Now,
	}
}

func (j *BillReminderJob) Execute(ctx context.Context) error {
	from := j.now()
	to := from.AddDate(0, 0, j.reminderDays)

	due, err := j.bills.ListDueBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to list due bills: %w", err)
	}

	if len(due) == 0 {
		return nil
	}

	log.Printf("Bill reminders: %d bills due within %d days", len(due), j.reminderDays)

	var failed int
	for _, b := range due {
		if b.Status != bill.StatusUpcoming {
			continue
		}

		body := fmt.Sprintf(j.messages.BillDueSoon.Body, b.Name, b.Amount)
		data := map[string]string{
			"bill_id":  b.ID,
			"due_date": b.DueDate.Format("2006-01-02"),
		}

		if err := j.notifications.SendToUser(ctx, b.UserID, j.messages.BillDueSoon.Title, body, notification.CategoryBills, data); err != nil {
			log.Printf("Failed to send bill reminder for bill %s (user %d): %v", b.ID, b.UserID, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("bill reminders: %d of %d sends failed", failed, len(due))
	}
	return nil
}

func (j *BillReminderJob) UserID() string {
	return "all"
}

func (j *BillReminderJob) Description() string {
	return fmt.Sprintf("Remind users about bills due within %d days", j.reminderDays)
}

// BillJobProvider builds the standing job batch for a scheduler run.
func BillJobProvider(bills bill.Repository, notifications *notification.Service, msgs *messages.Messages, reminderDays int) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		return []Job{
			NewOverdueSweepJob(bills, notifications, msgs),
			NewBillReminderJob(bills, notifications, msgs, reminderDays),
		}, nil
	}
}
