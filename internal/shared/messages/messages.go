package messages

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type MessageText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Messages struct {
	BillDueSoon MessageText `json:"bill_due_soon"`
	BillOverdue MessageText `json:"bill_overdue"`
}

// Defaults returns the built-in notification copy, used when no messages
// file is configured. Body strings are fmt templates: bill name, amount.
func Defaults() *Messages {
	return &Messages{
		BillDueSoon: MessageText{
			Title: "Upcoming bill",
			Body:  "%s ($%.2f) is due soon",
		},
		BillOverdue: MessageText{
			Title: "Bill overdue",
			Body:  "%s ($%.2f) is past its due date",
		},
	}
}

var (
	loaded   Messages
	loadOnce sync.Once
	loadErr  error
)

// Load reads the notifications JSON file and caches the result.
// Safe to call from multiple goroutines.
func Load(path string) (*Messages, error) {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read messages file: %w", err)
			return
		}
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to parse messages file: %w", err)
		}
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return &loaded, nil
}
