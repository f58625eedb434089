package notification

import "context"

// Messenger delivers push notifications to device tokens. The Firebase FCM
// client implements it; a nil Messenger on the service disables pushes.
type Messenger interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}
