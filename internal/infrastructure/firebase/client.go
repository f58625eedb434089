package firebase

import (
	"context"
	"fmt"
	"log"
	"slices"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCM rejects multicast batches above 500 tokens.
const fcmBatchLimit = 500

// TokenDeactivator marks an invalid FCM token as inactive. Supplied by the
// caller so this package stays decoupled from the repository layer; may be
// nil.
type TokenDeactivator func(ctx context.Context, token string) error

// Client implements notification.Messenger on Firebase Cloud Messaging.
type Client struct {
	msgClient   *messaging.Client
	deactivator TokenDeactivator
}

func NewClient(ctx context.Context, credentialsFile string, deactivator TokenDeactivator) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return &Client{msgClient: msgClient, deactivator: deactivator}, nil
}

// SendMulticast pushes a notification to many devices, batching to the FCM
// limit. Per-token failures are handled inline; only a whole-batch transport
// error fails the call.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	var success, failure int
	for batch := range slices.Chunk(tokens, fcmBatchLimit) {
		msg := &messaging.MulticastMessage{
			Tokens:       batch,
			Notification: &messaging.Notification{Title: title, Body: body},
			Data:         data,
		}

		resp, err := c.msgClient.SendEachForMulticast(ctx, msg)
		if err != nil {
			return fmt.Errorf("failed to send FCM multicast: %w", err)
		}

		success += resp.SuccessCount
		failure += resp.FailureCount
		if resp.FailureCount > 0 {
			c.reapDeadTokens(ctx, batch, resp)
		}
	}

	log.Printf("FCM multicast: %d success, %d failure", success, failure)
	return nil
}

// reapDeadTokens deactivates tokens FCM reported as gone and logs the rest.
func (c *Client) reapDeadTokens(ctx context.Context, tokens []string, resp *messaging.BatchResponse) {
	for i, r := range resp.Responses {
		switch {
		case r.Error == nil:
		case isDeadToken(r.Error):
			log.Printf("Invalid FCM token (deactivating): %s", redactToken(tokens[i]))
			c.deactivateToken(ctx, tokens[i])
		default:
			log.Printf("FCM send error for token %s: %v", redactToken(tokens[i]), r.Error)
		}
	}
}

func (c *Client) deactivateToken(ctx context.Context, token string) {
	if c.deactivator == nil {
		return
	}
	if err := c.deactivator(ctx, token); err != nil {
		log.Printf("Failed to deactivate FCM token %s: %v", redactToken(token), err)
	}
}

func isDeadToken(err error) bool {
	return messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err)
}

// redactToken keeps logs greppable without writing whole device tokens to
// disk.
func redactToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
