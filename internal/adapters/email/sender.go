package email

import (
	"context"
	"time"
)

// SendRequest is one admin notification mail, such as the retention cleanup
// summary.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "출석체크 <noreply@example.org>")
	Subject string
	HTML    string // HTML body
	ReplyTo string // Reply-to address
}

// SendResult carries the provider's acknowledgement.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender delivers admin notification mail through an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
