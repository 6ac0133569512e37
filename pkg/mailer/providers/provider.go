// Package providers delivers rendered mail through a single transport each.
package providers

import (
	"context"
	"errors"
)

const (
	NameResend   = "resend"
	NameSendGrid = "sendgrid"
	NameSMTP     = "smtp"
	NameLog      = "log"
)

var (
	ErrAPIKeyRequired   = errors.New("provider API key is required")
	ErrSMTPHostRequired = errors.New("SMTP host is required")
)

// Message is a fully rendered email. HTML is required; Text is an optional
// plain alternative.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Provider sends one message and returns the provider's message ID when it
// reports one.
type Provider interface {
	Name() string
	Send(ctx context.Context, msg *Message) (string, error)
}
