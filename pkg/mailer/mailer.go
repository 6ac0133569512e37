// Package mailer renders and sends library mail through one or more providers.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"library-cms/pkg/mailer/providers"

	"github.com/rs/zerolog"
)

var (
	ErrNoProviders        = errors.New("at least one email provider is required")
	ErrRecipientRequired  = errors.New("recipient email is required")
	ErrSubjectRequired    = errors.New("email subject is required")
	ErrHTMLRequired       = errors.New("email HTML content is required")
	ErrReplyBodyRequired  = errors.New("reply body is required")
	ErrAllProvidersFailed = errors.New("all email providers failed")
)

type Message = providers.Message

// Config selects providers and the strategy spreading mail across them.
// Providers are ordered Resend, SendGrid, SMTP. With none configured mail
// goes to the log.
type Config struct {
	From           string
	Strategy       string
	ResendAPIKey   string
	SendGridAPIKey string
	SMTP           providers.SMTPConfig
	PriorityLimits map[string]int
}

// Mailer validates messages and hands them to its strategy.
type Mailer struct {
	from      string
	strategy  Strategy
	providers []providers.Provider
}

// New builds a Mailer from cfg.
func New(cfg Config, log zerolog.Logger) (*Mailer, error) {
	var list []providers.Provider
	if cfg.ResendAPIKey != "" {
		list = append(list, providers.NewResendProvider(providers.ResendConfig{APIKey: cfg.ResendAPIKey}))
	}
	if cfg.SendGridAPIKey != "" {
		list = append(list, providers.NewSendGridProvider(providers.SendGridConfig{APIKey: cfg.SendGridAPIKey}))
	}
	if cfg.SMTP.Host != "" {
		list = append(list, providers.NewSMTPProvider(cfg.SMTP))
	}
	if len(list) == 0 {
		list = append(list, providers.NewLogProvider(log))
	}

	strategy, err := NewStrategy(cfg.Strategy, cfg.PriorityLimits)
	if err != nil {
		return nil, err
	}
	return NewMailer(cfg.From, strategy, list...)
}

// NewMailer returns a Mailer sending from the given address. A nil strategy
// uses only the first provider.
func NewMailer(from string, strategy Strategy, list ...providers.Provider) (*Mailer, error) {
	if len(list) == 0 {
		return nil, ErrNoProviders
	}
	for _, p := range list {
		if p == nil {
			return nil, ErrNoProviders
		}
	}
	if _, err := mail.ParseAddress(from); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", from, err)
	}
	if strategy == nil {
		strategy = Single()
	}
	return &Mailer{from: from, strategy: strategy, providers: list}, nil
}

// Providers returns the names of the configured providers in order.
func (m *Mailer) Providers() []string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return names
}

// Send fills in the sender, validates msg and delivers it. It returns the
// provider message ID when one is reported.
func (m *Mailer) Send(ctx context.Context, msg Message) (string, error) {
	if msg.From == "" {
		msg.From = m.from
	}
	if err := validate(&msg); err != nil {
		return "", err
	}
	return m.strategy.Deliver(ctx, &msg, m.providers)
}

func validate(msg *Message) error {
	if len(msg.To) == 0 {
		return ErrRecipientRequired
	}
	for _, to := range msg.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", to, err)
		}
	}
	if msg.ReplyTo != "" {
		if _, err := mail.ParseAddress(msg.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to %q: %w", msg.ReplyTo, err)
		}
	}
	if msg.Subject == "" {
		return ErrSubjectRequired
	}
	if msg.HTML == "" {
		return ErrHTMLRequired
	}
	return nil
}
