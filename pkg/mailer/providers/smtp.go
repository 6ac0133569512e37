package providers

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

const defaultSMTPPort = 587

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// smtpSender is the part of *gomail.Dialer the provider uses.
type smtpSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPProvider struct {
	sender smtpSender
}

// NewSMTPProvider returns a provider that fails every send when cfg has no host.
func NewSMTPProvider(cfg SMTPConfig) *SMTPProvider {
	if cfg.Host == "" {
		return &SMTPProvider{}
	}
	port := cfg.Port
	if port == 0 {
		port = defaultSMTPPort
	}
	return &SMTPProvider{sender: gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password)}
}

func (p *SMTPProvider) Name() string { return NameSMTP }

func (p *SMTPProvider) Send(ctx context.Context, msg *Message) (string, error) {
	if p.sender == nil {
		return "", ErrSMTPHostRequired
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := p.sender.DialAndSend(buildSMTPMessage(msg)); err != nil {
		return "", fmt.Errorf("smtp: send failed: %w", err)
	}
	return "", nil
}

func buildSMTPMessage(msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	if msg.Text == "" {
		m.SetBody("text/html", msg.HTML)
		return m
	}
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)
	return m
}
