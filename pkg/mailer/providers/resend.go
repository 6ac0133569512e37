package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	resendBaseURL    = "https://api.resend.com"
	resendEmailsPath = "/emails"
)

type ResendConfig struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

type ResendProvider struct {
	api jsonAPI
}

func NewResendProvider(cfg ResendConfig) *ResendProvider {
	base := cfg.BaseURL
	if base == "" {
		base = resendBaseURL
	}
	return &ResendProvider{api: newJSONAPI(NameResend, base, cfg.APIKey, cfg.Client)}
}

func (p *ResendProvider) Name() string { return NameResend }

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

func (p *ResendProvider) Send(ctx context.Context, msg *Message) (string, error) {
	_, body, err := p.api.post(ctx, resendEmailsPath, resendEmail{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return "", err
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("resend: failed to decode response: %w", err)
	}
	return out.ID, nil
}
