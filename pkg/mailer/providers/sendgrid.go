package providers

import (
	"context"
	"net/http"
)

const (
	sendGridBaseURL   = "https://api.sendgrid.com"
	sendGridSendPath  = "/v3/mail/send"
	sendGridMessageID = "X-Message-Id"
)

type SendGridConfig struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

type SendGridProvider struct {
	api jsonAPI
}

func NewSendGridProvider(cfg SendGridConfig) *SendGridProvider {
	base := cfg.BaseURL
	if base == "" {
		base = sendGridBaseURL
	}
	return &SendGridProvider{api: newJSONAPI(NameSendGrid, base, cfg.APIKey, cfg.Client)}
}

func (p *SendGridProvider) Name() string { return NameSendGrid }

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridMail struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	ReplyTo          *sendGridAddress          `json:"reply_to,omitempty"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

func (p *SendGridProvider) Send(ctx context.Context, msg *Message) (string, error) {
	to := make([]sendGridAddress, len(msg.To))
	for i, addr := range msg.To {
		to[i] = sendGridAddress{Email: addr}
	}

	// SendGrid requires text/plain to precede text/html.
	var content []sendGridContent
	if msg.Text != "" {
		content = append(content, sendGridContent{Type: "text/plain", Value: msg.Text})
	}
	content = append(content, sendGridContent{Type: "text/html", Value: msg.HTML})

	mail := sendGridMail{
		Personalizations: []sendGridPersonalization{{To: to}},
		From:             sendGridAddress{Email: msg.From},
		Subject:          msg.Subject,
		Content:          content,
	}
	if msg.ReplyTo != "" {
		mail.ReplyTo = &sendGridAddress{Email: msg.ReplyTo}
	}

	header, _, err := p.api.post(ctx, sendGridSendPath, mail)
	if err != nil {
		return "", err
	}
	return header.Get(sendGridMessageID), nil
}
