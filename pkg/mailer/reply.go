package mailer

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

const defaultReplySignature = "Your library team"

// ReplyEmail is an admin's answer to a contact form submission.
type ReplyEmail struct {
	To              string
	ReplyTo         string
	Subject         string
	Body            string
	LibraryName     string
	RecipientName   string
	OriginalSubject string
	OriginalMessage string
}

// Paragraphs splits the body on blank lines.
func (r ReplyEmail) Paragraphs() []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(r.Body, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var replyHTML = htmltemplate.Must(htmltemplate.New("reply_html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Subject}}</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
<h2>{{.LibraryName}}</h2>
<p>{{if .RecipientName}}Hi {{.RecipientName}},{{else}}Hi there,{{end}}</p>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}<p>{{.LibraryName}}</p>
{{if .OriginalMessage}}<hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
<p style="color: #777; font-size: 13px;">You wrote{{if .OriginalSubject}} ({{.OriginalSubject}}){{end}}:</p>
<blockquote style="color: #777; font-size: 13px; margin: 0; padding-left: 12px; border-left: 3px solid #ddd;">{{.OriginalMessage}}</blockquote>
{{end}}</div>
</body>
</html>
`))

var replyText = texttemplate.Must(texttemplate.New("reply_text").Parse(`{{if .RecipientName}}Hi {{.RecipientName}},{{else}}Hi there,{{end}}

{{.Body}}

{{.LibraryName}}
{{if .OriginalMessage}}
---
You wrote{{if .OriginalSubject}} ({{.OriginalSubject}}){{end}}:

{{.OriginalMessage}}
{{end}}`))

// SendReply renders the reply and sends it to the original sender. The
// subject defaults to "Re: " plus the original subject.
func (m *Mailer) SendReply(ctx context.Context, reply ReplyEmail) error {
	reply.To = strings.TrimSpace(reply.To)
	reply.Body = strings.TrimSpace(reply.Body)
	reply.Subject = strings.TrimSpace(reply.Subject)
	reply.LibraryName = strings.TrimSpace(reply.LibraryName)
	reply.RecipientName = strings.TrimSpace(reply.RecipientName)

	if reply.To == "" {
		return ErrRecipientRequired
	}
	if reply.Body == "" {
		return ErrReplyBodyRequired
	}
	if reply.Subject == "" && reply.OriginalSubject != "" {
		reply.Subject = "Re: " + reply.OriginalSubject
	}
	if reply.LibraryName == "" {
		reply.LibraryName = defaultReplySignature
	}

	var html, text bytes.Buffer
	if err := replyHTML.Execute(&html, reply); err != nil {
		return err
	}
	if err := replyText.Execute(&text, reply); err != nil {
		return err
	}

	_, err := m.Send(ctx, Message{
		To:      []string{reply.To},
		ReplyTo: reply.ReplyTo,
		Subject: reply.Subject,
		HTML:    html.String(),
		Text:    text.String(),
	})
	return err
}
