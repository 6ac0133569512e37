package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func testMessage() *Message {
	return &Message{
		From:    "library@example.com",
		To:      []string{"reader@example.com"},
		ReplyTo: "desk@example.com",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
	}
}

func TestResendProviderSend(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	p := NewResendProvider(ResendConfig{APIKey: "re_key", BaseURL: srv.URL})
	id, err := p.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "Hello", got["subject"])
	assert.Equal(t, "desk@example.com", got["reply_to"])
}

func TestResendProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	p := NewResendProvider(ResendConfig{APIKey: "re_key", BaseURL: srv.URL})
	_, err := p.Send(context.Background(), testMessage())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid from")
}

func TestSendGridProviderSend(t *testing.T) {
	var got sendGridMail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("X-Message-Id", "sg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := NewSendGridProvider(SendGridConfig{APIKey: "sg_key", BaseURL: srv.URL})
	id, err := p.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "sg-1", id)
	require.Len(t, got.Content, 2)
	assert.Equal(t, "text/plain", got.Content[0].Type)
	assert.Equal(t, "text/html", got.Content[1].Type)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "desk@example.com", got.ReplyTo.Email)
}

func TestHTTPProvidersRequireKey(t *testing.T) {
	_, err := NewResendProvider(ResendConfig{}).Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrAPIKeyRequired)

	_, err = NewSendGridProvider(SendGridConfig{}).Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (s *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m...)
	return nil
}

func TestSMTPProviderSend(t *testing.T) {
	s := &fakeSender{}
	p := &SMTPProvider{sender: s}

	_, err := p.Send(context.Background(), testMessage())
	require.NoError(t, err)
	require.Len(t, s.sent, 1)

	msg := s.sent[0]
	assert.Equal(t, []string{"Hello"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"desk@example.com"}, msg.GetHeader("Reply-To"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<p>Hi</p>")
}

func TestSMTPProviderErrors(t *testing.T) {
	_, err := NewSMTPProvider(SMTPConfig{}).Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrSMTPHostRequired)

	p := &SMTPProvider{sender: &fakeSender{err: errors.New("refused")}}
	_, err = p.Send(context.Background(), testMessage())
	assert.ErrorContains(t, err, "refused")

	s := &fakeSender{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&SMTPProvider{sender: s}).Send(ctx, testMessage())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.sent)
}
