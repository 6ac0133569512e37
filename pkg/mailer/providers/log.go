package providers

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LogProvider records outgoing mail in the log instead of delivering it.
type LogProvider struct {
	log zerolog.Logger
}

func NewLogProvider(log zerolog.Logger) *LogProvider {
	return &LogProvider{log: log}
}

func (p *LogProvider) Name() string { return NameLog }

func (p *LogProvider) Send(_ context.Context, msg *Message) (string, error) {
	id := uuid.NewString()
	p.log.Info().
		Str("message_id", id).
		Strs("to", msg.To).
		Str("reply_to", msg.ReplyTo).
		Str("subject", msg.Subject).
		Msg("email not delivered: log provider")
	return id, nil
}
