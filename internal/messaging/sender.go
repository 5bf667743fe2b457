// Package messaging delivers reply text back to a channel.
package messaging

import (
	"context"

	applog "bizledger/internal/log"
)

type Sender interface {
	SendText(ctx context.Context, to, body string) error
}

// LogSender only records the outgoing reply. It is the default when no
// broker is configured.
type LogSender struct{}

func (LogSender) SendText(_ context.Context, to, body string) error {
	applog.Info(nil, "reply.logged", map[string]any{"to": to, "chars": len(body)})
	return nil
}
