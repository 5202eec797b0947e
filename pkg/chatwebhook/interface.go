package chatwebhook

import (
	"context"

	"github.com/friendsofgo/errors"

	"visitor-alert-srv/pkg/log"
)

// IChatWebhook posts block-structured messages to recipient-supplied
// webhook URLs. Any non-2xx response is a failure.
type IChatWebhook interface {
	Send(ctx context.Context, webhookURL string, msg Message) error
	Close() error
}

// New creates a chat webhook client. A zero timeout falls back to
// DefaultTimeout.
func New(l log.Logger, cfg Config) (IChatWebhook, error) {
	if l == nil {
		return nil, errors.New("chatwebhook: logger is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &chatImpl{
		l:      l,
		config: cfg,
		client: newHTTPClient(cfg.Timeout),
	}, nil
}
