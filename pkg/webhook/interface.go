package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/friendsofgo/errors"

	"visitor-alert-srv/pkg/log"
)

// DefaultTimeout bounds one delivery attempt.
const DefaultTimeout = 10 * time.Second

// IWebhook posts alert envelopes to recipient-supplied URLs.
// Any non-2xx response is a failure. No retries.
type IWebhook interface {
	Send(ctx context.Context, url string, env Envelope) error
	Close() error
}

// New creates a generic webhook client. A zero timeout falls back to
// DefaultTimeout.
func New(l log.Logger, cfg Config) (IWebhook, error) {
	if l == nil {
		return nil, errors.New("webhook: logger is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &webhookImpl{
		l:      l,
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}, nil
}
