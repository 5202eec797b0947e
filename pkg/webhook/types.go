package webhook

import (
	"net/http"
	"time"

	"visitor-alert-srv/pkg/log"
)

// EventVisitorAlert is the fixed event name of the outbound envelope.
const EventVisitorAlert = "visitor_alert"

// Config holds generic webhook client configuration.
type Config struct {
	Timeout time.Duration
}

type webhookImpl struct {
	l      log.Logger
	config Config
	client *http.Client
}

// Envelope is the fixed payload posted to a recipient-supplied URL.
type Envelope struct {
	Event     string         `json:"event"`
	Timestamp string         `json:"timestamp"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}
