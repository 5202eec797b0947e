package chatwebhook

import "time"

const (
	// DefaultTimeout bounds one webhook delivery attempt.
	DefaultTimeout = 10 * time.Second
	// UserAgent identifies this service to the receiving endpoint.
	UserAgent = "VisitorAlert-Bot/1.0"

	// MaxHeaderLen is the chat platform limit for header block text.
	MaxHeaderLen = 150
	// MaxSectionLen is the chat platform limit for section block text.
	MaxSectionLen = 3000
)
