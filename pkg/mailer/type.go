package mailer

import (
	"github.com/resend/resend-go/v2"

	"visitor-alert-srv/pkg/log"
)

// Config holds mailer configuration.
type Config struct {
	APIKey string
	From   string
}

type resendMailer struct {
	l      log.Logger
	client *resend.Client
	from   string
}
