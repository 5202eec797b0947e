package mailer

import "context"

// IMailer sends one HTML email per call. No retries; callers that need
// redelivery re-invoke on their own schedule.
type IMailer interface {
	Send(ctx context.Context, to, subject, html string) error
}
