package alert

import (
	"context"

	"visitor-alert-srv/internal/model"
)

// UseCase defines the alert engine interface.
type UseCase interface {
	// HandleVisitEvent evaluates one visit snapshot, persists every
	// non-duplicate condition as an alert and fans each one out to the
	// recipient's configured channels. It returns once all launched
	// channel attempts have settled; per-channel outcomes are not
	// surfaced to the caller.
	HandleVisitEvent(ctx context.Context, visit model.Visit) error

	// RunDailyDigests sends one combined email per digest-mode recipient
	// covering their un-emailed alerts from the last 24 hours. Invoked
	// by an external scheduler.
	RunDailyDigests(ctx context.Context) (DigestSummary, error)
}
