package lookup

import (
	"context"

	"visitor-alert-srv/internal/model"
)

// Resolution is the chain campaign -> company -> owning recipient,
// resolved in one call for the dispatcher.
type Resolution struct {
	Campaign  model.Campaign
	Company   model.Company
	Recipient model.Recipient
}

// Resolver provides the read-only lookups the alert engine depends on.
// All data it returns is owned by other subsystems.
type Resolver interface {
	// ResolveRecipient resolves a campaign to its company and owning
	// recipient (settings and email included). Returns ErrNotFound when
	// any link of the chain is missing.
	ResolveRecipient(ctx context.Context, campaignID string) (Resolution, error)

	// Recipients lists every user with a non-empty email address along
	// with their alert settings, for digest iteration.
	Recipients(ctx context.Context) ([]model.Recipient, error)

	// PriorSessions returns all visits for the campaign and visitor email
	// whose session id differs from excludeSessionID.
	PriorSessions(ctx context.Context, campaignID, visitorEmail, excludeSessionID string) ([]model.Visit, error)
}
