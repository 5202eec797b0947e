package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/friendsofgo/errors"

	"visitor-alert-srv/internal/alert/repository"
	"visitor-alert-srv/internal/lookup"
	"visitor-alert-srv/internal/model"
	"visitor-alert-srv/pkg/chatwebhook"
	"visitor-alert-srv/pkg/webhook"
)

// mockLogger implements log.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

// fakeRepo is an in-memory Repository mirroring the dedup semantics of
// the real store: the recency query plus the bucket unique constraint.
type fakeRepo struct {
	mu     sync.Mutex
	alerts []*model.Alert
	nextID int

	createErr   error
	pendingErr  error
	markSentErr error
	clock       func() time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{clock: time.Now}
}

func (f *fakeRepo) Create(ctx context.Context, opts repository.CreateOptions) (model.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Alert{}, f.createErr
	}

	now := f.clock().UTC()
	bucket := model.BucketFor(now)
	for _, a := range f.alerts {
		if a.UserID == opts.Alert.UserID && a.CampaignID == opts.Alert.CampaignID &&
			a.VisitID == opts.Alert.VisitID && a.Kind == opts.Alert.Kind && a.DedupBucket == bucket {
			return model.Alert{}, repository.ErrDuplicate
		}
	}

	f.nextID++
	alrt := opts.Alert
	alrt.ID = alertID(f.nextID)
	alrt.CreatedAt = now
	alrt.DedupBucket = bucket
	f.alerts = append(f.alerts, &alrt)
	return alrt, nil
}

func alertID(n int) string {
	const base = "00000000-0000-0000-0000-0000000000"
	return base + string(rune('0'+n/10)) + string(rune('0'+n%10))
}

func (f *fakeRepo) FindRecent(ctx context.Context, opts repository.RecentOptions) (model.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := f.clock().UTC().Add(-opts.Window)
	for i := len(f.alerts) - 1; i >= 0; i-- {
		a := f.alerts[i]
		if a.UserID == opts.UserID && a.CampaignID == opts.CampaignID &&
			a.VisitID == opts.VisitID && a.Kind == opts.Kind && !a.CreatedAt.Before(cutoff) {
			return *a, nil
		}
	}
	return model.Alert{}, repository.ErrNotFound
}

func (f *fakeRepo) PendingEmail(ctx context.Context, userID string, since time.Time) ([]model.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}

	var out []model.Alert
	for _, a := range f.alerts {
		if a.UserID == userID && !a.SentViaEmail && !a.CreatedAt.Before(since) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkSent(ctx context.Context, id string, channel model.AlertChannel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markSentErr != nil {
		return f.markSentErr
	}

	for _, a := range f.alerts {
		if a.ID != id {
			continue
		}
		switch channel {
		case model.ChannelEmail:
			a.SentViaEmail = true
		case model.ChannelChat:
			a.SentViaChat = true
		case model.ChannelWebhook:
			a.SentViaWebhook = true
		}
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) MarkEmailSent(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markSentErr != nil {
		return f.markSentErr
	}

	for _, id := range ids {
		for _, a := range f.alerts {
			if a.ID == id {
				a.SentViaEmail = true
			}
		}
	}
	return nil
}

func (f *fakeRepo) get(id string) model.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.alerts {
		if a.ID == id {
			return *a
		}
	}
	return model.Alert{}
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

// fakeResolver serves one canned resolution and recipient list.
type fakeResolver struct {
	resolution lookup.Resolution
	resolveErr error

	recipients    []model.Recipient
	recipientsErr error

	prior []model.Visit
}

func (f *fakeResolver) ResolveRecipient(ctx context.Context, campaignID string) (lookup.Resolution, error) {
	if f.resolveErr != nil {
		return lookup.Resolution{}, f.resolveErr
	}
	return f.resolution, nil
}

func (f *fakeResolver) Recipients(ctx context.Context) ([]model.Recipient, error) {
	if f.recipientsErr != nil {
		return nil, f.recipientsErr
	}
	return f.recipients, nil
}

func (f *fakeResolver) PriorSessions(ctx context.Context, campaignID, visitorEmail, excludeSessionID string) ([]model.Visit, error) {
	return f.prior, nil
}

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentEmail
	failWith error
}

type sentEmail struct {
	to      string
	subject string
	html    string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, html: html})
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeChat records chat webhook sends.
type fakeChat struct {
	mu       sync.Mutex
	sent     []chatwebhook.Message
	failWith error
}

func (f *fakeChat) Send(ctx context.Context, webhookURL string, msg chatwebhook.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeChat) Close() error { return nil }

func (f *fakeChat) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeWebhook records generic webhook sends.
type fakeWebhook struct {
	mu       sync.Mutex
	sent     []webhook.Envelope
	failWith error
}

func (f *fakeWebhook) Send(ctx context.Context, url string, env webhook.Envelope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, env)
	return nil
}

func (f *fakeWebhook) Close() error { return nil }

func (f *fakeWebhook) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

var errSendFailed = errors.New("send failed")
