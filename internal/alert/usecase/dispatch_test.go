package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"

	"visitor-alert-srv/internal/alert"
	"visitor-alert-srv/internal/alert/detector"
	"visitor-alert-srv/internal/lookup"
	"visitor-alert-srv/internal/model"
)

const (
	testUserID     = "aaaaaaaa-0000-0000-0000-000000000001"
	testCampaignID = "aaaaaaaa-0000-0000-0000-000000000002"
	testVisitID    = "aaaaaaaa-0000-0000-0000-000000000003"
)

type testEnv struct {
	uc       alert.UseCase
	repo     *fakeRepo
	resolver *fakeResolver
	mailer   *fakeMailer
	chat     *fakeChat
	webhook  *fakeWebhook
}

func allChannelSettings() model.AlertSettings {
	return model.AlertSettings{
		UserID:          testUserID,
		Enabled:         true,
		EmailEnabled:    true,
		SlackEnabled:    true,
		EmailDigest:     model.EmailModeInstant,
		SlackWebhookURL: null.StringFrom("https://hooks.example.com/chat"),
		WebhookURL:      null.StringFrom("https://api.example.com/hook"),
	}
}

func newTestEnv(settings model.AlertSettings) *testEnv {
	repo := newFakeRepo()
	resolver := &fakeResolver{
		resolution: lookup.Resolution{
			Campaign: model.Campaign{ID: testCampaignID, Name: "Spring Launch", UserID: testUserID},
			Company:  model.Company{Name: "Acme Corp"},
			Recipient: model.Recipient{
				UserID:   testUserID,
				Email:    "owner@acme.com",
				Settings: settings,
			},
		},
	}
	m := &fakeMailer{}
	chat := &fakeChat{}
	wh := &fakeWebhook{}

	logger := &mockLogger{}
	det := detector.New(logger, resolver)
	uc := New(logger, Config{
		DashboardURL: "https://app.example.com/alerts",
		SettingsURL:  "https://app.example.com/settings",
		SendTimeout:  time.Second,
	}, repo, resolver, det, m, chat, wh)

	return &testEnv{uc: uc, repo: repo, resolver: resolver, mailer: m, chat: chat, webhook: wh}
}

func formVisit() model.Visit {
	return model.Visit{
		ID:            testVisitID,
		CampaignID:    testCampaignID,
		SessionID:     "sess-1",
		VisitorEmail:  null.StringFrom("jane@acme.com"),
		VisitorName:   null.StringFrom("Jane Doe"),
		FormSubmitted: true,
	}
}

func TestHandleVisitEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects incomplete visit", func(t *testing.T) {
		env := newTestEnv(allChannelSettings())
		err := env.uc.HandleVisitEvent(ctx, model.Visit{ID: testVisitID})
		if err != alert.ErrInvalidVisit {
			t.Errorf("err = %v, want ErrInvalidVisit", err)
		}
	})

	t.Run("missing recipient is a no-op", func(t *testing.T) {
		env := newTestEnv(allChannelSettings())
		env.resolver.resolveErr = lookup.ErrNotFound

		if err := env.uc.HandleVisitEvent(ctx, formVisit()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if env.repo.count() != 0 {
			t.Errorf("alerts created = %d, want 0", env.repo.count())
		}
	})

	t.Run("disabled settings suppress everything", func(t *testing.T) {
		settings := allChannelSettings()
		settings.Enabled = false
		env := newTestEnv(settings)

		if err := env.uc.HandleVisitEvent(ctx, formVisit()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if env.repo.count() != 0 {
			t.Errorf("alerts created = %d, want 0", env.repo.count())
		}
		if env.mailer.sentCount() != 0 || env.chat.sentCount() != 0 || env.webhook.sentCount() != 0 {
			t.Error("no channel may send when alerts are disabled")
		}
	})

	t.Run("persists and delivers on all channels", func(t *testing.T) {
		env := newTestEnv(allChannelSettings())

		if err := env.uc.HandleVisitEvent(ctx, formVisit()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if env.repo.count() != 1 {
			t.Fatalf("alerts created = %d, want 1", env.repo.count())
		}
		alrt := env.repo.alerts[0]
		if alrt.Kind != model.AlertKindFormSubmission {
			t.Errorf("kind = %s, want form_submission", alrt.Kind)
		}
		if !alrt.SentViaEmail || !alrt.SentViaChat || !alrt.SentViaWebhook {
			t.Errorf("sent flags = %v/%v/%v, want all true",
				alrt.SentViaEmail, alrt.SentViaChat, alrt.SentViaWebhook)
		}
		if env.mailer.sentCount() != 1 || env.chat.sentCount() != 1 || env.webhook.sentCount() != 1 {
			t.Errorf("sends = %d/%d/%d, want 1/1/1",
				env.mailer.sentCount(), env.chat.sentCount(), env.webhook.sentCount())
		}
	})

	t.Run("repeat within window creates nothing", func(t *testing.T) {
		env := newTestEnv(allChannelSettings())

		if err := env.uc.HandleVisitEvent(ctx, formVisit()); err != nil {
			t.Fatalf("first dispatch: %v", err)
		}
		if err := env.uc.HandleVisitEvent(ctx, formVisit()); err != nil {
			t.Fatalf("second dispatch: %v", err)
		}

		if env.repo.count() != 1 {
			t.Errorf("alerts created = %d, want 1", env.repo.count())
		}
		if env.mailer.sentCount() != 1 {
			t.Errorf("emails sent = %d, want 1", env.mailer.sentCount())
		}
	})

	t.Run("channel failure leaves siblings untouched", func(t *testing.T) {
		env := newTestEnv(allChannelSettings())
		env.chat.failWith = errSendFailed

		if err := env.uc.HandleVisitEvent(ctx, formVisit()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if env.repo.count() != 1 {
			t.Fatalf("alerts created = %d, want 1", env.repo.count())
		}
		alrt := env.repo.alerts[0]
		if !alrt.SentViaEmail {
			t.Error("email flag must be true")
		}
		if alrt.SentViaChat {
			t.Error("chat flag must stay false after failed send")
		}
		if !alrt.SentViaWebhook {
			t.Error("webhook flag must be true")
		}
	})

	t.Run("digest mode recipient gets no instant email", func(t *testing.T) {
		settings := allChannelSettings()
		settings.EmailDigest = model.EmailModeDaily
		env := newTestEnv(settings)

		if err := env.uc.HandleVisitEvent(ctx, formVisit()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if env.mailer.sentCount() != 0 {
			t.Errorf("emails sent = %d, want 0", env.mailer.sentCount())
		}
		// Other channels are unaffected by the digest preference.
		if env.chat.sentCount() != 1 || env.webhook.sentCount() != 1 {
			t.Errorf("chat/webhook sends = %d/%d, want 1/1",
				env.chat.sentCount(), env.webhook.sentCount())
		}
		if alrt := env.repo.alerts[0]; alrt.SentViaEmail {
			t.Error("email flag must stay false for digest recipients")
		}
	})

	t.Run("unconfigured channels are skipped", func(t *testing.T) {
		settings := allChannelSettings()
		settings.SlackWebhookURL = null.String{}
		settings.WebhookURL = null.String{}
		env := newTestEnv(settings)

		if err := env.uc.HandleVisitEvent(ctx, formVisit()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if env.mailer.sentCount() != 1 {
			t.Errorf("emails sent = %d, want 1", env.mailer.sentCount())
		}
		if env.chat.sentCount() != 0 || env.webhook.sentCount() != 0 {
			t.Error("channels without a URL must not be attempted")
		}
	})

	t.Run("one visit can produce several alerts", func(t *testing.T) {
		env := newTestEnv(allChannelSettings())

		visit := formVisit()
		visit.ChatMessages = 7
		visit.CtaClicked = true

		if err := env.uc.HandleVisitEvent(ctx, visit); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if env.repo.count() != 3 {
			t.Fatalf("alerts created = %d, want 3", env.repo.count())
		}
		if env.mailer.sentCount() != 3 {
			t.Errorf("emails sent = %d, want 3", env.mailer.sentCount())
		}
	})
}
