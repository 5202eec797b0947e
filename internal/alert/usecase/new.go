package usecase

import (
	"time"

	"visitor-alert-srv/internal/alert"
	"visitor-alert-srv/internal/alert/detector"
	"visitor-alert-srv/internal/alert/repository"
	"visitor-alert-srv/internal/lookup"
	"visitor-alert-srv/pkg/chatwebhook"
	"visitor-alert-srv/pkg/log"
	"visitor-alert-srv/pkg/mailer"
	"visitor-alert-srv/pkg/webhook"
)

// defaultSendTimeout bounds one channel attempt. There are no retries;
// a timed-out send is a failed send.
const defaultSendTimeout = 10 * time.Second

// digestLookback is how far back the daily digest collects un-emailed
// alerts. Alerts older than this fall out of all future digest queries.
const digestLookback = 24 * time.Hour

// Config holds usecase configuration.
type Config struct {
	DashboardURL string
	SettingsURL  string
	SendTimeout  time.Duration
}

type implUseCase struct {
	l        log.Logger
	cfg      Config
	repo     repository.Repository
	resolver lookup.Resolver
	detector *detector.Detector
	mailer   mailer.IMailer
	chat     chatwebhook.IChatWebhook
	webhook  webhook.IWebhook
	clock    func() time.Time
}

// New creates the alert engine usecase.
func New(
	l log.Logger,
	cfg Config,
	repo repository.Repository,
	resolver lookup.Resolver,
	det *detector.Detector,
	m mailer.IMailer,
	chat chatwebhook.IChatWebhook,
	wh webhook.IWebhook,
) alert.UseCase {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	return &implUseCase{
		l:        l,
		cfg:      cfg,
		repo:     repo,
		resolver: resolver,
		detector: det,
		mailer:   m,
		chat:     chat,
		webhook:  wh,
		clock:    time.Now,
	}
}
