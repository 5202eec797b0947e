package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"visitor-alert-srv/config"
	configPostgre "visitor-alert-srv/config/postgre"
	"visitor-alert-srv/internal/alert/detector"
	alertRepo "visitor-alert-srv/internal/alert/repository/postgre"
	alertUC "visitor-alert-srv/internal/alert/usecase"
	"visitor-alert-srv/internal/httpserver"
	lookupRepo "visitor-alert-srv/internal/lookup/postgre"
	"visitor-alert-srv/internal/model"
	"visitor-alert-srv/pkg/chatwebhook"
	"visitor-alert-srv/pkg/log"
	"visitor-alert-srv/pkg/mailer"
	"visitor-alert-srv/pkg/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Visitor Alert Service...")

	// PostgreSQL
	db, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := configPostgre.Disconnect(db); err != nil {
			logger.Errorf(ctx, "Failed to close PostgreSQL connection: %v", err)
		}
	}()
	logger.Info(ctx, "PostgreSQL connected")

	// The alerts table is owned by this service; everything else is owned
	// by the tracking product.
	if err := db.WithContext(ctx).AutoMigrate(&model.Alert{}); err != nil {
		logger.Errorf(ctx, "Failed to migrate alerts table: %v", err)
		os.Exit(1)
	}

	// Outbound clients
	mailClient, err := mailer.New(logger, mailer.Config{
		APIKey: cfg.Mailer.APIKey,
		From:   cfg.Mailer.From,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize mailer: %v", err)
		os.Exit(1)
	}

	chatClient, err := chatwebhook.New(logger, chatwebhook.Config{
		Timeout: cfg.Alert.SendTimeout,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize chat webhook client: %v", err)
		os.Exit(1)
	}
	defer chatClient.Close()

	webhookClient, err := webhook.New(logger, webhook.Config{
		Timeout: cfg.Alert.SendTimeout,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize webhook client: %v", err)
		os.Exit(1)
	}
	defer webhookClient.Close()

	// Repositories and domain wiring
	resolver := lookupRepo.New(logger, db)
	repo := alertRepo.New(logger, db)
	det := detector.New(logger, resolver)

	uc := alertUC.New(logger, alertUC.Config{
		DashboardURL: cfg.Alert.DashboardURL,
		SettingsURL:  cfg.Alert.SettingsURL,
		SendTimeout:  cfg.Alert.SendTimeout,
	}, repo, resolver, det, mailClient, chatClient, webhookClient)

	// HTTP server
	srv, err := httpserver.New(logger, httpserver.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		Mode:         cfg.Server.Mode,
		InternalKey:  cfg.Internal.Key,
		AlertUseCase: uc,
		DB:           db,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Server error: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Visitor Alert Service stopped gracefully")
}
