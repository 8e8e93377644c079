package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/voxay/daybrief/internal/agenda"
	"github.com/voxay/daybrief/internal/api"
	"github.com/voxay/daybrief/internal/config"
	"github.com/voxay/daybrief/internal/digest"
	"github.com/voxay/daybrief/internal/graph"
	"github.com/voxay/daybrief/internal/mailer"
	"github.com/voxay/daybrief/internal/notify"
	"github.com/voxay/daybrief/internal/prompt"
	"github.com/voxay/daybrief/internal/userctx"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	logger.Info("Starting daybrief...")

	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/daybrief.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}
	logger.Info("Config loaded", zap.String("path", cfgPath))

	// Context store: degrade to in-memory when the configured backend is
	// unavailable so the interactive surface keeps working.
	var store userctx.Store = userctx.NewMemoryStore()
	var closeStore func()
	switch cfg.Storage.Backend {
	case "postgres":
		ps, pgErr := userctx.NewPostgresStore(context.Background(), cfg.Storage.Postgres.DSN, logger)
		if pgErr != nil {
			logger.Warn("PostgreSQL unavailable, contexts held in memory", zap.Error(pgErr))
		} else {
			store = ps
			closeStore = ps.Close
		}
	case "redis":
		rs, rErr := userctx.NewRedisStore(cfg.Storage.Redis.URL, logger)
		if rErr != nil {
			logger.Warn("Redis unavailable, contexts held in memory", zap.Error(rErr))
		} else {
			store = rs
			closeStore = func() { rs.Close() }
		}
	default:
		logger.Info("Using in-memory context store")
	}

	// Provider client and prompt router
	graphClient := graph.NewHTTPClient(graph.Config{Endpoint: cfg.Graph.Endpoint}, logger)
	promptRouter := prompt.NewRouter(graphClient, time.Now, logger)

	// Digest delivery
	sgMailer := mailer.NewSendGridMailer(mailer.Config{
		Endpoint: cfg.Mail.Endpoint,
		APIKey:   cfg.Mail.APIKey,
	}, logger)

	fanout := notify.NewFanout(logger)
	if cfg.Notify.Slack.Enabled && cfg.Notify.Slack.WebhookURL != "" {
		fanout.Register(notify.NewSlackWebhook(cfg.Notify.Slack.WebhookURL, logger))
		logger.Info("Slack notifier enabled")
	}

	// Digest scheduler
	var scheduler *digest.Scheduler
	if len(cfg.Digest.Subscriptions) > 0 {
		subs := make([]digest.Subscription, len(cfg.Digest.Subscriptions))
		for i, sc := range cfg.Digest.Subscriptions {
			subs[i] = digest.Subscription{
				UserID: sc.UserID, To: sc.To, From: sc.From, Token: sc.Token,
			}
		}
		ranker := agenda.NewRanker(time.Now)
		job := digest.NewJob(store, graphClient, ranker, sgMailer, fanout, time.Now, logger)
		scheduler = digest.NewScheduler(job, subs, cfg.Digest.Hour, time.Now, logger)
		scheduler.Start()
	} else {
		logger.Info("No digest subscriptions configured")
	}

	// Build HTTP handler
	handler := api.NewHandler(promptRouter, store, scheduler, logger)

	// Start server
	port := fmt.Sprintf("%d", cfg.Server.Port)
	if port == "0" {
		port = "3001"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("daybrief listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down daybrief...")
	if scheduler != nil {
		scheduler.Stop()
	}
	srv.Shutdown(context.Background())
	if closeStore != nil {
		closeStore()
	}
}
