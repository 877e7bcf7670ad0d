package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/dthlogistics/release-portal/internal/cache"
	"github.com/dthlogistics/release-portal/internal/config"
	"github.com/dthlogistics/release-portal/internal/db"
	"github.com/dthlogistics/release-portal/internal/kafka"
	"github.com/dthlogistics/release-portal/internal/logger"
	"github.com/dthlogistics/release-portal/internal/notify"
	"github.com/dthlogistics/release-portal/internal/release"
	"github.com/dthlogistics/release-portal/internal/repository/postgresql"
	"github.com/dthlogistics/release-portal/internal/server"
)

const notifyWorkers = 4

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(zapcore.InfoLevel)
	defer func() {
		_ = zlog.Sync()
	}()

	database, err := db.NewDb(ctx, cfg.DSN())
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	loadRepo := postgresql.NewLoadRepo(database)
	logRepo := postgresql.NewLoadLogRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo(cfg.OutboxMaxAttempts)
	userRepo := postgresql.NewUserRepo(database)

	if err := userRepo.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		zlog.Fatal("failed to ensure admin account", zap.Error(err))
	}

	loadCache := cache.NewLoadCache(loadRepo, zlog)
	if err := loadCache.LoadInitialData(ctx); err != nil {
		zlog.Fatal("failed to warm load cache", zap.Error(err))
	}

	docs := notify.NewSheetGenerator()

	var sender notify.EmailSender
	if cfg.SMTPConfigured() {
		sender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
			cfg.SenderName, cfg.SenderEmail)
	} else {
		sender = notify.NewMockSender(zlog)
	}

	dispatcher := notify.NewDispatcher(docs, sender, cfg.Timezone, notifyWorkers, zlog)
	dispatcher.Start(ctx, notifyWorkers)

	var producer kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewKafkaProducer(cfg.KafkaBrokers)
	} else {
		producer = kafka.NewConsoleProducer(zlog)
	}

	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	}, zlog)

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		zlog.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Timezone))
		location = time.UTC
	}

	service := release.NewService(release.Deps{
		DB:                database,
		Loads:             loadRepo,
		Logs:              logRepo,
		Outbox:            outboxRepo,
		Cache:             loadCache,
		Notifier:          dispatcher,
		Logger:            zlog,
		EventTopic:        cfg.KafkaTopic,
		DispatchEmail:     cfg.DispatchEmail,
		StrictTransitions: cfg.StrictTransitions,
		Location:          location,
	})

	srv := server.New(service, userRepo, docs, cfg.Timezone, zlog)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(cfg.HTTPPort)
	})
	g.Go(func() error {
		publisher.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Error("http server shutdown failed", zap.Error(err))
		}
		publisher.Shutdown()
		dispatcher.Shutdown(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		zlog.Fatal("server exited with error", zap.Error(err))
	}
	log.Println("Server gracefully stopped")
}
