package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/ticket_gate/internal/adapter/auth"
	"github.com/srgjo27/ticket_gate/internal/adapter/gateway/razorpay"
	"github.com/srgjo27/ticket_gate/internal/adapter/handler"
	"github.com/srgjo27/ticket_gate/internal/adapter/notifier/smtp"
	"github.com/srgjo27/ticket_gate/internal/adapter/qrcode"
	"github.com/srgjo27/ticket_gate/internal/adapter/realtime"
	"github.com/srgjo27/ticket_gate/internal/adapter/repository/postgres"
	rediscache "github.com/srgjo27/ticket_gate/internal/adapter/repository/redis"
	"github.com/srgjo27/ticket_gate/internal/core/ports"
	"github.com/srgjo27/ticket_gate/internal/core/services"
	"github.com/srgjo27/ticket_gate/internal/platform/cache"
	"github.com/srgjo27/ticket_gate/internal/platform/config"
	"github.com/srgjo27/ticket_gate/internal/platform/database"
	"github.com/srgjo27/ticket_gate/internal/platform/metrics"
)

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func main() {
	cfg := config.Load(".env")
	slog.SetDefault(newLogger(cfg))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to db after retries", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	ticketRepo := postgres.NewTicketRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	countCache := rediscache.NewCountCache(redisClient)

	var publisher ports.EventPublisher
	if cfg.RealtimeEnabled() {
		publisher = realtime.NewPublisher(realtime.Config{
			PublishKey:   cfg.PubNubPublishKey,
			SubscribeKey: cfg.PubNubSubscribeKey,
			Channel:      cfg.PubNubChannel,
		})
		slog.Info("realtime feed enabled", "channel", cfg.PubNubChannel)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	paymentService := services.NewPaymentService(
		services.PaymentConfig{
			GatewaySecret: cfg.GatewayKeySecret,
			UnitPrice:     cfg.UnitPrice,
			Currency:      cfg.Currency,
			MaxPersons:    cfg.MaxPersons,
			BaseURL:       cfg.BaseURL,
		},
		razorpay.NewClient(cfg.GatewayKeyID, cfg.GatewayKeySecret),
		ticketRepo,
		qrcode.NewRenderer(0),
		smtp.NewMailer(smtp.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
			FromName: cfg.MailFromName,
		}),
		publisher,
		countCache,
	)
	ticketService := services.NewTicketService(ticketRepo, countCache, publisher)
	staffService := services.NewStaffService(staffRepo, auth.NewBcryptHasher(0), tokens)

	if cfg.AdminEmail != "" {
		if err := staffService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			slog.Error("failed to seed admin account", "email", cfg.AdminEmail, "error", err)
			os.Exit(1)
		}
	}

	var sandbox http.HandlerFunc
	if cfg.PaymentSandbox {
		sandbox = handler.SandboxSigner(cfg.GatewayKeySecret)
		slog.Warn("payment sandbox signer mounted at /api/test/sign")
	}

	router := handler.NewRouter(handler.RouterConfig{
		CORSOrigin: cfg.CORSOrigin,
		Tokens:     tokens,
		Payments:   handler.NewPaymentHandler(paymentService),
		Tickets:    handler.NewTicketHandler(ticketService),
		Staff:      handler.NewStaffHandler(staffService),
		Metrics:    metrics.Handler(),
		HealthChecks: map[string]handler.HealthCheck{
			"database": dbHealth(db),
			"redis":    redisHealth(redisClient),
		},
		PaymentSandbox: sandbox,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server startup failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}

func dbHealth(db *sql.DB) handler.HealthCheck {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return db.PingContext(ctx)
	}
}

func redisHealth(client *redis.Client) handler.HealthCheck {
	return func(ctx context.Context) error {
		return cache.HealthCheck(ctx, client)
	}
}
