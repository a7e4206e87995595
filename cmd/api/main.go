package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/swiftmoveclean/ops-backend/internal/api/router"
	"github.com/swiftmoveclean/ops-backend/internal/auth"
	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/catalog"
	"github.com/swiftmoveclean/ops-backend/internal/chat"
	appconfig "github.com/swiftmoveclean/ops-backend/internal/config"
	"github.com/swiftmoveclean/ops-backend/internal/conversion"
	"github.com/swiftmoveclean/ops-backend/internal/http/handlers"
	"github.com/swiftmoveclean/ops-backend/internal/leads"
	"github.com/swiftmoveclean/ops-backend/internal/observability/metrics"
	"github.com/swiftmoveclean/ops-backend/internal/payments"
	"github.com/swiftmoveclean/ops-backend/internal/quotes"
	"github.com/swiftmoveclean/ops-backend/internal/tasks"
	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting swiftmove ops-backend API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to reach postgres", "error", err)
		os.Exit(1)
	}

	// The aggregate admin handlers run over database/sql.
	sqlDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database/sql handle", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	opsMetrics := metrics.NewOpsMetrics(reg)

	llm := buildLLM(ctx, cfg, logger)

	var transcript *chat.TranscriptStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, chat transcripts disabled", "error", err)
		} else {
			transcript = chat.NewTranscriptStore(redisClient)
			defer redisClient.Close()
		}
	}

	leadsRepo := leads.NewRepository(pool)
	bookingsRepo := bookings.NewRepository(pool)
	tasksRepo := tasks.NewRepository(pool)
	quotesRepo := quotes.NewRepository(pool)
	paymentsRepo := payments.NewRepository(pool)

	tasksSvc := tasks.NewService(tasksRepo, bookingsRepo, leadsRepo, opsMetrics, logger)
	bookingsSvc := bookings.NewService(bookingsRepo, tasksSvc, logger)
	paymentsSvc := payments.NewService(paymentsRepo, bookingsRepo, tasksSvc, tasksRepo, opsMetrics, logger)
	conversionSvc := conversion.NewService(pool, tasksRepo, opsMetrics, logger)
	chatSvc := chat.NewService(chat.NewStore(pool), transcript, llm, leadsRepo, opsMetrics, logger, chat.Options{
		ModelID:      cfg.BedrockModelID,
		MaxTokens:    int32(cfg.LLMMaxTokens),
		Timeout:      cfg.LLMTimeout,
		HistoryLimit: cfg.ChatHistoryLimit,
		CompanyPhone: cfg.CompanyPhone,
	})
	authSvc := auth.NewService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.AdminJWTSecret, cfg.AdminTokenTTL)

	routerCfg := &router.Config{
		Logger:            logger,
		LeadsHandler:      leads.NewHandler(leadsRepo, opsMetrics, logger),
		ChatHandler:       chat.NewHandler(chatSvc, logger),
		BookingsHandler:   bookings.NewHandler(bookingsSvc, logger),
		QuotesHandler:     quotes.NewHandler(quotesRepo, logger),
		CatalogHandler:    catalog.NewHandler(catalog.NewStore(pool), logger),
		TasksHandler:      tasks.NewHandler(tasksSvc, logger),
		PaymentsHandler:   payments.NewHandler(paymentsSvc, logger),
		ConversionHandler: conversion.NewHandler(conversionSvc, logger),
		AuthHandler:       auth.NewHandler(authSvc, logger),
		AdminDashboard:    handlers.NewAdminDashboardHandler(sqlDB, logger),
		AdminReset:        handlers.NewAdminResetHandler(sqlDB, logger),

		AdminAuthSecret:    cfg.AdminJWTSecret,
		AdminUsername:      cfg.AdminUsername,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: splitOrigins(cfg.CORSAllowedHosts),
		PublicRateLimit:    cfg.RateLimitPerSec,
		PublicRateBurst:    cfg.RateLimitBurst,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildLLM assembles the chatbot model chain: Bedrock primary, Gemini
// fallback when a key is configured. Without any provider the chat service
// degrades to its canned fallback reply.
func buildLLM(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) chat.LLMClient {
	var primary chat.LLMClient
	if cfg.BedrockModelID != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
		} else {
			primary = chat.NewBedrockLLMClient(bedrockruntime.NewFromConfig(awsCfg))
			logger.Info("bedrock chat model configured", "model", cfg.BedrockModelID)
		}
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := chat.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to init gemini client", "error", err)
		} else if primary != nil {
			return chat.NewFallbackLLMClient(primary, gemini, logger)
		} else {
			primary = gemini
			logger.Info("gemini chat model configured", "model", cfg.GeminiModelID)
		}
	}
	return primary
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
