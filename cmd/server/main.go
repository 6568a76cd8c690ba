package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	analytics_service "postboard-service/internal/application/service/analytics"
	auth_service "postboard-service/internal/application/service/auth"
	post_service "postboard-service/internal/application/service/post"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/infrastructure/config"
	delivery_grpc "postboard-service/internal/infrastructure/inbound/grpc"
	http_server "postboard-service/internal/infrastructure/inbound/http"
	"postboard-service/internal/infrastructure/inbound/http/middleware"
	metrics_server "postboard-service/internal/infrastructure/inbound/metrics"
	"postboard-service/internal/infrastructure/logger"
	redis_cache "postboard-service/internal/infrastructure/outbound/cache/redis"
	nats_publisher "postboard-service/internal/infrastructure/outbound/messaging/nats"
	prometheus_metrics "postboard-service/internal/infrastructure/outbound/metrics/prometheus"
	like_postgres "postboard-service/internal/infrastructure/outbound/repository/like/postgres"
	post_postgres "postboard-service/internal/infrastructure/outbound/repository/post/postgres"
	"postboard-service/internal/infrastructure/outbound/repository/postgres"
	"postboard-service/internal/infrastructure/outbound/repository/postgres/migrations"
	user_postgres "postboard-service/internal/infrastructure/outbound/repository/user/postgres"
	"postboard-service/internal/infrastructure/outbound/security"
)

func main() {
	cfg := config.MustLoad()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	log := logger.New(cfg.Env)

	if cfg.Database.AutoMigrate {
		if err := migrate(cfg.Database, log); err != nil {
			log.Error("Failed to migrate database", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	log.Info("Connecting to Redis",
		slog.String("address", cfg.Redis.Address),
		slog.Int("port", cfg.Redis.Port),
		slog.Int("db", cfg.Redis.DB))
	redisClient, err := redis_cache.NewClient(cfg.Redis, log)
	if err != nil {
		log.Error("Failed to create Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		}
	}()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	metrics.SetServiceHealth(true)

	var publisher ports.EventPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err := nats_publisher.NewPublisher(cfg.NATS, log, metrics)
		if err != nil {
			log.Error("Failed to connect to NATS", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := natsPublisher.Close(); err != nil {
				log.Error("Failed to close NATS connection", slog.String("error", err.Error()))
			}
		}()
		publisher = natsPublisher
	} else {
		publisher = nats_publisher.NewNoopPublisher(log)
	}

	userCache := redis_cache.NewUserCache(redisClient, log)
	postCache := redis_cache.NewPostCache(redisClient, log)

	unitOfWork := postgres.NewPostgresUOW(pool, log, metrics)
	postRepo := post_postgres.NewPostRepository(pool, log, metrics)
	likeRepo := like_postgres.NewLikeRepository(pool, log, metrics)
	userRepo := user_postgres.NewUserRepository(pool, log, metrics)

	tokens := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := security.NewBcryptHasher(0)

	originalPostService := post_service.NewPostService(postRepo, unitOfWork, publisher, log, metrics)

	postService := post_service.NewPostServiceCacheDecorator(
		originalPostService,
		postCache,
		log,
		metrics,
	)
	analyticsService := analytics_service.NewAnalyticsService(likeRepo, log)
	authService := auth_service.NewAuthService(userRepo, userCache, tokens, hasher, log, metrics)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	go limiter.Run(ctx)

	router := http_server.NewRouter(http_server.Services{
		Posts:     postService,
		Analytics: analyticsService,
		Auth:      authService,
	}, limiter, log, metrics)
	httpServer := http_server.NewServer(router,
		cfg.HTTPServer.Address,
		cfg.HTTPServer.Port,
		cfg.HTTPServer.ReadTimeout,
		cfg.HTTPServer.WriteTimeout,
		log)

	grpcServer := delivery_grpc.NewServer(cfg.GRPCServer.Address, cfg.GRPCServer.Port, log, metrics)

	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	httpDone := make(chan bool, 1)
	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		httpDone <- true
	}()

	go func() {
		if err := grpcServer.Run(); err != nil {
			log.Error("gRPC server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)
	grpcServer.SetServing(false)
	cancel()

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := grpcServer.Shutdown(); err != nil {
		log.Error("gRPC server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-httpDone
	<-done
	<-metricsDone

	log.Info("Server exited")
}

func migrate(cfg config.Database, log ports.Logger) error {
	migrator, err := migrations.NewMigrator(cfg.MigrationsPath, cfg.DSN(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Warn("Failed to close migrator", slog.String("error", err.Error()))
		}
	}()
	return migrator.Up()
}
