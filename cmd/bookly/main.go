package main

import (
	"context"
	"errors"
	"flag"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/booklyhq/bookly/adapters/events"
	"github.com/booklyhq/bookly/adapters/postgres"
	"github.com/booklyhq/bookly/adapters/store"
	"github.com/booklyhq/bookly/adapters/tokenizer"
	"github.com/booklyhq/bookly/internal/config"
	"github.com/booklyhq/bookly/internal/obs"
	"github.com/booklyhq/bookly/service"
	"github.com/booklyhq/bookly/transport/http"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", os.Getenv("BOOKLY_CONFIG"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Fatal("failed to parse redis URL", zap.Error(err))
	}
	redisClient := redis.NewClient(opts)

	db, err := postgres.New(ctx, cfg.DB.AsPostgresConfig())
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{Client: redisClient},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		logger.Fatal("failed to create event publisher", zap.Error(err))
	}

	userRepo := postgres.NewUserRepo(db)
	bookRepo := postgres.NewBookRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)

	jwtTokenizer := tokenizer.NewJWTTokenizer([]byte(cfg.Auth.JWTSecret))

	// Blocklist entries must outlive the longest token class, otherwise a
	// revoked refresh token could come back to life.
	blocklist := store.NewRedisBlocklist(redisClient, cfg.Auth.RefreshTTL)

	eventPub := events.NewWatermillPublisher(publisher)

	authService := service.NewAuthService(jwtTokenizer, userRepo, blocklist, eventPub,
		logger, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	bookService := service.NewBookService(bookRepo)
	reviewService := service.NewReviewService(reviewRepo, bookRepo)

	router := http.SetupRouter(authService, bookService, reviewService)

	srv := &nethttp.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
