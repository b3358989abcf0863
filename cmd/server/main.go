package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "libraryhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"libraryhub/internal/auth"
	"libraryhub/internal/config"
	"libraryhub/internal/db"
	"libraryhub/internal/db/query"
	"libraryhub/internal/handler"
	"libraryhub/internal/jobs"
	"libraryhub/internal/kv"
	"libraryhub/internal/logger"
	"libraryhub/internal/repository"
	"libraryhub/internal/router"
	"libraryhub/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Library Management API
// @version 1.0
// @description Library backend with users, books and loans behind role-based JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}

	log, logCloser, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("init logger")
	}
	defer logCloser.Close()
	if cfg.UsesDefaultSecret() {
		log.Warn().Msg("JWT_SECRET is not set, using the development default")
	}

	gormLevel := "warn"
	if cfg.IsDev() {
		gormLevel = "info"
	}
	gormDB, err := db.Open(db.Config{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		DSN:      cfg.Database.DSN,
		LogLevel: gormLevel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	kvClient := kv.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer kvClient.Close()
	if !kvClient.Enabled() {
		log.Warn().Msg("REDIS_ADDR is not set, logout will not revoke tokens")
	} else if err := kvClient.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, token denylist fails open")
	}

	store := repository.NewStore(gormDB, query.New(db.Dialect(cfg.Database.Driver)), cfg.BookListLimit)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	tokenStore := auth.NewTokenStore(kvClient)

	// Initialize services
	userService := service.NewUserService(store.Users())
	bookService := service.NewBookService(store.Books())
	issueBookService := service.NewIssueBookService(store)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService, jwtService, tokenStore, log)
	bookHandler := handler.NewBookHandler(bookService, log)
	issueBookHandler := handler.NewIssueBookHandler(issueBookService, log)
	healthHandler := handler.NewHealthHandler(store)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if err := router.Register(
		e,
		cfg,
		log,
		jwtService,
		tokenStore,
		userHandler,
		bookHandler,
		issueBookHandler,
		healthHandler,
	); err != nil {
		log.Fatal().Err(err).Msg("register routes")
	}

	scheduler, err := jobs.Schedule(cfg.OverdueCron, jobs.NewOverdueReporter(issueBookService, log), log)
	if err != nil {
		log.Fatal().Err(err).Msg("schedule overdue report")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info().Str("addr", addr).Str("mode", cfg.AppMode).Str("driver", cfg.Database.Driver).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
