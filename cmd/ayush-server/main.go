package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ayush-fhir/api/internal/config"
	"github.com/ayush-fhir/api/internal/domain/audit"
	"github.com/ayush-fhir/api/internal/domain/consent"
	"github.com/ayush-fhir/api/internal/domain/problemlist"
	"github.com/ayush-fhir/api/internal/domain/semantics"
	"github.com/ayush-fhir/api/internal/domain/stats"
	"github.com/ayush-fhir/api/internal/domain/terminology"
	"github.com/ayush-fhir/api/internal/domain/who"
	"github.com/ayush-fhir/api/internal/platform/auth"
	"github.com/ayush-fhir/api/internal/platform/db"
	"github.com/ayush-fhir/api/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ayush-server",
		Short: "NAMASTE / ICD-11 terminology crosswalk server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the crosswalk API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Audit store: Postgres when configured, in-memory otherwise.
	var pool *pgxpool.Pool
	var auditRepo audit.Repository = audit.NewMemoryRepository()
	if cfg.DatabaseURL != "" {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		pgRepo := audit.NewPGRepository(pool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare audit schema")
		}
		auditRepo = pgRepo
		logger.Info().Msg("audit trail backed by postgres")
	} else {
		logger.Info().Msg("no DATABASE_URL set; audit trail kept in memory")
	}

	// Core services
	index := terminology.NewIndex()
	whoClient := who.NewClient(cfg.WHOClientID, cfg.WHOClientSecret)
	termSvc := terminology.NewService(index, whoClient)
	auditSvc := audit.NewService(auditRepo, logger)
	problemSvc := problemlist.NewService(index, auditSvc)
	consentEngine := consent.NewEngine()
	issuer := auth.NewTokenIssuer(cfg.AuthSecret, time.Hour)

	// Preload the default dataset so the service is usable immediately.
	if cfg.DataFile != "" {
		if content, err := os.ReadFile(cfg.DataFile); err == nil {
			count, err := terminology.IngestCSV(index, content)
			if err != nil {
				logger.Warn().Err(err).Str("file", cfg.DataFile).Msg("default dataset failed validation")
			} else {
				logger.Info().Int("terms", count).Str("file", cfg.DataFile).Msg("loaded default dataset")
			}
		} else {
			logger.Warn().Err(err).Str("file", cfg.DataFile).Msg("default dataset not found")
		}
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"version": version,
			"terms":   index.Len(),
		})
	})

	// Route groups: open endpoints and bearer-protected write endpoints.
	open := e.Group("")
	protected := e.Group("", auth.RequireAuth(issuer))

	auth.NewHandler(issuer).RegisterRoutes(open)
	terminology.NewHandler(termSvc, cfg.DataFile).RegisterRoutes(open)
	who.NewHandler(whoClient).RegisterRoutes(open)
	semantics.NewHandler().RegisterRoutes(open)
	stats.NewHandler(index).RegisterRoutes(open)
	audit.NewHandler(auditSvc).RegisterRoutes(open, protected)
	consent.NewHandler(consentEngine).RegisterRoutes(protected)
	problemlist.NewHandler(problemSvc).RegisterRoutes(protected)

	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
