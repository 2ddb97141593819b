package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clindoc/clindoc/internal/config"
	"github.com/clindoc/clindoc/internal/domain/normalization"
	"github.com/clindoc/clindoc/internal/domain/terminology"
	"github.com/clindoc/clindoc/internal/platform/db"
	"github.com/clindoc/clindoc/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clindoc-server",
		Short: "Clinical term normalization API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the normalization API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage reference catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Load and validate the reference catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			store, cleanup, err := buildStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("catalog validation failed: %w", err)
			}
			defer cleanup()

			diagnoses, drugs, procedures := store.Counts()
			fmt.Printf("Catalogs OK: %d CID-10 diagnoses, %d DCB drugs, %d TUSS procedures\n",
				diagnoses, drugs, procedures)
			return nil
		},
	})

	return cmd
}

// buildStore loads the catalogs from the configured source and builds
// the indexed store. The returned cleanup closes the database pool when
// one was opened.
func buildStore(ctx context.Context, cfg *config.Config) (*terminology.Store, func(), error) {
	cleanup := func() {}

	var loader terminology.Loader
	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connect to database: %w", err)
		}
		cleanup = pool.Close
		loader = terminology.NewPGLoader(pool)
	default:
		loader = terminology.NewFileLoader(cfg.CatalogDir)
	}

	catalogs, err := loader.Load(ctx)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	store, err := terminology.NewStore(*catalogs)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return store, cleanup, nil
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

	// Catalogs — loaded once before the server accepts traffic; the
	// store is read-only from here on.
	ctx := context.Background()
	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load reference catalogs")
	}
	defer cleanup()

	diagnoses, drugs, procedures := store.Counts()
	logger.Info().
		Str("source", cfg.CatalogSource).
		Int("cid10", diagnoses).
		Int("dcb", drugs).
		Int("tuss", procedures).
		Msg("reference catalogs loaded")

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
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Terminology domain
	termSvc := terminology.NewService(store)
	termHandler := terminology.NewHandler(termSvc)
	termHandler.RegisterRoutes(apiV1)

	// Normalization domain
	normSvc := normalization.NewService(store, cfg.TUSSMinConfidence)
	normHandler := normalization.NewHandler(normSvc)
	normHandler.RegisterRoutes(apiV1)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	return nil
}
