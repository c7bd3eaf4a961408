package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/HiralThadeshwar31/aidar-server/internal/config"
	"github.com/HiralThadeshwar31/aidar-server/internal/domain/clinical"
	"github.com/HiralThadeshwar31/aidar-server/internal/domain/identity"
	"github.com/HiralThadeshwar31/aidar-server/internal/platform/auth"
	"github.com/HiralThadeshwar31/aidar-server/internal/platform/db"
	"github.com/HiralThadeshwar31/aidar-server/internal/platform/middleware"
	"github.com/HiralThadeshwar31/aidar-server/internal/platform/session"
	"github.com/HiralThadeshwar31/aidar-server/migrations"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "aidar-server",
		Short: "Patient records API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// migrationFiles picks the migration source. An explicit --dir must exist.
// Otherwise MIGRATIONS_DIR is used when present on disk, and the migrations
// embedded in the binary when it is not.
func migrationFiles(flagDir, defaultDir string) (fs.FS, error) {
	if flagDir != "" {
		info, err := os.Stat(flagDir)
		if err != nil {
			return nil, fmt.Errorf("migrations directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("migrations directory %s is not a directory", flagDir)
		}
		return os.DirFS(flagDir), nil
	}
	if defaultDir != "" {
		if info, err := os.Stat(defaultDir); err == nil && info.IsDir() {
			return os.DirFS(defaultDir), nil
		}
	}
	return migrations.FS, nil
}

func newMigrator(ctx context.Context, cmd *cobra.Command) (*db.Migrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	dir, _ := cmd.Flags().GetString("dir")
	files, err := migrationFiles(dir, cfg.MigrationsDir)
	if err != nil {
		return nil, nil, err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	return db.NewMigrator(pool, files), pool.Close, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			migrator, closePool, err := newMigrator(ctx, cmd)
			if err != nil {
				return err
			}
			defer closePool()

			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (default MIGRATIONS_DIR, then embedded)")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			migrator, closePool, err := newMigrator(ctx, cmd)
			if err != nil {
				return err
			}
			defer closePool()

			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			printStatus(cmd.OutOrStdout(), statuses)
			return nil
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory (default MIGRATIONS_DIR, then embedded)")
	cmd.AddCommand(statusCmd)

	return cmd
}

func printStatus(w io.Writer, statuses []db.MigrationStatus) {
	fmt.Fprintf(w, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(w, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status := "pending"
		appliedAt := ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(w, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// newSessionStore builds the store named by SESSION_STORE. The returned
// cleanup func releases any client the store owns.
func newSessionStore(ctx context.Context, cfg *config.Config, q db.Querier) (session.Store, func(), error) {
	noop := func() {}
	switch cfg.SessionStore {
	case config.StorePostgres:
		return session.NewPostgresStore(q, cfg.SessionTTL), noop, nil
	case config.StoreRedis:
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client, cfg.SessionTTL), func() { client.Close() }, nil
	case config.StoreCookie:
		store, err := session.NewCookieStore([]byte(cfg.SessionSecret), cfg.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case config.StoreMemory:
		return session.NewMemoryStore(cfg.SessionTTL), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
}

// newRouter wires middleware, services and routes. Database-backed
// repositories run against q.
func newRouter(cfg *config.Config, logger zerolog.Logger, q db.Querier, store session.Store) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	sessions := session.NewManager(store, session.CookieConfig{
		Name:   cfg.CookieName,
		Secure: cfg.CookieSecure,
		TTL:    cfg.SessionTTL,
	})

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(auth.LoadSession(sessions, logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// Services
	identitySvc := identity.NewService(identity.NewUserRepo(q), identity.NewPatientRepo(q), cfg.BcryptCost)
	clinicalSvc := clinical.NewService(clinical.NewVitalsRepo(q), clinical.NewNoteRepo(q))

	root := e.Group("")
	identity.NewAccountHandler(identitySvc, sessions).RegisterRoutes(root,
		middleware.RateLimit(middleware.DefaultRateLimitConfig()))

	records := e.Group("")
	if cfg.AuthRequired {
		records.Use(auth.RequireSession())
	}
	identity.NewHandler(identitySvc).RegisterRoutes(records)
	clinical.NewHandler(clinicalSvc).RegisterRoutes(records)

	return e
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := newLogger(cfg.Env)
	if !cfg.AuthRequired {
		logger.Warn().Msg("AUTH_REQUIRED is false: record endpoints accept anonymous requests")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	store, closeStore, err := newSessionStore(ctx, cfg, pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session store")
	}
	defer closeStore()
	logger.Info().Str("store", cfg.SessionStore).Dur("ttl", cfg.SessionTTL).Msg("session store ready")

	e := newRouter(cfg, logger, pool, store)

	// DB health check endpoint
	e.GET("/health/db", db.HealthHandler(pool))

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
