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

	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/events"
	"github.com/SscSPs/finance_tracker/internal/handlers"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_tracker/internal/repositories/database/supabase"
	"github.com/SscSPs/finance_tracker/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Finance Tracker API
// @version 1.0
// @description Personal finance tracker: accounts, transactions, categories, dashboard and reports.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("backend", cfg.StorageBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	publisher := openPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Error closing event publisher", slog.String("error", err.Error()))
		}
	}()

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimiter := limiter.New(memory.NewStore(), rate)

	serviceContainer := services.NewServiceContainer(repos,
		services.WithHomeCurrency(cfg.HomeCurrency),
		services.WithLocale(cfg.Locale),
		services.WithPublisher(publisher),
	)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.AllowedOrigins()))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("backend", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// openRepositories builds the repository provider for the configured backend. The
// returned func releases whatever the backend holds open.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendSupabase:
		repos, err := supabase.NewRepositoryProvider(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Using Supabase storage backend")
		return repos, func() {}, nil
	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg, logger); err != nil {
			dbPool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
	}
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// openPublisher connects the configured event sinks: AMQP for downstream consumers and
// PostHog for product analytics. Events are dropped when neither is set.
func openPublisher(cfg *config.Config, logger *slog.Logger) events.Publisher {
	var sinks events.Fanout

	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL not set, broker events are disabled")
	} else if publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange); err != nil {
		logger.Warn("Failed to connect to AMQP, broker events are disabled", slog.String("error", err.Error()))
	} else {
		logger.Info("Publishing domain events", slog.String("exchange", cfg.AMQPExchange))
		sinks = append(sinks, publisher)
	}

	if cfg.PosthogAPIKey == "" {
		logger.Warn("Posthog API key is empty, analytics events are disabled")
	} else if publisher, err := events.NewPosthogPublisher(cfg.PosthogAPIKey, cfg.PosthogEndpoint); err != nil {
		logger.Warn("Failed to initialize posthog client", slog.String("error", err.Error()))
	} else {
		sinks = append(sinks, publisher)
	}

	if len(sinks) == 0 {
		return events.Nop{}
	}
	return sinks
}
