package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/SscSPs/purchase_converter_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/purchase_converter_app/internal/adapters/treasury"
	portsrepo "github.com/SscSPs/purchase_converter_app/internal/core/ports/repositories"
	"github.com/SscSPs/purchase_converter_app/internal/core/services"
	"github.com/SscSPs/purchase_converter_app/internal/handlers"
	"github.com/SscSPs/purchase_converter_app/internal/middleware"
	"github.com/SscSPs/purchase_converter_app/internal/platform/config"
	"github.com/SscSPs/purchase_converter_app/internal/platform/keys"
	"github.com/SscSPs/purchase_converter_app/pkg/database"
	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Purchase Converter API
// @version 1.0
// @description Records USD purchases and converts them into a target country's currency using Treasury exchange rates.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Signing key pair: loaded from PEM when configured, generated otherwise.
	keyProvider, err := keys.NewProvider(cfg.RSAPrivateKeyPath)
	if err != nil {
		logger.Error("Failed to initialize signing keys", slog.String("error", err.Error()))
		os.Exit(1)
	}

	keyFunc, err := buildKeyFunc(cfg, keyProvider)
	if err != nil {
		logger.Error("Failed to initialize token verification keys", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateSource := treasury.NewClient(
		&http.Client{Timeout: 10 * time.Second},
		cfg.TreasuryScheme,
		cfg.TreasuryHost,
		cfg.TreasuryPath,
	)

	repos := portsrepo.RepositoryProvider{
		PurchaseRepo: pgsql.NewPurchaseRepository(dbPool),
	}

	serviceContainer, err := services.NewServiceContainer(cfg, repos, rateSource, keyProvider)
	if err != nil {
		logger.Error("Failed to initialize services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, keyProvider, keyFunc)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildKeyFunc resolves the verification key set. When JWKS_URL is configured
// the keys are fetched (and refreshed) from that endpoint; otherwise the local
// signing key's own JWKS document is used, so issuance and verification stay
// consistent in a single-process deployment.
func buildKeyFunc(cfg *config.Config, keyProvider *keys.Provider) (jwt.Keyfunc, error) {
	if cfg.JWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshRateLimit:  time.Minute,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, err
		}
		return jwks.Keyfunc, nil
	}

	doc, err := keyProvider.JWKS()
	if err != nil {
		return nil, err
	}
	jwks, err := keyfunc.NewJSON(json.RawMessage(doc))
	if err != nil {
		return nil, err
	}
	return jwks.Keyfunc, nil
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

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

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
