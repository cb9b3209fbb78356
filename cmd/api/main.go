package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinic-management/clinic-service/internal/auth"
	"github.com/clinic-management/clinic-service/internal/config"
	"github.com/clinic-management/clinic-service/internal/db"
	apphttp "github.com/clinic-management/clinic-service/internal/http"
	"github.com/clinic-management/clinic-service/internal/logger"
	"github.com/clinic-management/clinic-service/internal/messaging"
	"github.com/clinic-management/clinic-service/internal/telemetry"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("clinic-service stopped")
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		provider, err := telemetry.InitProvider(ctx, telemetry.FromConfig(cfg.Telemetry), log.WithComponent("telemetry"))
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("Telemetry shutdown failed")
			}
		}()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	repos, sqlDB, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	var healthCheck func(context.Context) error
	if sqlDB != nil {
		defer sqlDB.Close()
		healthCheck = func(ctx context.Context) error { return db.Ping(ctx, sqlDB) }
	}

	var publisher messaging.PublisherInterface = messaging.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		p, err := messaging.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log.WithComponent("messaging"))
		if err != nil {
			// events are best effort; keep serving without them
			log.WithError(err).Warn("RabbitMQ unavailable, events disabled")
		} else {
			publisher = p
			defer p.Close()
		}
	}

	guard, login, err := setupAuth(cfg.Auth, metrics, log.WithComponent("auth"))
	if err != nil {
		return err
	}

	handler := apphttp.SetupRouter(apphttp.Dependencies{
		Repositories:   repos,
		Publisher:      publisher,
		Metrics:        metrics,
		Guard:          guard,
		Login:          login,
		HealthCheck:    healthCheck,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Log:            log.WithComponent("http"),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"storage": cfg.Storage.Driver,
		}).Info("clinic-service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

// openStorage returns the repositories for the configured driver.
// The *sql.DB is nil for the memory driver.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (apphttp.Repositories, *sql.DB, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Info("Using in-memory storage")
		return apphttp.NewMemoryRepositories(), nil, nil
	}

	dbLog := log.WithComponent("db")
	sqlDB, err := db.Connect(ctx, cfg.Database, dbLog)
	if err != nil {
		return apphttp.Repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gdb, err := db.OpenGorm(sqlDB, dbLog)
	if err != nil {
		sqlDB.Close()
		return apphttp.Repositories{}, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			sqlDB.Close()
			return apphttp.Repositories{}, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		dbLog.Info("Schema migrated")
	}

	return apphttp.NewGormRepositories(gdb), sqlDB, nil
}

func setupAuth(cfg config.AuthConfig, metrics *telemetry.Metrics, log logrus.FieldLogger) (*auth.Guard, *auth.LoginHandler, error) {
	creds, err := auth.NewCredentialStore(cfg.Users, bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load auth users: %w", err)
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.Issuer, cfg.TokenTTL)

	var perms auth.Permissions
	if cfg.Enabled {
		perms, err = auth.LoadPermissions(cfg.PermissionsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load permissions: %w", err)
		}
		log.WithField("roles", len(perms)).Info("Authentication enabled")
	}

	guard := auth.NewGuard(cfg.Enabled, tokens, perms, metrics, log)
	login := auth.NewLoginHandler(creds, tokens, metrics, log)
	return guard, login, nil
}
