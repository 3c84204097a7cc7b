package bootstrap

import (
	"context"
	"fmt"

	"github.com/ZertGraf/team-feedback/internal/api"
	"github.com/ZertGraf/team-feedback/internal/api/handler"
	"github.com/ZertGraf/team-feedback/internal/moderation"
	"github.com/ZertGraf/team-feedback/internal/notify"
	"github.com/ZertGraf/team-feedback/internal/pkg/config"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/internal/pkg/postgres"
	"github.com/ZertGraf/team-feedback/internal/pkg/sqlite"
	"github.com/ZertGraf/team-feedback/internal/repository"
	"github.com/ZertGraf/team-feedback/internal/service"
)

type Application struct {
	Config *config.Config
	Logger *logger.Logger

	// exactly one backend is set, depending on STORAGE_DRIVER
	Postgres *postgres.Connection
	Migrator *postgres.Migrator
	SQLite   *sqlite.Connection

	Store repository.Store

	MemberService       *service.MemberService
	FeedbackService     *service.FeedbackService
	NotificationService *service.NotificationService

	HTTPServer *api.HTTPServer
}

func New() (*Application, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.LogAddSource,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &Application{
		Config: cfg,
		Logger: log,
	}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		app.Postgres, err = postgres.New(log, &postgres.Config{
			Host:              cfg.DatabaseHost,
			Port:              cfg.DatabasePort,
			Username:          cfg.DatabaseUser,
			Password:          cfg.DatabasePassword,
			Database:          cfg.DatabaseName,
			Schema:            cfg.DatabaseSchema,
			SSLMode:           cfg.DatabaseSSLMode,
			MaxConns:          cfg.DatabaseMaxConns,
			MinConns:          cfg.DatabaseMinConns,
			MaxConnLifetime:   cfg.DatabaseMaxConnLifetime,
			MaxConnIdleTime:   cfg.DatabaseMaxConnIdleTime,
			HealthCheckPeriod: cfg.DatabaseHealthCheckPeriod,
			ConnectTimeout:    cfg.DatabaseConnectTimeout,
			AcquireTimeout:    cfg.DatabaseAcquireTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres connection: %w", err)
		}

	case config.StorageSQLite:
		app.SQLite, err = sqlite.New(log, &sqlite.Config{
			Path:        cfg.SQLitePath,
			BusyTimeout: cfg.SQLiteBusyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite connection: %w", err)
		}
	}

	return app, nil
}

func (app *Application) Init(ctx context.Context) error {
	app.Logger.Info("initializing application", "storage_driver", app.Config.StorageDriver)

	blobs, err := app.openStorage(ctx)
	if err != nil {
		return err
	}
	app.Store = repository.NewJSONStore(blobs)

	app.NotificationService = service.NewNotificationService(app.Store, notify.NewLogNotifier(app.Logger), app.Logger)
	app.FeedbackService = service.NewFeedbackService(
		app.Store,
		moderation.NewBlocklist(moderation.DefaultTerms, app.Config.ModerationMinLength),
		app.NotificationService,
		app.Logger,
	)
	app.MemberService = service.NewMemberService(
		app.Store,
		app.FeedbackService,
		app.Logger,
		service.WithRenameCascade(app.Config.FeedbackRenameCascade),
	)

	serverConfig := &api.ServerConfig{
		Host:         app.Config.ServerHost,
		Port:         app.Config.ServerPort,
		ReadTimeout:  app.Config.ServerReadTimeout,
		WriteTimeout: app.Config.ServerWriteTimeout,
		IdleTimeout:  app.Config.ServerIdleTimeout,
	}

	app.HTTPServer = api.NewHTTPServer(serverConfig, api.Handlers{
		Members:       handler.NewMemberHandler(app.MemberService, app.FeedbackService, app.Logger),
		Feedback:      handler.NewFeedbackHandler(app.FeedbackService, app.Logger),
		Notifications: handler.NewNotificationHandler(app.NotificationService, app.Logger),
		Viewers:       app.MemberService,
		Health:        app.Health,
	}, app.Logger)

	if err := app.HTTPServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start http server: %w", err)
	}

	app.Logger.Info("application initialized successfully")
	return nil
}

func (app *Application) openStorage(ctx context.Context) (repository.Blobs, error) {
	switch {
	case app.Postgres != nil:
		if err := app.Postgres.Connect(ctx); err != nil {
			return nil, fmt.Errorf("postgres connection failed: %w", err)
		}

		app.Migrator = postgres.NewMigrator(app.Postgres.Pool(), &postgres.MigrationConfig{
			Timeout:   app.Config.DatabaseMigrationTimeout,
			TableName: app.Config.DatabaseMigrationTable,
			Enabled:   app.Config.DatabaseMigrationEnabled,
		}, app.Logger)

		if err := app.Migrator.RunMigrations(ctx); err != nil {
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		return repository.NewPostgresBlobs(app.Postgres.Pool(), app.Logger), nil

	case app.SQLite != nil:
		if err := app.SQLite.Connect(ctx); err != nil {
			return nil, fmt.Errorf("sqlite connection failed: %w", err)
		}
		return repository.NewSQLiteBlobs(app.SQLite.DB(), app.Logger), nil

	default:
		app.Logger.Warn("using in-memory storage, data is lost on restart")
		return repository.NewMemoryBlobs(), nil
	}
}

func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("shutting down application")

	if app.HTTPServer != nil {
		if err := app.HTTPServer.Stop(ctx); err != nil {
			app.Logger.Error("error stopping http server", "error", err)
		}
	}

	if app.Postgres != nil {
		app.Postgres.Close()
	}
	if app.SQLite != nil {
		app.SQLite.Close()
	}

	app.Logger.Info("application shutdown completed")
	return nil
}

func (app *Application) Health(ctx context.Context) error {
	if app.Postgres != nil {
		if err := app.Postgres.Health(ctx); err != nil {
			return fmt.Errorf("postgres health check failed: %w", err)
		}
		if err := app.Migrator.Health(ctx); err != nil {
			return fmt.Errorf("migrator health check failed: %w", err)
		}
	}
	if app.SQLite != nil {
		if err := app.SQLite.Health(ctx); err != nil {
			return fmt.Errorf("sqlite health check failed: %w", err)
		}
	}
	return nil
}
