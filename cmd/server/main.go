package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do/v2"
	"github.com/yukikurage/list-task-api/internal/config"
	"github.com/yukikurage/list-task-api/internal/database"
	"github.com/yukikurage/list-task-api/internal/handlers"
	"github.com/yukikurage/list-task-api/internal/logging"
	"github.com/yukikurage/list-task-api/internal/middleware"
	"github.com/yukikurage/list-task-api/internal/repository"
	"github.com/yukikurage/list-task-api/internal/services"
)

const (
	serverShutdownTimeout = 15 * time.Second
	connectTimeout        = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// backend is the selected store plus whatever closes its connection.
type backend struct {
	store *repository.Store
	close func(ctx context.Context) error
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	registerDependencies(injector, cfg, logger)

	// Resolving the router wires the whole graph, including the store connection.
	router, err := do.Invoke[*gin.Engine](injector)
	if err != nil {
		return fmt.Errorf("resolving router: %w", err)
	}
	be := do.MustInvoke[*backend](injector)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := be.close(ctx); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", server.Addr), slog.String("driver", cfg.DBDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	<-serverErr

	logger.Info("shutdown complete")
	return nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*backend, error) {
		return openBackend(cfg, logger)
	})

	do.Provide(injector, func(i do.Injector) (*repository.Store, error) {
		be, err := do.Invoke[*backend](i)
		if err != nil {
			return nil, err
		}
		return repository.WithTimeout(be.store, cfg.StoreTimeout), nil
	})

	do.Provide(injector, func(i do.Injector) (*services.AccountService, error) {
		return services.NewAccountService(do.MustInvoke[*repository.Store](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*services.ListService, error) {
		return services.NewListService(do.MustInvoke[*repository.Store](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*services.TaskService, error) {
		return services.NewTaskService(do.MustInvoke[*repository.Store](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*services.SuggestionService, error) {
		// AI suggestions stay disabled without an API key
		var ai *services.AIService
		if cfg.OpenAIAPIKey != "" {
			ai = services.NewOpenAIService(cfg.OpenAIAPIKey, services.BreakerSettings{
				MaxFailures: cfg.AIBreakerMaxFailures,
				Timeout:     cfg.AIBreakerTimeout,
			}, logger)
		}
		return services.NewSuggestionService(do.MustInvoke[*repository.Store](i), ai), nil
	})

	do.Provide(injector, func(i do.Injector) (handlers.Handlers, error) {
		return handlers.Handlers{
			Accounts: handlers.NewAccountHandler(do.MustInvoke[*services.AccountService](i)),
			Lists:    handlers.NewListHandler(do.MustInvoke[*services.ListService](i)),
			Tasks: handlers.NewTaskHandler(
				do.MustInvoke[*services.TaskService](i),
				do.MustInvoke[*services.SuggestionService](i),
			),
		}, nil
	})

	do.Provide(injector, func(i do.Injector) (*gin.Engine, error) {
		h, err := do.Invoke[handlers.Handlers](i)
		if err != nil {
			return nil, err
		}
		r := gin.New()
		r.Use(gin.Recovery(), middleware.RequestLogger(logger))
		handlers.RegisterRoutes(r, h)
		return r, nil
	})
}

// openBackend connects to the configured driver and prepares its schema.
func openBackend(cfg *config.Config, logger *slog.Logger) (*backend, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return &backend{
			store: repository.NewMemoryStore(),
			close: func(context.Context) error { return nil },
		}, nil

	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		client, db, err := database.ConnectMongo(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &backend{
			store: repository.NewMongoStore(db),
			close: client.Disconnect,
		}, nil

	default:
		db, err := database.Connect(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, logger); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		return &backend{
			store: repository.NewGormStore(db),
			close: func(context.Context) error { return sqlDB.Close() },
		}, nil
	}
}
