// Package sessiongate собирает приложение: подключения к хранилищам,
// миграции, сервисы, маршруты и жизненный цикл HTTP-сервера.
package sessiongate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/session-gate/internal/cache"
	"github.com/magabrotheeeer/session-gate/internal/config"
	"github.com/magabrotheeeer/session-gate/internal/lib/sl"
	"github.com/magabrotheeeer/session-gate/internal/migrations"
	"github.com/magabrotheeeer/session-gate/internal/rabbitmq"
	services "github.com/magabrotheeeer/session-gate/internal/services/auth"
	"github.com/magabrotheeeer/session-gate/internal/session"
	"github.com/magabrotheeeer/session-gate/internal/storage/repository"
)

// App — собранное приложение с открытыми подключениями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	cache     *cache.Cache
	publisher *rabbitmq.Publisher
}

// New инициализирует зависимости приложения: базу данных, миграции,
// Redis, RabbitMQ (опционально), сервис аутентификации и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(cacheRedis, cfg.Session.TTL)

	// Пустой rabbit_url отключает публикацию событий регистрации.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitURL, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		publisher, err = rabbitmq.NewPublisher(conn)
		if err != nil {
			return nil, err
		}
	}

	var events services.EventPublisher
	if publisher != nil {
		events = publisher
	}
	authService := services.NewAuthService(logger, db, sessions, events)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		cache:     cacheRedis,
		publisher: publisher,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// или ошибки сервера. Остановка контекста приводит к корректному
// завершению с таймаутом.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.publisher != nil {
			if cerr := a.publisher.Close(); cerr != nil {
				a.logger.Error("failed to close rabbitmq publisher", sl.Err(cerr))
			}
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", sl.Err(cerr))
		}
		return err
	}
}
