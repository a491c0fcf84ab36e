// Утилита заведения учётной записи администратора. Администратор
// создается сразу одобренным, сессия при этом не открывается.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/magabrotheeeer/session-gate/internal/config"
	"github.com/magabrotheeeer/session-gate/internal/migrations"
	services "github.com/magabrotheeeer/session-gate/internal/services/auth"
	"github.com/magabrotheeeer/session-gate/internal/storage/repository"
)

// AdminEnv — учетные данные администратора из переменных окружения.
type AdminEnv struct {
	Name     string `env:"ADMIN_NAME" env-required:"true"`
	Email    string `env:"ADMIN_EMAIL" env-required:"true"`
	Password string `env:"ADMIN_PASSWORD" env-required:"true"`
}

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var admin AdminEnv
	if err := cleanenv.ReadEnv(&admin); err != nil {
		logger.Error("failed to read admin credentials from environment", slog.Any("err", err))
		os.Exit(1)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", slog.Any("err", err))
		os.Exit(1)
	}

	authService := services.NewAuthService(logger, db, nil, nil)

	user, err := authService.CreateAdminUser(context.Background(), admin.Name, admin.Email, admin.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			logger.Info("admin with that email already exists", slog.String("email", admin.Email))
			return
		}
		logger.Error("failed to create admin", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("admin created",
		slog.String("user_uid", user.UID),
		slog.String("email", user.Email))
}
