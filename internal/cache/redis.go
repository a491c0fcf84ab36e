// Package cache оборачивает клиент Redis и предоставляет
// хранилище ключ-значение с истечением срока жизни записей.
// Используется как серверное хранилище сессионных токенов.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/session-gate/internal/config"
)

// Cache инкапсулирует подключение к Redis.
type Cache struct {
	Db *redis.Client
}

// InitServer создает клиент Redis с ограниченными таймаутами
// и проверяет доступность сервера через ping.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get возвращает значение по ключу. Второй результат false,
// если ключ отсутствует или его срок жизни истёк.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Set сохраняет значение по ключу с абсолютным сроком жизни expiration.
func (c *Cache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	const op = "cache.Set"
	if err := c.Db.Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Del удаляет ключ. Отсутствие ключа не считается ошибкой.
func (c *Cache) Del(ctx context.Context, key string) error {
	const op = "cache.Del"
	if err := c.Db.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
