package session

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/session-gate/internal/cache"
)

// keyPrefix отделяет сессионные ключи от остальных данных в Redis.
const keyPrefix = "session:"

// DefaultTTL срок жизни сессии по умолчанию.
const DefaultTTL = 7 * 24 * time.Hour

// Store владеет связкой токен -> идентификатор пользователя.
// Никакой другой компонент эту связку не хранит.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore создает хранилище сессий поверх кэша с заданным сроком жизни.
// Нулевой ttl заменяется на DefaultTTL.
func NewStore(c *cache.Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: c, ttl: ttl}
}

// Create генерирует новый токен и сохраняет его для пользователя userUID.
// Срок жизни отсчитывается от момента создания.
func (s *Store) Create(ctx context.Context, userUID string) (string, error) {
	const op = "session.Create"

	key, err := GenerateKey()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, keyPrefix+key, userUID, s.ttl); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

// Resolve возвращает идентификатор пользователя по токену.
// Второй результат false, если токен неизвестен или истёк.
// Ошибка означает недоступность хранилища, а не отсутствие сессии.
func (s *Store) Resolve(ctx context.Context, token string) (string, bool, error) {
	const op = "session.Resolve"

	if token == "" {
		return "", false, nil
	}
	userUID, found, err := s.cache.Get(ctx, keyPrefix+token)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return userUID, found, nil
}

// Delete удаляет сессию. Операция идемпотентна: удаление
// несуществующего токена не считается ошибкой.
func (s *Store) Delete(ctx context.Context, token string) error {
	const op = "session.Delete"

	if token == "" {
		return nil
	}
	if err := s.cache.Del(ctx, keyPrefix+token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
