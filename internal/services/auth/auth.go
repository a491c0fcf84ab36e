// Package services содержит логику бизнес-уровня для регистрации,
// аутентификации и одобрения пользователей, а также жизненный цикл
// сессионных токенов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/session-gate/internal/lib/password"
	"github.com/magabrotheeeer/session-gate/internal/lib/sl"
	"github.com/magabrotheeeer/session-gate/internal/models"
	"github.com/magabrotheeeer/session-gate/internal/storage/repository"
)

// Ошибки бизнес-уровня, проверяются вызывающим кодом через errors.Is.
var (
	// ErrEmptyField возвращается, если обязательное поле не заполнено.
	ErrEmptyField = errors.New("required field is empty")
	// ErrPasswordsDoNotMatch возвращается при несовпадении пароля и подтверждения.
	ErrPasswordsDoNotMatch = errors.New("passwords do not match")
	// ErrInvalidCredentials возвращается при неверном пароле.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает созданную запись.
	// Занятая электронная почта превращается в repository.ErrUserExists.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByEmail возвращает пользователя по электронной почте
	// или repository.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUID возвращает пользователя по UID или repository.ErrUserNotFound.
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)

	// ListUnapprovedUsers возвращает пользователей, ожидающих одобрения.
	ListUnapprovedUsers(ctx context.Context) ([]*models.User, error)

	// ApproveUser одобряет пользователя и возвращает обновлённую запись.
	ApproveUser(ctx context.Context, userUID string) (*models.User, error)
}

// SessionStore описывает контракт серверного хранилища сессий.
type SessionStore interface {
	Create(ctx context.Context, userUID string) (string, error)
	Resolve(ctx context.Context, token string) (string, bool, error)
	Delete(ctx context.Context, token string) error
}

// EventPublisher публикует событие регистрации нового пользователя.
type EventPublisher interface {
	UserRegistered(user *models.User) error
}

// AuthService отвечает за регистрацию, вход, выход и одобрение
// пользователей. Сессии создаются при входе и регистрации и
// удаляются при выходе.
type AuthService struct {
	log      *slog.Logger
	users    UserRepository
	sessions SessionStore
	events   EventPublisher // nil отключает публикацию событий
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(log *slog.Logger, users UserRepository, sessions SessionStore, events EventPublisher) *AuthService {
	return &AuthService{
		log:      log,
		users:    users,
		sessions: sessions,
		events:   events,
	}
}

// CreateAdminUser создает администратора: пользователь сразу одобрен
// и получает признак администратора. Сессия не создается — это
// административное заведение учётной записи, а не вход в систему.
func (s *AuthService) CreateAdminUser(ctx context.Context, name, email, rawPassword string) (*models.User, error) {
	const op = "auth.CreateAdminUser"

	if name == "" || email == "" || rawPassword == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyField)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		IsAdmin:      true,
		IsApproved:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Register создает нового пользователя и открывает для него сессию.
// Новые пользователи не одобрены: учётная запись существует, но доступ
// к защищённым разделам закрыт до одобрения администратором.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword, confirmPassword string) (*models.User, string, error) {
	const op = "auth.Register"

	if name == "" || email == "" || rawPassword == "" {
		return nil, "", fmt.Errorf("%s: %w", op, ErrEmptyField)
	}
	if rawPassword != confirmPassword {
		return nil, "", fmt.Errorf("%s: %w", op, ErrPasswordsDoNotMatch)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		IsAdmin:      false,
		IsApproved:   false,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.sessions.Create(ctx, user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if s.events != nil {
		if err := s.events.UserRegistered(user); err != nil {
			s.log.Error("failed to publish user.registered event", sl.Err(err))
		}
	}

	return user, token, nil
}

// Login проверяет учетные данные и открывает новую сессию.
// Непройденное одобрение входу не мешает: оно ограничивает маршруты,
// а не аутентификацию.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.sessions.Create(ctx, user.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Logout безусловно удаляет сессию. Операция идемпотентна:
// несуществующий или уже удалённый токен не считается ошибкой.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"

	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ResolveUser разрешает сессионный токен в пользователя. Отсутствующий,
// истёкший или повисший токен (пользователь удалён) дает nil без
// ошибки: такой запрос считается неаутентифицированным. Ошибка
// означает недоступность хранилища.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.ResolveUser"

	if token == "" {
		return nil, nil
	}

	userUID, found, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, nil
	}

	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ListUnapproved возвращает пользователей, ожидающих одобрения,
// для экрана администратора.
func (s *AuthService) ListUnapproved(ctx context.Context) ([]*models.User, error) {
	const op = "auth.ListUnapproved"

	users, err := s.users.ListUnapprovedUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Approve одобряет пользователя и возвращает обновлённую запись.
func (s *AuthService) Approve(ctx context.Context, userUID string) (*models.User, error) {
	const op = "auth.Approve"

	user, err := s.users.ApproveUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
