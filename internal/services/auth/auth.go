// Package auth содержит логику бизнес-уровня для работы с учётными записями
// и аутентификацией: регистрация, вход, разбор токена и операции
// над собственным профилем пользователя.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/user-auth-api/internal/lib/jwt"
	"github.com/magabrotheeeer/user-auth-api/internal/lib/password"
	"github.com/magabrotheeeer/user-auth-api/internal/metrics"
	"github.com/magabrotheeeer/user-auth-api/internal/models"
	"github.com/magabrotheeeer/user-auth-api/internal/storage"
)

// ErrInvalidCredentials возвращается при неверной паре username/password.
// Несуществующий пользователь и неверный пароль дают одну и ту же ошибку,
// чтобы по ответу нельзя было перечислять имена пользователей.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken возвращается, когда токен не проходит проверку
// или его subject больше не существует.
var ErrInvalidToken = errors.New("invalid or expired token")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, username, passwordHash string) (int, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по ID или ошибку, если не найден.
	GetUser(ctx context.Context, id int) (*models.User, error)

	// UpdateUser применяет частичное обновление и возвращает обновлённого пользователя.
	UpdateUser(ctx context.Context, id int, upd models.UserUpdate) (*models.User, error)

	// IncrementVisits увеличивает счётчик посещений и возвращает новое значение.
	IncrementVisits(ctx context.Context, id int) (int, error)

	// DeleteUser удаляет пользователя по ID.
	DeleteUser(ctx context.Context, id int) error
}

// Service отвечает за регистрацию, вход, разбор токена
// и операции над собственным профилем.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и возвращает его ID.
//
// Занятое имя пользователя приходит из хранилища как storage.ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, rawPassword string) (int, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, err
	}
	return s.users.CreateUser(ctx, username, hashed)
}

// Login проверяет пароль пользователя и выпускает токен доступа.
//
// Ошибка одинакова для неизвестного имени и неверного пароля;
// отказ хранилища возвращается как есть и наружу отображается как 500.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	metrics.TokensIssued.Inc()
	return token, nil
}

// Resolve проверяет токен, находит его subject и увеличивает счётчик
// посещений ровно на единицу. Возвращаемый снимок пользователя содержит
// значение счётчика после увеличения.
//
// Любая проблема с самим токеном или исчезнувший subject дают ErrInvalidToken;
// отказ хранилища возвращается как есть и наружу отображается как 500.
func (s *Service) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	visits, err := s.users.IncrementVisits(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Visits = visits
	metrics.RequestsResolved.Inc()
	return user, nil
}

// Update применяет частичное обновление профиля; новый пароль хэшируется
// до передачи в хранилище. Пустое обновление возвращает текущее состояние.
func (s *Service) Update(ctx context.Context, id int, newUsername, newPassword *string) (*models.User, error) {
	upd := models.UserUpdate{Username: newUsername}
	if newPassword != nil {
		hashed, err := password.GetHash(*newPassword)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hashed
	}
	if upd.IsEmpty() {
		return s.users.GetUser(ctx, id)
	}
	return s.users.UpdateUser(ctx, id, upd)
}

// Delete удаляет учётную запись пользователя.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.users.DeleteUser(ctx, id)
}
