package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/user-auth-api/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
//
// Имя пользователя проверяется на занятость до вставки, чтобы вернуть
// ErrUsernameTaken вместо сырого нарушения ограничения; уникальный индекс
// базы остаётся страховкой при одновременной регистрации.
func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (int, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	if err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return 0, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
	}

	var newID int
	query := `INSERT INTO users (username, password, visits)
			  VALUES ($1, $2, 0)
			  RETURNING id;`
	if err = tx.QueryRowContext(ctx, query, username, passwordHash).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password, visits
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Visits); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password, visits
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Visits); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUser применяет частичное обновление и возвращает обновлённого пользователя.
//
// Набор обновляемых колонок фиксирован (username, password); незаданные поля
// сохраняют прежнее значение через COALESCE. При смене имени занятость
// проверяется среди всех остальных строк внутри той же транзакции.
func (s *Storage) UpdateUser(ctx context.Context, id int, upd models.UserUpdate) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if upd.Username != nil {
		var taken bool
		if err = tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)`,
			*upd.Username, id).Scan(&taken); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
	}

	u := &models.User{}
	query := `UPDATE users
			  SET username = COALESCE($1, username),
			      password = COALESCE($2, password)
			  WHERE id = $3
			  RETURNING id, username, password, visits;`
	row := tx.QueryRowContext(ctx, query, upd.Username, upd.PasswordHash, id)
	if err = row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Visits); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// IncrementVisits атомарно увеличивает счётчик посещений на единицу
// и возвращает новое значение счётчика.
func (s *Storage) IncrementVisits(ctx context.Context, id int) (int, error) {
	const op = "storage.IncrementVisits"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var visits int
	query := `UPDATE users
			  SET visits = visits + 1
			  WHERE id = $1
			  RETURNING visits;`
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&visits); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return visits, nil
}

// DeleteUser удаляет пользователя по ID. Удаление несуществующего
// пользователя не является ошибкой.
func (s *Storage) DeleteUser(ctx context.Context, id int) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
