// Package storage реализует хранилище данных на основе PostgreSQL
// для управления учётными записями пользователей. Предоставляет методы
// создания, чтения, обновления и удаления записей, а также атомарное
// увеличение счётчика посещений.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Обработчики сопоставляют их с HTTP-статусами,
// все прочие ошибки наружу не раскрываются.
var (
	// ErrUserNotFound возвращается, когда пользователь отсутствует в базе.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken возвращается при нарушении уникальности имени пользователя.
	ErrUsernameTaken = errors.New("username already taken")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений с базой данных.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// isUniqueViolation распознаёт нарушение уникального ограничения PostgreSQL (код 23505).
// Ограничение в базе — авторитетная защита от гонки двух одновременных вставок.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
