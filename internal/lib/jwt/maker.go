// Package jwt реализует выпуск и проверку подписанных токенов доступа.
//
// Maker определяет интерфейс для создания и проверки токенов с именем пользователя
// в качестве subject. MakerImpl — конкретная реализация с секретным ключом,
// фиксированным алгоритмом подписи и сроком жизни токена.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Maker описывает интерфейс для генерации и парсинга токенов.
type Maker interface {
	// GenerateToken выпускает токен с указанным username в качестве subject.
	GenerateToken(username string) (string, error)
	// ParseToken проверяет подпись и срок жизни токена, возвращает его claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа,
// алгоритма подписи и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string            // Секретный ключ для подписи токенов.
	method    jwt.SigningMethod // Алгоритм подписи, выбирается один раз при старте.
	tokenTTL  time.Duration     // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl.
//
// Имя алгоритма берётся из конфигурации (например "HS256"); поддерживаются
// только HMAC-алгоритмы, так как подпись выполняется общим секретом процесса.
func NewMaker(secretKey, algorithm string, ttl time.Duration) (*MakerImpl, error) {
	const op = "jwt.NewMaker"
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("%s: unknown signing algorithm %q", op, algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%s: signing algorithm %q is not an HMAC method", op, algorithm)
	}
	return &MakerImpl{
		secretKey: secretKey,
		method:    method,
		tokenTTL:  ttl,
	}, nil
}
