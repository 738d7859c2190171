package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает данные, хранящиеся в токене: subject (имя пользователя)
// и стандартные поля срока жизни.
type Claims struct {
	jwt.RegisteredClaims // Встроенные стандартные claims (Subject, ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создает токен с username в качестве subject, подписывая его
// секретным ключом. Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(username string) (string, error) {
	const op = "jwt.GenerateToken"
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(j.method, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит токен, проверяет его подпись, алгоритм и срок жизни,
// возвращает Claims с данными, если токен корректен.
//
// Алгоритм проверки зафиксирован тем, что был выбран при создании Maker:
// токен, подписанный другим методом, отклоняется.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{j.method.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%s: token has no subject", op)
	}
	return claims, nil
}
