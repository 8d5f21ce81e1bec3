// Package jwtauth выпуск и проверка токенов вызывающей стороны {id, isAdmin}
package jwtauth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL срок действия токена
const DefaultTTL = time.Hour

var (
	// ErrTokenMissing токен не передан
	ErrTokenMissing = errors.New("jwtauth: token missing")

	// ErrTokenInvalid токен не прошел проверку
	ErrTokenInvalid = errors.New("jwtauth: token invalid")

	// ErrTokenExpired срок действия токена истек
	ErrTokenExpired = errors.New("jwtauth: token expired")

	// ErrAdminRequired операция доступна только администратору
	ErrAdminRequired = errors.New("jwtauth: admin access required")
)

// Caller личность вызывающей стороны
type Caller struct {
	ID      int64
	IsAdmin bool
}

// String возвращает вызывающего в виде "id/role" для логов
func (c Caller) String() string {
	role := "user"
	if c.IsAdmin {
		role = "admin"
	}
	return fmt.Sprintf("%d/%s", c.ID, role)
}

type claims struct {
	ID      int64 `json:"id"`
	IsAdmin bool  `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Issuer подписывает и проверяет токены HS256
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer создает Issuer. ttl <= 0 заменяется на DefaultTTL
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue выпускает токен для вызывающей стороны
func (i *Issuer) Issue(callerID int64, isAdmin bool) (string, error) {
	now := i.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:      callerID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("jwtauth: sign token: %w", err)
	}
	return signed, nil
}

// Identify проверяет токен и возвращает вызывающую сторону
func (i *Issuer) Identify(tokenString string) (Caller, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Caller{}, ErrTokenMissing
	}

	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Caller{}, ErrTokenExpired
		}
		return Caller{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	return Caller{ID: c.ID, IsAdmin: c.IsAdmin}, nil
}

// RequireAdmin пропускает только администратора
func RequireAdmin(caller Caller) error {
	if !caller.IsAdmin {
		return ErrAdminRequired
	}
	return nil
}
