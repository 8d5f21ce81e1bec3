package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
	"github.com/m04kA/SMC-EventSlots/pkg/jwtauth"
)

const (
	// TokenHeader заголовок с токеном вызывающего
	TokenHeader = "x-auth-token"

	msgNoToken       = "No token, authorization denied"
	msgTokenExpired  = "Token has expired"
	msgTokenInvalid  = "Token is not valid"
	msgAdminRequired = "Admin access required"
)

type callerKey struct{}

// Identifier проверяет токен и возвращает вызывающего
type Identifier interface {
	Identify(token string) (jwtauth.Caller, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth пропускает запрос только с валидным токеном и кладет вызывающего в контекст
func Auth(identifier Identifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := identifier.Identify(tokenFromRequest(r))
			if err != nil {
				logger.Warn("%s %s - auth rejected: %v", r.Method, r.URL.Path, err)
				switch {
				case errors.Is(err, jwtauth.ErrTokenMissing):
					handlers.RespondUnauthorized(w, msgNoToken)
				case errors.Is(err, jwtauth.ErrTokenExpired):
					handlers.RespondTokenExpired(w, msgTokenExpired)
				default:
					handlers.RespondUnauthorized(w, msgTokenInvalid)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// AdminOnly требует, чтобы вызывающий был администратором. Ставится после Auth
func AdminOnly(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgNoToken)
				return
			}

			if err := jwtauth.RequireAdmin(caller); err != nil {
				logger.Warn("%s %s - user=%d is not admin", r.Method, r.URL.Path, caller.ID)
				handlers.RespondForbidden(w, msgAdminRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithCaller кладет вызывающего в контекст
func WithCaller(ctx context.Context, caller jwtauth.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext достает вызывающего из контекста
func CallerFromContext(ctx context.Context) (jwtauth.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(jwtauth.Caller)
	return caller, ok
}

func tokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authHeader) > len("Bearer ") && strings.EqualFold(authHeader[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}
