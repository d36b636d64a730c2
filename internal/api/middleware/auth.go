package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/barberx/BarberX-BookingService/internal/api/handlers"
	"github.com/barberx/BarberX-BookingService/internal/service/auth"
)

const msgUnauthorized = "missing or invalid authorization token"

type ctxKey string

const claimsKey ctxKey = "admin_claims"

// TokenVerifier интерфейс проверки JWT токена
type TokenVerifier interface {
	VerifyToken(tokenString string) (*auth.Claims, error)
}

// Auth проверяет Bearer токен администратора
// Claims кладутся в контекст запроса и доступны через AdminClaims
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminClaims возвращает claims администратора из контекста запроса
func AdminClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
