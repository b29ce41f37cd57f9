package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/requestctx"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// UserContext is what this service knows about the caller: attribution for
// logs, nothing more. Authorization is upstream's job; the raw token is
// forwarded as-is.
type UserContext struct {
	UserID string
	Email  string
	Role   string
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Auth stashes the bearer token for upstream forwarding and, when the
// shared secret is configured, parses the claims for request attribution.
// Requests without a token pass through; upstream rejects them itself.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				next.ServeHTTP(w, r)
				return
			}
			token := parts[1]
			ctx := requestctx.WithBearerToken(r.Context(), token)

			if secret != "" {
				claims := &tokenClaims{}
				parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
					return []byte(secret), nil
				}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
				if err == nil && parsed.Valid {
					ctx = context.WithValue(ctx, ctxKeyUser, UserContext{
						UserID: claims.Subject,
						Email:  claims.Email,
						Role:   claims.Role,
					})
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(UserContext)
	return user, ok
}
