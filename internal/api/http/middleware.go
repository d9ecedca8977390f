package http

import (
	"context"
	"net/http"
	"strings"

	"cyclerent-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "operatorClaims"

// AuthMiddleware validates the Bearer token and stores the operator claims
// on the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, security.ErrInvalidToken)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeError(w, security.ErrWrongTokenType)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorFromContext returns the claims stored by AuthMiddleware, or nil.
func OperatorFromContext(ctx context.Context) *security.OperatorClaims {
	claims, _ := ctx.Value(claimsContextKey).(*security.OperatorClaims)
	return claims
}
