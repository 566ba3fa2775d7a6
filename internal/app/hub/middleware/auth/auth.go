package auth

import (
	"context"
	"encoding/json"
	"net/http"

	usecase "github.com/pakolabs/business-console/internal/app/usecase/converter"
	"github.com/pakolabs/business-console/internal/app/usecase/crypto"
	"go.uber.org/zap"
)

type ClaimsCtxKey struct{}

// Middleware guards the business routes: requests without a valid bearer
// token are rejected with 401 before reaching a handler.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(usecase.AuthHeader)
			if len(header) == 0 {
				zap.L().Info("authorization header is empty")
				rejectUnauthorized(w, "authorization required")
				return
			}

			claims, err := usecase.GetClaimsFromAuthHeader(header, secret)
			if err != nil {
				zap.L().Error("error while parsing auth header", zap.Error(err))
				rejectUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsCtxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(r *http.Request) (crypto.Claims, bool) {
	claims, ok := r.Context().Value(ClaimsCtxKey{}).(crypto.Claims)

	return claims, ok
}

func rejectUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	payload := map[string]any{
		"success": false,
		"message": message,
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("error while encoding unauthorized response", zap.Error(err))
	}
}
