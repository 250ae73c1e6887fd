package middleware

import (
	"context"
	"net/http"

	"fantasy-books/internal/auth"
	"fantasy-books/internal/logger"
	"fantasy-books/internal/utils"

	"go.uber.org/zap"
)

type contextKey string

const TokenClaimsKey contextKey = "jwtClaims"

func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(TokenClaimsKey).(*auth.Claims)
	return claims, ok
}

// AdminOnly rejects requests without a valid admin token. The parsed claims
// are available to the next handler through ClaimsFrom.
func AdminOnly(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseToken(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected admin token", zap.Error(err))
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if claims.Role != auth.RoleAdmin {
				utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), TokenClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
