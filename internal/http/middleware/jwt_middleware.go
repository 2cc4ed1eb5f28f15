package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/diagnosis/hotel-backoffice/internal/http/response"
	"github.com/diagnosis/hotel-backoffice/pkg/auth"
	"github.com/diagnosis/hotel-backoffice/pkg/logger"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// RequireJWT admits requests carrying a valid bearer token with the given
// role. An empty role accepts any valid token.
func RequireJWT(cfg auth.TokenConfig, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				response.Unauthorized(w, "Missing or invalid authorization header")
				return
			}
			claims, err := auth.Parse(strings.TrimPrefix(authz, "Bearer "), cfg)
			if err != nil {
				logger.WarnContext(r.Context(), "Rejected token", "error", err)
				response.WriteError(w, http.StatusUnauthorized, "Invalid token", response.CodeInvalidToken)
				return
			}
			if role != "" && claims.Role != role {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), CtxClaims, claims)
			ctx = context.WithValue(ctx, logger.UserKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Claims(r *http.Request) *auth.Claims {
	v, _ := r.Context().Value(CtxClaims).(*auth.Claims)
	return v
}
