// Package middleware provides HTTP middleware for the sync ingestion API.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/api/auth"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ClaimsFromContext retrieves the authenticated claims from the request
// context. Returns nil outside a route guarded by JWTAuth.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

// JWTAuth validates the Bearer token on every request and stores the
// resulting claims in the request context. Every route under
// /api/v1/sync requires this: the ingestion core trusts userId/clientId
// on EnrichedOperation only because this middleware already verified them.
func JWTAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	// unauthorized writes the same RFC 7807 body as handlers.Unauthorized;
	// the handlers package imports this one, so it cannot be imported here.
	unauthorized := func(w http.ResponseWriter, detail string) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type": "about:blank", "title": "Unauthorized", "status": http.StatusUnauthorized, "detail": detail,
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractBearerToken(r)
			if !ok {
				unauthorized(w, "Authorization header required")
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
