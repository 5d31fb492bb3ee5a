package http

import (
	"context"
	"net/http"
	"strings"

	"glanz-rental-backend/internal/security"
)

type contextKey string

const actorIDKey contextKey = "actor-id"

// AuthMiddleware validates the bearer token and injects the acting user's id
// into the request context. Authentication itself (issuing tokens) happens
// outside this service.
func AuthMiddleware(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tm.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), actorIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorID extracts the acting user's id injected by AuthMiddleware.
func ActorID(ctx context.Context) int64 {
	id, _ := ctx.Value(actorIDKey).(int64)
	return id
}
