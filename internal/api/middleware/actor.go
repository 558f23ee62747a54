package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/smartsite/task-api/internal/api/shared"
	"github.com/smartsite/task-api/internal/platform/logger"
	"github.com/smartsite/task-api/internal/redact"
	"github.com/smartsite/task-api/internal/service/auth"
)

// ActorMiddleware attributes requests to the subject of an optional bearer
// token. Requests without an Authorization header proceed as the system
// actor; a header that is present but invalid is rejected with 401.
type ActorMiddleware struct {
	jwtService auth.JWTService
}

// NewActorMiddleware creates a new ActorMiddleware with the given dependencies.
func NewActorMiddleware(jwtService auth.JWTService) *ActorMiddleware {
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil")
	}
	return &ActorMiddleware{jwtService: jwtService}
}

// IdentifyActor is the http middleware function.
func (m *ActorMiddleware) IdentifyActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case auth.IsTokenError(err):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					"error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithActor(r.Context(), claims.Subject)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("actor", claims.Subject))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
