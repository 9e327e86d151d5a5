package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/toptier/siteapi/internal/auth"
	"github.com/toptier/siteapi/internal/model"
)

type contextKeyAuth string

// AdminKey is the context key for the authenticated admin.
const AdminKey contextKeyAuth = "auth_admin"

// RequireAdmin returns an HTTP middleware that admits only requests carrying
// a valid bearer token for an existing, active admin account. The token is
// validated and the admin record is reloaded on every request, so a
// deactivated account is locked out immediately regardless of the token's
// remaining lifetime. Missing, malformed, expired, and orphaned tokens all
// produce the same generic 401; a store failure is a 500, never a 401.
func RequireAdmin(authSvc *auth.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			admin, err := authSvc.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthorized) {
					writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
					return
				}
				logger.Error("identity resolution failed", "error", err, "request_id", GetRequestID(r.Context()))
				writeAuthError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), AdminKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext extracts the authenticated admin from the context.
// Returns nil if the request did not pass through RequireAdmin.
func AdminFromContext(ctx context.Context) *model.Admin {
	if a, ok := ctx.Value(AdminKey).(*model.Admin); ok {
		return a
	}
	return nil
}

// BearerToken extracts the token from the request's Authorization header.
// The scheme is matched case-insensitively, as HTTP auth schemes are.
// Returns an empty string when the header is absent or not a bearer scheme.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Manually construct JSON to avoid an import cycle with the handler
	// package.
	w.Write([]byte(`{"error":{"code":` + statusString(status) + `,"message":"` + message + `"}}`))
}

func statusString(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return "401"
	case http.StatusForbidden:
		return "403"
	default:
		return "500"
	}
}
