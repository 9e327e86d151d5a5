package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey is the context key under which the request ID is stored.
const RequestIDKey contextKey = "request_id"

// requestIDHeader carries the ID on both the inbound and outbound side, so
// the marketing frontend and any proxy in between can correlate log lines
// with a failed contact-form submission or admin call.
const requestIDHeader = "X-Request-ID"

// maxClientRequestIDLen bounds IDs supplied by the caller. Anything longer
// is replaced rather than truncated, so log fields stay uniform.
const maxClientRequestIDLen = 64

// RequestID tags every request with an identifier. A well-formed ID sent by
// the client is kept; otherwise a fresh UUIDv7 is minted (time-ordered, so
// IDs sort roughly by arrival). The ID is echoed in the response header and
// stored in the request context for the logger and error paths.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > maxClientRequestIDLen {
			id = uuid.Must(uuid.NewV7()).String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), RequestIDKey, id)))
	})
}

// GetRequestID returns the request ID stored by the RequestID middleware,
// or an empty string for a context that never passed through it.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
