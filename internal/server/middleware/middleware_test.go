package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/toptier/siteapi/internal/auth"
	"github.com/toptier/siteapi/internal/store"
)

// ---------------------------------------------------------------------------
// RequestID middleware tests
// ---------------------------------------------------------------------------

func TestRequestIDGeneratesUUID(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := GetRequestID(r.Context())
		if id == "" {
			t.Error("expected non-empty request ID in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	respID := rr.Header().Get("X-Request-ID")
	if respID == "" {
		t.Error("expected X-Request-ID in response header")
	}
	// UUID v7 format check: 36 chars with dashes
	if len(respID) != 36 {
		t.Errorf("expected UUID-length request ID, got %q (len=%d)", respID, len(respID))
	}
}

func TestRequestIDPreservesClientID(t *testing.T) {
	clientID := "my-custom-trace-id-123"

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := GetRequestID(r.Context())
		if id != clientID {
			t.Errorf("expected context ID %q, got %q", clientID, id)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", clientID)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	respID := rr.Header().Get("X-Request-ID")
	if respID != clientID {
		t.Errorf("expected response X-Request-ID %q, got %q", clientID, respID)
	}
}

func TestRequestIDReplacesOversizedClientID(t *testing.T) {
	huge := strings.Repeat("x", 200)

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", huge)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	respID := rr.Header().Get("X-Request-ID")
	if respID == huge {
		t.Error("oversized client ID should be replaced")
	}
	if len(respID) != 36 {
		t.Errorf("expected a generated UUID, got %q", respID)
	}
}

func TestGetRequestIDEmptyContext(t *testing.T) {
	id := GetRequestID(context.Background())
	if id != "" {
		t.Errorf("expected empty string from bare context, got %q", id)
	}
}

// ---------------------------------------------------------------------------
// RequireAdmin middleware tests
// ---------------------------------------------------------------------------

func newGuardedHandler(t *testing.T) (http.Handler, *auth.Service, *store.Store) {
	t.Helper()
	st, err := store.Open("sqlite", "")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	authSvc := auth.NewService(st, auth.NewTokenCodec("middleware-test-secret"), time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin := AdminFromContext(r.Context())
		if admin == nil {
			t.Error("expected admin in context inside guarded handler")
		}
		w.WriteHeader(http.StatusOK)
	})
	return RequireAdmin(authSvc, logger)(inner), authSvc, st
}

func TestRequireAdminAllowsValidToken(t *testing.T) {
	handler, authSvc, _ := newGuardedHandler(t)

	_, token, err := authSvc.Register(context.Background(), "admin@example.com", "longpassword", "Admin", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	req := httptest.NewRequest("GET", "/admin/content", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	handler, _, _ := newGuardedHandler(t)

	req := httptest.NewRequest("GET", "/admin/content", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireAdminRejectsGarbageToken(t *testing.T) {
	handler, _, _ := newGuardedHandler(t)

	req := httptest.NewRequest("GET", "/admin/content", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireAdminRejectsDeactivatedAccount(t *testing.T) {
	handler, authSvc, st := newGuardedHandler(t)
	ctx := context.Background()

	_, token, err := authSvc.Register(ctx, "admin@example.com", "longpassword", "Admin", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := st.SetAdminActive(ctx, "admin@example.com", false); err != nil {
		t.Fatalf("SetAdminActive: %v", err)
	}

	req := httptest.NewRequest("GET", "/admin/content", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401 for deactivated account", rr.Code)
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := BearerToken(req); got != "" {
		t.Errorf("no header: got %q", got)
	}

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := BearerToken(req); got != "" {
		t.Errorf("basic auth: got %q", got)
	}

	req.Header.Set("Authorization", "Bearer abc123")
	if got := BearerToken(req); got != "abc123" {
		t.Errorf("bearer: got %q, want %q", got, "abc123")
	}

	// The scheme is case-insensitive, like every HTTP auth scheme.
	for _, header := range []string{"bearer abc123", "BEARER abc123", "BeArEr abc123"} {
		req.Header.Set("Authorization", header)
		if got := BearerToken(req); got != "abc123" {
			t.Errorf("%q: got %q, want %q", header, got, "abc123")
		}
	}
}

func TestGuardAcceptsLowercaseBearerScheme(t *testing.T) {
	handler, authSvc, _ := newGuardedHandler(t)

	_, token, err := authSvc.Register(context.Background(), "admin@example.com", "longpassword", "Admin", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	req := httptest.NewRequest("GET", "/admin/content", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
}
