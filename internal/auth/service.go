package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toptier/siteapi/internal/model"
	"github.com/toptier/siteapi/internal/store"
)

// MinPasswordLength is the registration floor for password length.
const MinPasswordLength = 8

var (
	// ErrInvalidCredentials is returned for any failed login. Unknown
	// email and wrong password produce this same error so callers cannot
	// enumerate registered addresses.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an email that exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrWeakPassword is returned when a registration password is too short.
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	// ErrUnauthorized is the single outcome for every expected guard
	// failure: missing, malformed, or expired token, unknown subject, or
	// a deactivated account. Callers cannot tell these apart.
	ErrUnauthorized = errors.New("unauthorized")
)

// AdminStore is the slice of the record store the auth service needs.
type AdminStore interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// Service orchestrates login, registration, and the per-request identity
// resolution every admin endpoint depends on. It is stateless across
// requests; the token itself carries the session.
type Service struct {
	store AdminStore
	codec *TokenCodec
	ttl   time.Duration
}

// NewService creates an auth service issuing tokens valid for ttl.
func NewService(adminStore AdminStore, codec *TokenCodec, ttl time.Duration) *Service {
	return &Service{store: adminStore, codec: codec, ttl: ttl}
}

// TokenTTL returns the configured token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.ttl
}

// Login verifies the email/password pair and returns a fresh bearer token.
// Lookup failure and password mismatch are indistinguishable; both return
// ErrInvalidCredentials. Store failures propagate as hard errors and are
// never masked as a credential failure.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.store.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up admin: %w", err)
	}

	if !CheckPassword(password, admin.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(admin.Email, s.ttl)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Register creates a new admin account and, on success, immediately issues
// a bearer token for it (registration implies login).
func (s *Service) Register(ctx context.Context, email, password, fullName, role string) (*model.Admin, string, error) {
	if _, err := s.store.GetAdminByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("look up admin: %w", err)
	}

	if len(password) < MinPasswordLength {
		return nil, "", ErrWeakPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	admin := &model.Admin{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create admin: %w", err)
	}

	token, err := s.codec.Issue(admin.Email, s.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return admin, token, nil
}

// Resolve is the request guard: it validates the bearer token and reloads
// the live admin record for its subject. The reload means role and active
// flag changes take effect on the very next request, without waiting for
// the token to expire. Every expected failure collapses into
// ErrUnauthorized; store failures propagate so the caller can surface an
// internal error instead of a misleading 401.
func (s *Service) Resolve(ctx context.Context, tokenStr string) (*model.Admin, error) {
	subject, err := s.codec.Validate(tokenStr)
	if err != nil {
		return nil, ErrUnauthorized
	}

	admin, err := s.store.GetAdminByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("reload admin: %w", err)
	}
	if !admin.IsActive {
		return nil, ErrUnauthorized
	}
	return admin, nil
}

// Refresh resolves the presented token and issues a new one with a fresh
// expiry window for the same subject.
func (s *Service) Refresh(ctx context.Context, tokenStr string) (string, error) {
	admin, err := s.Resolve(ctx, tokenStr)
	if err != nil {
		return "", err
	}
	token, err := s.codec.Issue(admin.Email, s.ttl)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
