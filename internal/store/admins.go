package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/toptier/siteapi/internal/model"
)

// CreateAdmin inserts a new admin account. The ID and timestamps are
// populated on the passed struct. Returns ErrConflict if the email is taken.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	now := time.Now().UTC()
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	if admin.Role == "" {
		admin.Role = model.DefaultAdminRole
	}
	admin.CreatedAt = now
	admin.UpdatedAt = now

	const q = `INSERT INTO admin_users
		(id, email, full_name, password_hash, role, is_active, created_at, updated_at)
		VALUES
		(:id, :email, :full_name, :password_hash, :role, :is_active, :created_at, :updated_at)`

	if _, err := s.db.NamedExecContext(ctx, q, admin); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetAdminByEmail returns an admin by exact email match.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.GetContext(ctx, &admin, s.q("SELECT * FROM admin_users WHERE email = ?"), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return &admin, nil
}

// ListAdmins returns all admin accounts ordered by email.
func (s *Store) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := s.db.SelectContext(ctx, &admins, "SELECT * FROM admin_users ORDER BY email"); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// HasAnyAdmin reports whether at least one admin account exists. Used for
// first-run detection at startup.
func (s *Store) HasAnyAdmin(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM admin_users"); err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count > 0, nil
}

// SetAdminActive flips the active flag for the admin with the given email.
// Deactivation is the removal mechanism for admin accounts: the bearer-token
// guard re-reads this flag on every request, so a deactivated account loses
// access immediately even while holding an unexpired token.
func (s *Store) SetAdminActive(ctx context.Context, email string, active bool) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		s.q("UPDATE admin_users SET is_active = ?, updated_at = ? WHERE email = ?"),
		active, now, email)
	if err != nil {
		return fmt.Errorf("set admin active: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set admin active rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
