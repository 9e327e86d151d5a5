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

// CreateDisclaimer inserts a new disclaimer. Returns ErrConflict if the name
// is taken.
func (s *Store) CreateDisclaimer(ctx context.Context, d *model.Disclaimer) error {
	now := time.Now().UTC()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = now
	d.UpdatedAt = now

	const q = `INSERT INTO disclaimers
		(id, name, content, display_hint, is_active, created_at, updated_at)
		VALUES
		(:id, :name, :content, :display_hint, :is_active, :created_at, :updated_at)`

	if _, err := s.db.NamedExecContext(ctx, q, d); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert disclaimer: %w", err)
	}
	return nil
}

// GetDisclaimer returns a disclaimer by id.
func (s *Store) GetDisclaimer(ctx context.Context, id string) (*model.Disclaimer, error) {
	var d model.Disclaimer
	err := s.db.GetContext(ctx, &d, s.q("SELECT * FROM disclaimers WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get disclaimer: %w", err)
	}
	return &d, nil
}

// ListDisclaimers returns one page of disclaimers plus the total count.
func (s *Store) ListDisclaimers(ctx context.Context, limit, offset int) ([]model.Disclaimer, int, error) {
	var items []model.Disclaimer
	err := s.db.SelectContext(ctx, &items,
		s.q("SELECT * FROM disclaimers ORDER BY name LIMIT ? OFFSET ?"), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list disclaimers: %w", err)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM disclaimers"); err != nil {
		return nil, 0, fmt.Errorf("count disclaimers: %w", err)
	}
	return items, total, nil
}

// ListActiveDisclaimers returns every active disclaimer. This is the
// public-facing query.
func (s *Store) ListActiveDisclaimers(ctx context.Context) ([]model.Disclaimer, error) {
	var items []model.Disclaimer
	err := s.db.SelectContext(ctx, &items,
		s.q("SELECT * FROM disclaimers WHERE is_active = ? ORDER BY name"), true)
	if err != nil {
		return nil, fmt.Errorf("list active disclaimers: %w", err)
	}
	return items, nil
}

// UpdateDisclaimer persists all mutable columns and bumps updated_at.
// Returns ErrConflict if renaming collides with an existing disclaimer.
func (s *Store) UpdateDisclaimer(ctx context.Context, d *model.Disclaimer) error {
	d.UpdatedAt = time.Now().UTC()

	const q = `UPDATE disclaimers SET
		name = :name,
		content = :content,
		display_hint = :display_hint,
		is_active = :is_active,
		updated_at = :updated_at
		WHERE id = :id`

	res, err := s.db.NamedExecContext(ctx, q, d)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("update disclaimer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update disclaimer rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDisclaimer removes a disclaimer by id.
func (s *Store) DeleteDisclaimer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM disclaimers WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete disclaimer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete disclaimer rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
