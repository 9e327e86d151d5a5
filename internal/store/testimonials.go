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

// CreateTestimonial inserts a new testimonial.
func (s *Store) CreateTestimonial(ctx context.Context, tm *model.Testimonial) error {
	now := time.Now().UTC()
	if tm.ID == "" {
		tm.ID = uuid.NewString()
	}
	tm.CreatedAt = now
	tm.UpdatedAt = now

	const q = `INSERT INTO testimonials
		(id, author_name, author_location, quote, order_index, is_approved, created_at, updated_at)
		VALUES
		(:id, :author_name, :author_location, :quote, :order_index, :is_approved, :created_at, :updated_at)`

	if _, err := s.db.NamedExecContext(ctx, q, tm); err != nil {
		return fmt.Errorf("insert testimonial: %w", err)
	}
	return nil
}

// GetTestimonial returns a testimonial by id.
func (s *Store) GetTestimonial(ctx context.Context, id string) (*model.Testimonial, error) {
	var tm model.Testimonial
	err := s.db.GetContext(ctx, &tm, s.q("SELECT * FROM testimonials WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get testimonial: %w", err)
	}
	return &tm, nil
}

// ListTestimonials returns one page of testimonials plus the total count,
// ordered by order_index.
func (s *Store) ListTestimonials(ctx context.Context, limit, offset int) ([]model.Testimonial, int, error) {
	var items []model.Testimonial
	err := s.db.SelectContext(ctx, &items,
		s.q("SELECT * FROM testimonials ORDER BY order_index LIMIT ? OFFSET ?"), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list testimonials: %w", err)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM testimonials"); err != nil {
		return nil, 0, fmt.Errorf("count testimonials: %w", err)
	}
	return items, total, nil
}

// ListApprovedTestimonials returns every approved testimonial in display
// order. This is the public-facing query.
func (s *Store) ListApprovedTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	var items []model.Testimonial
	err := s.db.SelectContext(ctx, &items,
		s.q("SELECT * FROM testimonials WHERE is_approved = ? ORDER BY order_index"), true)
	if err != nil {
		return nil, fmt.Errorf("list approved testimonials: %w", err)
	}
	return items, nil
}

// UpdateTestimonial persists all mutable columns and bumps updated_at.
func (s *Store) UpdateTestimonial(ctx context.Context, tm *model.Testimonial) error {
	tm.UpdatedAt = time.Now().UTC()

	const q = `UPDATE testimonials SET
		author_name = :author_name,
		author_location = :author_location,
		quote = :quote,
		order_index = :order_index,
		is_approved = :is_approved,
		updated_at = :updated_at
		WHERE id = :id`

	res, err := s.db.NamedExecContext(ctx, q, tm)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update testimonial rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTestimonial removes a testimonial by id.
func (s *Store) DeleteTestimonial(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM testimonials WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete testimonial rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
