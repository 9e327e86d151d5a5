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

// CreateFAQ inserts a new FAQ item.
func (s *Store) CreateFAQ(ctx context.Context, item *model.FAQItem) error {
	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	const q = `INSERT INTO faq_items
		(id, question, answer, display_order, is_published, created_at, updated_at)
		VALUES
		(:id, :question, :answer, :display_order, :is_published, :created_at, :updated_at)`

	if _, err := s.db.NamedExecContext(ctx, q, item); err != nil {
		return fmt.Errorf("insert faq item: %w", err)
	}
	return nil
}

// GetFAQ returns a FAQ item by id.
func (s *Store) GetFAQ(ctx context.Context, id string) (*model.FAQItem, error) {
	var item model.FAQItem
	err := s.db.GetContext(ctx, &item, s.q("SELECT * FROM faq_items WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get faq item: %w", err)
	}
	return &item, nil
}

// ListFAQs returns one page of FAQ items plus the total count, ordered by
// display_order.
func (s *Store) ListFAQs(ctx context.Context, limit, offset int) ([]model.FAQItem, int, error) {
	var items []model.FAQItem
	err := s.db.SelectContext(ctx, &items,
		s.q("SELECT * FROM faq_items ORDER BY display_order LIMIT ? OFFSET ?"), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list faq items: %w", err)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM faq_items"); err != nil {
		return nil, 0, fmt.Errorf("count faq items: %w", err)
	}
	return items, total, nil
}

// ListPublishedFAQs returns every published FAQ item in display order.
// This is the public-facing query.
func (s *Store) ListPublishedFAQs(ctx context.Context) ([]model.FAQItem, error) {
	var items []model.FAQItem
	err := s.db.SelectContext(ctx, &items,
		s.q("SELECT * FROM faq_items WHERE is_published = ? ORDER BY display_order"), true)
	if err != nil {
		return nil, fmt.Errorf("list published faq items: %w", err)
	}
	return items, nil
}

// UpdateFAQ persists all mutable columns and bumps updated_at.
func (s *Store) UpdateFAQ(ctx context.Context, item *model.FAQItem) error {
	item.UpdatedAt = time.Now().UTC()

	const q = `UPDATE faq_items SET
		question = :question,
		answer = :answer,
		display_order = :display_order,
		is_published = :is_published,
		updated_at = :updated_at
		WHERE id = :id`

	res, err := s.db.NamedExecContext(ctx, q, item)
	if err != nil {
		return fmt.Errorf("update faq item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update faq item rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFAQ removes a FAQ item by id.
func (s *Store) DeleteFAQ(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM faq_items WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete faq item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete faq item rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
