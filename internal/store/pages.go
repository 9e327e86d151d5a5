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

// CreatePage inserts a new page. Returns ErrConflict if the slug is taken.
func (s *Store) CreatePage(ctx context.Context, page *model.Page) error {
	now := time.Now().UTC()
	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	page.CreatedAt = now
	page.UpdatedAt = now

	const q = `INSERT INTO pages
		(id, slug, title, hero_headline, hero_subheadline, main_content_json,
		 cta_text, cta_link, meta_title, meta_description, is_published,
		 created_at, updated_at)
		VALUES
		(:id, :slug, :title, :hero_headline, :hero_subheadline, :main_content_json,
		 :cta_text, :cta_link, :meta_title, :meta_description, :is_published,
		 :created_at, :updated_at)`

	if _, err := s.db.NamedExecContext(ctx, q, page); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert page: %w", err)
	}
	return nil
}

// GetPage returns a page by id.
func (s *Store) GetPage(ctx context.Context, id string) (*model.Page, error) {
	var page model.Page
	err := s.db.GetContext(ctx, &page, s.q("SELECT * FROM pages WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get page: %w", err)
	}
	return &page, nil
}

// GetPublishedPageBySlug returns a page by slug, restricted to published
// pages. Unpublished pages are invisible to the public API.
func (s *Store) GetPublishedPageBySlug(ctx context.Context, slug string) (*model.Page, error) {
	var page model.Page
	err := s.db.GetContext(ctx, &page,
		s.q("SELECT * FROM pages WHERE slug = ? AND is_published = ?"), slug, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get published page by slug: %w", err)
	}
	return &page, nil
}

// ListPages returns one page of results plus the total row count.
func (s *Store) ListPages(ctx context.Context, limit, offset int) ([]model.Page, int, error) {
	var pages []model.Page
	err := s.db.SelectContext(ctx, &pages,
		s.q("SELECT * FROM pages ORDER BY slug LIMIT ? OFFSET ?"), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pages: %w", err)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM pages"); err != nil {
		return nil, 0, fmt.Errorf("count pages: %w", err)
	}
	return pages, total, nil
}

// UpdatePage persists all mutable columns of page and bumps updated_at.
// The slug is fixed at creation time and never rewritten.
func (s *Store) UpdatePage(ctx context.Context, page *model.Page) error {
	page.UpdatedAt = time.Now().UTC()

	const q = `UPDATE pages SET
		title = :title,
		hero_headline = :hero_headline,
		hero_subheadline = :hero_subheadline,
		main_content_json = :main_content_json,
		cta_text = :cta_text,
		cta_link = :cta_link,
		meta_title = :meta_title,
		meta_description = :meta_description,
		is_published = :is_published,
		updated_at = :updated_at
		WHERE id = :id`

	res, err := s.db.NamedExecContext(ctx, q, page)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update page rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePage removes a page by id.
func (s *Store) DeletePage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM pages WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete page rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
