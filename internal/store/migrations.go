package store

import (
	"fmt"
	"strings"
)

// migrate applies the schema. Every statement is idempotent, so re-running
// on an existing database is safe. The DDL sticks to types both SQLite and
// Postgres accept.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS admin_users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'admin',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY,
			slug TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			hero_headline TEXT NOT NULL DEFAULT '',
			hero_subheadline TEXT NOT NULL DEFAULT '',
			main_content_json TEXT NOT NULL DEFAULT '',
			cta_text TEXT NOT NULL DEFAULT '',
			cta_link TEXT NOT NULL DEFAULT '',
			meta_title TEXT NOT NULL DEFAULT '',
			meta_description TEXT NOT NULL DEFAULT '',
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS testimonials (
			id TEXT PRIMARY KEY,
			author_name TEXT NOT NULL,
			author_location TEXT NOT NULL DEFAULT '',
			quote TEXT NOT NULL,
			order_index INTEGER NOT NULL DEFAULT 0,
			is_approved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS faq_items (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0,
			is_published BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS disclaimers (
			id TEXT PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			content TEXT NOT NULL,
			display_hint TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS consultation_requests (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL,
			phone_number TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			source_page_slug TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'new',
			requested_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_pages_slug ON pages(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_testimonials_order ON testimonials(order_index)`,
		`CREATE INDEX IF NOT EXISTS idx_faq_items_order ON faq_items(display_order)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON consultation_requests(status)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_email ON consultation_requests(email)`,
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			// Ignore "already exists" races from concurrent startup.
			if strings.Contains(strings.ToLower(err.Error()), "already exists") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
