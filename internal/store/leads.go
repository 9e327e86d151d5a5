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

// CreateLead inserts a new consultation request. New leads always start in
// status "new" unless the caller set one explicitly.
func (s *Store) CreateLead(ctx context.Context, lead *model.Lead) error {
	now := time.Now().UTC()
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = model.LeadStatusNew
	}
	lead.RequestedAt = now
	lead.UpdatedAt = now

	const q = `INSERT INTO consultation_requests
		(id, first_name, last_name, email, phone_number, message, source_page_slug,
		 status, requested_at, updated_at)
		VALUES
		(:id, :first_name, :last_name, :email, :phone_number, :message, :source_page_slug,
		 :status, :requested_at, :updated_at)`

	if _, err := s.db.NamedExecContext(ctx, q, lead); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetLead returns a consultation request by id.
func (s *Store) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	var lead model.Lead
	err := s.db.GetContext(ctx, &lead, s.q("SELECT * FROM consultation_requests WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return &lead, nil
}

// ListLeads returns one page of consultation requests, newest first, plus
// the total count. Pass an empty status to list across all statuses.
func (s *Store) ListLeads(ctx context.Context, status model.LeadStatus, limit, offset int) ([]model.Lead, int, error) {
	var (
		items []model.Lead
		total int
		err   error
	)

	if status != "" {
		err = s.db.SelectContext(ctx, &items,
			s.q(`SELECT * FROM consultation_requests WHERE status = ?
				ORDER BY requested_at DESC LIMIT ? OFFSET ?`),
			status, limit, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("list leads: %w", err)
		}
		err = s.db.GetContext(ctx, &total,
			s.q("SELECT COUNT(*) FROM consultation_requests WHERE status = ?"), status)
	} else {
		err = s.db.SelectContext(ctx, &items,
			s.q(`SELECT * FROM consultation_requests
				ORDER BY requested_at DESC LIMIT ? OFFSET ?`),
			limit, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("list leads: %w", err)
		}
		err = s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM consultation_requests")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}
	return items, total, nil
}

// UpdateLeadStatus transitions a consultation request to a new status.
func (s *Store) UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		s.q("UPDATE consultation_requests SET status = ?, updated_at = ? WHERE id = ?"),
		status, now, id)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lead status rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLead removes a consultation request by id.
func (s *Store) DeleteLead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM consultation_requests WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lead rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
