package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toptier/siteapi/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", "") // in-memory
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFileStoreAppliesWALAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "siteapi.db")

	s, err := Open("sqlite", path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var mode string
	if err := s.db.Get(&mode, "PRAGMA journal_mode"); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Errorf("journal_mode: got %q, want wal", mode)
	}

	admin := &model.Admin{Email: "a@x.com", PasswordHash: "hash", IsActive: true}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A file-backed store survives process restarts; only the empty DSN
	// yields a throwaway in-memory database.
	s, err = Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	any, err := s.HasAnyAdmin(ctx)
	if err != nil {
		t.Fatalf("HasAnyAdmin: %v", err)
	}
	if !any {
		t.Error("admin created before reopen is gone")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "whatever"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestAdminLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	any, err := s.HasAnyAdmin(ctx)
	if err != nil {
		t.Fatalf("HasAnyAdmin: %v", err)
	}
	if any {
		t.Fatal("fresh store should have no admins")
	}

	admin := &model.Admin{
		Email:        "a@x.com",
		FullName:     "A",
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		IsActive:     true,
	}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.ID == "" {
		t.Fatal("expected generated id")
	}
	if admin.Role != model.DefaultAdminRole {
		t.Errorf("role default: got %q", admin.Role)
	}

	// Duplicate email is a conflict.
	err = s.CreateAdmin(ctx, &model.Admin{Email: "a@x.com", PasswordHash: "x"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate email: got %v, want ErrConflict", err)
	}

	got, err := s.GetAdminByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetAdminByEmail: %v", err)
	}
	if got.ID != admin.ID || !got.IsActive {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if _, err := s.GetAdminByEmail(ctx, "missing@x.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing email: got %v, want ErrNotFound", err)
	}

	any, err = s.HasAnyAdmin(ctx)
	if err != nil || !any {
		t.Errorf("HasAnyAdmin after create: %v %v", any, err)
	}

	if err := s.SetAdminActive(ctx, "a@x.com", false); err != nil {
		t.Fatalf("SetAdminActive: %v", err)
	}
	got, _ = s.GetAdminByEmail(ctx, "a@x.com")
	if got.IsActive {
		t.Error("expected admin to be deactivated")
	}

	if err := s.SetAdminActive(ctx, "missing@x.com", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetAdminActive missing: got %v, want ErrNotFound", err)
	}

	admins, err := s.ListAdmins(ctx)
	if err != nil || len(admins) != 1 {
		t.Errorf("ListAdmins: %d admins, err %v", len(admins), err)
	}
}

func TestPageCRUDAndPublishedLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	page := &model.Page{Slug: "home", Title: "Home", IsPublished: false}
	if err := s.CreatePage(ctx, page); err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	// Slug is unique.
	err := s.CreatePage(ctx, &model.Page{Slug: "home", Title: "Other"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate slug: got %v, want ErrConflict", err)
	}

	// Unpublished pages never surface through the public lookup.
	if _, err := s.GetPublishedPageBySlug(ctx, "home"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unpublished slug lookup: got %v, want ErrNotFound", err)
	}

	page.IsPublished = true
	page.Title = "Welcome"
	if err := s.UpdatePage(ctx, page); err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}

	pub, err := s.GetPublishedPageBySlug(ctx, "home")
	if err != nil {
		t.Fatalf("GetPublishedPageBySlug: %v", err)
	}
	if pub.Title != "Welcome" {
		t.Errorf("title: got %q", pub.Title)
	}

	items, total, err := s.ListPages(ctx, 10, 0)
	if err != nil || total != 1 || len(items) != 1 {
		t.Errorf("ListPages: total=%d items=%d err=%v", total, len(items), err)
	}

	if err := s.DeletePage(ctx, page.ID); err != nil {
		t.Fatalf("DeletePage: %v", err)
	}
	if _, err := s.GetPage(ctx, page.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted: got %v, want ErrNotFound", err)
	}
	if err := s.DeletePage(ctx, page.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete twice: got %v, want ErrNotFound", err)
	}

	// Updating a deleted record reports not found.
	if err := s.UpdatePage(ctx, page); !errors.Is(err, ErrNotFound) {
		t.Errorf("update deleted: got %v, want ErrNotFound", err)
	}
}

func TestTestimonialApprovalFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, approved := range []bool{false, true, true} {
		tm := &model.Testimonial{
			AuthorName: "Client",
			Quote:      "Quote",
			OrderIndex: 10 - i, // reversed to exercise ordering
			IsApproved: approved,
		}
		if err := s.CreateTestimonial(ctx, tm); err != nil {
			t.Fatalf("CreateTestimonial: %v", err)
		}
	}

	approved, err := s.ListApprovedTestimonials(ctx)
	if err != nil {
		t.Fatalf("ListApprovedTestimonials: %v", err)
	}
	if len(approved) != 2 {
		t.Fatalf("approved: got %d, want 2", len(approved))
	}
	if approved[0].OrderIndex > approved[1].OrderIndex {
		t.Error("approved testimonials not ordered by order_index")
	}

	all, total, err := s.ListTestimonials(ctx, 10, 0)
	if err != nil || total != 3 || len(all) != 3 {
		t.Errorf("ListTestimonials: total=%d items=%d err=%v", total, len(all), err)
	}
}

func TestFAQPublishedFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pub := &model.FAQItem{Question: "Q1", Answer: "A1", IsPublished: true}
	draft := &model.FAQItem{Question: "Q2", Answer: "A2", IsPublished: false}
	for _, item := range []*model.FAQItem{pub, draft} {
		if err := s.CreateFAQ(ctx, item); err != nil {
			t.Fatalf("CreateFAQ: %v", err)
		}
	}

	published, err := s.ListPublishedFAQs(ctx)
	if err != nil {
		t.Fatalf("ListPublishedFAQs: %v", err)
	}
	if len(published) != 1 || published[0].ID != pub.ID {
		t.Errorf("published: %+v", published)
	}

	draft.IsPublished = true
	if err := s.UpdateFAQ(ctx, draft); err != nil {
		t.Fatalf("UpdateFAQ: %v", err)
	}
	published, _ = s.ListPublishedFAQs(ctx)
	if len(published) != 2 {
		t.Errorf("after publishing: got %d, want 2", len(published))
	}
}

func TestDisclaimerNameUniqueAndActiveFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := &model.Disclaimer{Name: "general", Content: "Text", IsActive: true}
	if err := s.CreateDisclaimer(ctx, d); err != nil {
		t.Fatalf("CreateDisclaimer: %v", err)
	}
	err := s.CreateDisclaimer(ctx, &model.Disclaimer{Name: "general", Content: "Other"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate name: got %v, want ErrConflict", err)
	}

	inactive := &model.Disclaimer{Name: "retired", Content: "Old", IsActive: false}
	if err := s.CreateDisclaimer(ctx, inactive); err != nil {
		t.Fatalf("CreateDisclaimer: %v", err)
	}

	active, err := s.ListActiveDisclaimers(ctx)
	if err != nil {
		t.Fatalf("ListActiveDisclaimers: %v", err)
	}
	if len(active) != 1 || active[0].Name != "general" {
		t.Errorf("active: %+v", active)
	}
}

func TestLeadStatusAndPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		lead := &model.Lead{
			FirstName: "Lead",
			Email:     "lead@example.com",
		}
		if err := s.CreateLead(ctx, lead); err != nil {
			t.Fatalf("CreateLead: %v", err)
		}
		if lead.Status != model.LeadStatusNew {
			t.Errorf("default status: got %q", lead.Status)
		}
		if i < 2 {
			if err := s.UpdateLeadStatus(ctx, lead.ID, model.LeadStatusContacted); err != nil {
				t.Fatalf("UpdateLeadStatus: %v", err)
			}
		}
	}

	// All leads, paginated.
	items, total, err := s.ListLeads(ctx, "", 3, 0)
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}
	if total != 5 || len(items) != 3 {
		t.Errorf("page 1: total=%d items=%d", total, len(items))
	}
	items, total, _ = s.ListLeads(ctx, "", 3, 3)
	if total != 5 || len(items) != 2 {
		t.Errorf("page 2: total=%d items=%d", total, len(items))
	}

	// Status filter counts only matching rows.
	items, total, err = s.ListLeads(ctx, model.LeadStatusContacted, 10, 0)
	if err != nil {
		t.Fatalf("ListLeads filtered: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("contacted: total=%d items=%d", total, len(items))
	}

	if err := s.UpdateLeadStatus(ctx, "no-such-id", model.LeadStatusArchived); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing lead: got %v, want ErrNotFound", err)
	}

	lead := items[0]
	if err := s.DeleteLead(ctx, lead.ID); err != nil {
		t.Fatalf("DeleteLead: %v", err)
	}
	if _, err := s.GetLead(ctx, lead.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted lead: got %v, want ErrNotFound", err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
