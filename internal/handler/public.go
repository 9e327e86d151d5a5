package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/toptier/siteapi/internal/model"
	"github.com/toptier/siteapi/internal/notify"
	"github.com/toptier/siteapi/internal/server/middleware"
	"github.com/toptier/siteapi/internal/store"
)

// PublicHandler serves the unauthenticated read API and the contact form.
type PublicHandler struct {
	store  *store.Store
	mailer *notify.Mailer
	logger *slog.Logger
}

// NewPublicHandler creates a new PublicHandler. mailer may be nil when
// outbound notifications are not configured.
func NewPublicHandler(st *store.Store, mailer *notify.Mailer, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{store: st, mailer: mailer, logger: logger}
}

// GetContent returns a published page by slug. Unpublished pages 404.
// GET /api/v1/public/content/{slug}
func (h *PublicHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.store.GetPublishedPageBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Content with slug '"+slug+"' not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ListTestimonials returns all approved testimonials in display order.
// GET /api/v1/public/testimonials
func (h *PublicHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListApprovedTestimonials(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []model.Testimonial{}
	}
	writeJSON(w, http.StatusOK, items)
}

// ListFAQs returns all published FAQ items in display order.
// GET /api/v1/public/faqs
func (h *PublicHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListPublishedFAQs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []model.FAQItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// ListDisclaimers returns all active legal disclaimers.
// GET /api/v1/public/disclaimers
func (h *PublicHandler) ListDisclaimers(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListActiveDisclaimers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []model.Disclaimer{}
	}
	writeJSON(w, http.StatusOK, items)
}

type contactFormRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Message        string `json:"message"`
	SourcePageSlug string `json:"source_page_slug"`
}

type contactFormResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// SubmitContactForm accepts a consultation request from the public site,
// persists it as a new lead, and fires the email notification without
// blocking the response. A notification failure never fails the request.
// POST /api/v1/public/contact-forms
func (h *PublicHandler) SubmitContactForm(w http.ResponseWriter, r *http.Request) {
	var req contactFormRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		writeError(w, http.StatusBadRequest, "Full name is required")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	firstName, lastName := splitFullName(req.FullName)
	lead := &model.Lead{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Message:        req.Message,
		SourcePageSlug: req.SourcePageSlug,
		Status:         model.LeadStatusNew,
	}

	if err := h.store.CreateLead(r.Context(), lead); err != nil {
		h.logger.Error("create lead failed", "error", err, "request_id", middleware.GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Fire and forget: the submitter gets their 201 whether or not the
	// notification email goes out.
	go func(lead model.Lead) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.mailer.LeadReceived(ctx, &lead); err != nil {
			h.logger.Warn("lead notification failed", "error", err, "lead_id", lead.ID)
		}
	}(*lead)

	writeJSON(w, http.StatusCreated, contactFormResponse{
		ID:      lead.ID,
		Message: "Contact form submitted successfully",
	})
}

// splitFullName splits a submitted name into first and last on the first
// space. A single-word name has an empty last name.
func splitFullName(full string) (first, last string) {
	parts := strings.SplitN(full, " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = strings.TrimSpace(parts[1])
	}
	return first, last
}
