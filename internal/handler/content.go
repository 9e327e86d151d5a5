package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/toptier/siteapi/internal/model"
	"github.com/toptier/siteapi/internal/store"
)

// ContentHandler manages the editable site content: pages, testimonials,
// FAQ items, and disclaimers. Every route is admin-only.
type ContentHandler struct {
	store *store.Store
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(st *store.Store) *ContentHandler {
	return &ContentHandler{store: st}
}

// writeStoreError maps store sentinels onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg, conflictMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, conflictMsg)
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// ---------------------------------------------------------------------------
// Pages
// ---------------------------------------------------------------------------

type createPageRequest struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	HeroHeadline    string `json:"hero_headline"`
	HeroSubheadline string `json:"hero_subheadline"`
	MainContentJSON string `json:"main_content_json"`
	CTAText         string `json:"cta_text"`
	CTALink         string `json:"cta_link"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	IsPublished     bool   `json:"is_published"`
}

// updatePageRequest uses pointers so absent fields are left untouched.
type updatePageRequest struct {
	Title           *string `json:"title"`
	HeroHeadline    *string `json:"hero_headline"`
	HeroSubheadline *string `json:"hero_subheadline"`
	MainContentJSON *string `json:"main_content_json"`
	CTAText         *string `json:"cta_text"`
	CTALink         *string `json:"cta_link"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	IsPublished     *bool   `json:"is_published"`
}

// ListPages returns a paginated list of all pages, published or not.
// GET /api/v1/admin/content
func (h *ContentHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)
	items, total, err := h.store.ListPages(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []model.Page{}
	}
	writeJSON(w, http.StatusOK, model.ListResponse[model.Page]{
		Items: items, Total: total, Page: page, Limit: limit,
	})
}

// CreatePage creates a new page.
// POST /api/v1/admin/content
func (h *ContentHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req createPageRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "Slug and title are required")
		return
	}

	page := &model.Page{
		Slug:            req.Slug,
		Title:           req.Title,
		HeroHeadline:    req.HeroHeadline,
		HeroSubheadline: req.HeroSubheadline,
		MainContentJSON: req.MainContentJSON,
		CTAText:         req.CTAText,
		CTALink:         req.CTALink,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		IsPublished:     req.IsPublished,
	}
	if err := h.store.CreatePage(r.Context(), page); err != nil {
		writeStoreError(w, err, "Page not found", "Page with this slug already exists")
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

// GetPage returns one page by id, regardless of publication state.
// GET /api/v1/admin/content/{id}
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.GetPage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Page not found", "")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// UpdatePage applies a partial, field-by-field update to a page.
// PUT /api/v1/admin/content/{id}
func (h *ContentHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var req updatePageRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	page, err := h.store.GetPage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Page not found", "")
		return
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.HeroHeadline != nil {
		page.HeroHeadline = *req.HeroHeadline
	}
	if req.HeroSubheadline != nil {
		page.HeroSubheadline = *req.HeroSubheadline
	}
	if req.MainContentJSON != nil {
		page.MainContentJSON = *req.MainContentJSON
	}
	if req.CTAText != nil {
		page.CTAText = *req.CTAText
	}
	if req.CTALink != nil {
		page.CTALink = *req.CTALink
	}
	if req.MetaTitle != nil {
		page.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		page.MetaDescription = *req.MetaDescription
	}
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}

	if err := h.store.UpdatePage(r.Context(), page); err != nil {
		writeStoreError(w, err, "Page not found", "")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// DeletePage removes a page.
// DELETE /api/v1/admin/content/{id}
func (h *ContentHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Page not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Testimonials
// ---------------------------------------------------------------------------

type createTestimonialRequest struct {
	AuthorName     string `json:"author_name"`
	AuthorLocation string `json:"author_location"`
	Quote          string `json:"quote"`
	OrderIndex     int    `json:"order_index"`
	IsApproved     bool   `json:"is_approved"`
}

type updateTestimonialRequest struct {
	AuthorName     *string `json:"author_name"`
	AuthorLocation *string `json:"author_location"`
	Quote          *string `json:"quote"`
	OrderIndex     *int    `json:"order_index"`
	IsApproved     *bool   `json:"is_approved"`
}

// ListTestimonials returns a paginated list of all testimonials, approved
// or not.
// GET /api/v1/admin/testimonials
func (h *ContentHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)
	items, total, err := h.store.ListTestimonials(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []model.Testimonial{}
	}
	writeJSON(w, http.StatusOK, model.ListResponse[model.Testimonial]{
		Items: items, Total: total, Page: page, Limit: limit,
	})
}

// CreateTestimonial creates a new testimonial.
// POST /api/v1/admin/testimonials
func (h *ContentHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req createTestimonialRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AuthorName == "" || req.Quote == "" {
		writeError(w, http.StatusBadRequest, "Author name and quote are required")
		return
	}

	tm := &model.Testimonial{
		AuthorName:     req.AuthorName,
		AuthorLocation: req.AuthorLocation,
		Quote:          req.Quote,
		OrderIndex:     req.OrderIndex,
		IsApproved:     req.IsApproved,
	}
	if err := h.store.CreateTestimonial(r.Context(), tm); err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, tm)
}

// UpdateTestimonial applies a partial update to a testimonial.
// PUT /api/v1/admin/testimonials/{id}
func (h *ContentHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req updateTestimonialRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tm, err := h.store.GetTestimonial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Testimonial not found", "")
		return
	}

	if req.AuthorName != nil {
		tm.AuthorName = *req.AuthorName
	}
	if req.AuthorLocation != nil {
		tm.AuthorLocation = *req.AuthorLocation
	}
	if req.Quote != nil {
		tm.Quote = *req.Quote
	}
	if req.OrderIndex != nil {
		tm.OrderIndex = *req.OrderIndex
	}
	if req.IsApproved != nil {
		tm.IsApproved = *req.IsApproved
	}

	if err := h.store.UpdateTestimonial(r.Context(), tm); err != nil {
		writeStoreError(w, err, "Testimonial not found", "")
		return
	}
	writeJSON(w, http.StatusOK, tm)
}

// DeleteTestimonial removes a testimonial.
// DELETE /api/v1/admin/testimonials/{id}
func (h *ContentHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTestimonial(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Testimonial not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// FAQ items
// ---------------------------------------------------------------------------

type createFAQRequest struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"display_order"`
	IsPublished  *bool  `json:"is_published"`
}

type updateFAQRequest struct {
	Question     *string `json:"question"`
	Answer       *string `json:"answer"`
	DisplayOrder *int    `json:"display_order"`
	IsPublished  *bool   `json:"is_published"`
}

// ListFAQs returns a paginated list of all FAQ items.
// GET /api/v1/admin/faqs
func (h *ContentHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)
	items, total, err := h.store.ListFAQs(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []model.FAQItem{}
	}
	writeJSON(w, http.StatusOK, model.ListResponse[model.FAQItem]{
		Items: items, Total: total, Page: page, Limit: limit,
	})
}

// CreateFAQ creates a new FAQ item. New items default to published.
// POST /api/v1/admin/faqs
func (h *ContentHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req createFAQRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" || req.Answer == "" {
		writeError(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	item := &model.FAQItem{
		Question:     req.Question,
		Answer:       req.Answer,
		DisplayOrder: req.DisplayOrder,
		IsPublished:  published,
	}
	if err := h.store.CreateFAQ(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateFAQ applies a partial update to a FAQ item.
// PUT /api/v1/admin/faqs/{id}
func (h *ContentHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	var req updateFAQRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.store.GetFAQ(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "FAQ item not found", "")
		return
	}

	if req.Question != nil {
		item.Question = *req.Question
	}
	if req.Answer != nil {
		item.Answer = *req.Answer
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}
	if req.IsPublished != nil {
		item.IsPublished = *req.IsPublished
	}

	if err := h.store.UpdateFAQ(r.Context(), item); err != nil {
		writeStoreError(w, err, "FAQ item not found", "")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteFAQ removes a FAQ item.
// DELETE /api/v1/admin/faqs/{id}
func (h *ContentHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteFAQ(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "FAQ item not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Disclaimers
// ---------------------------------------------------------------------------

type createDisclaimerRequest struct {
	Name        string `json:"name"`
	Content     string `json:"content"`
	DisplayHint string `json:"display_hint"`
	IsActive    *bool  `json:"is_active"`
}

type updateDisclaimerRequest struct {
	Name        *string `json:"name"`
	Content     *string `json:"content"`
	DisplayHint *string `json:"display_hint"`
	IsActive    *bool   `json:"is_active"`
}

// ListDisclaimers returns a paginated list of all disclaimers.
// GET /api/v1/admin/disclaimers
func (h *ContentHandler) ListDisclaimers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)
	items, total, err := h.store.ListDisclaimers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []model.Disclaimer{}
	}
	writeJSON(w, http.StatusOK, model.ListResponse[model.Disclaimer]{
		Items: items, Total: total, Page: page, Limit: limit,
	})
}

// CreateDisclaimer creates a new disclaimer. New disclaimers default to
// active.
// POST /api/v1/admin/disclaimers
func (h *ContentHandler) CreateDisclaimer(w http.ResponseWriter, r *http.Request) {
	var req createDisclaimerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Name and content are required")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	d := &model.Disclaimer{
		Name:        req.Name,
		Content:     req.Content,
		DisplayHint: req.DisplayHint,
		IsActive:    active,
	}
	if err := h.store.CreateDisclaimer(r.Context(), d); err != nil {
		writeStoreError(w, err, "Disclaimer not found", "Disclaimer with this name already exists")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// UpdateDisclaimer applies a partial update to a disclaimer.
// PUT /api/v1/admin/disclaimers/{id}
func (h *ContentHandler) UpdateDisclaimer(w http.ResponseWriter, r *http.Request) {
	var req updateDisclaimerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.store.GetDisclaimer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Disclaimer not found", "")
		return
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Content != nil {
		d.Content = *req.Content
	}
	if req.DisplayHint != nil {
		d.DisplayHint = *req.DisplayHint
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if err := h.store.UpdateDisclaimer(r.Context(), d); err != nil {
		writeStoreError(w, err, "Disclaimer not found", "Disclaimer with this name already exists")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DeleteDisclaimer removes a disclaimer.
// DELETE /api/v1/admin/disclaimers/{id}
func (h *ContentHandler) DeleteDisclaimer(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDisclaimer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Disclaimer not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
