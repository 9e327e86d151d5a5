package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toptier/siteapi/internal/model"
	"github.com/toptier/siteapi/internal/store"
)

// LeadHandler manages consultation-request submissions for admins.
type LeadHandler struct {
	store *store.Store
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(st *store.Store) *LeadHandler {
	return &LeadHandler{store: st}
}

type updateLeadRequest struct {
	Status *model.LeadStatus `json:"status"`
}

// List returns a paginated list of leads, newest first, optionally filtered
// by status.
// GET /api/v1/admin/contact-forms
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	status := model.LeadStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown status filter '"+string(status)+"'")
		return
	}

	items, total, err := h.store.ListLeads(r.Context(), status, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []model.Lead{}
	}
	writeJSON(w, http.StatusOK, model.ListResponse[model.Lead]{
		Items: items, Total: total, Page: page, Limit: limit,
	})
}

// Get returns one lead by id.
// GET /api/v1/admin/contact-forms/{id}
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.store.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Contact form submission not found", "")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// Update transitions a lead to a new pipeline status.
// PUT /api/v1/admin/contact-forms/{id}
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateLeadRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lead, err := h.store.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Contact form submission not found", "")
		return
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			writeError(w, http.StatusBadRequest, "Unknown status '"+string(*req.Status)+"'")
			return
		}
		if err := h.store.UpdateLeadStatus(r.Context(), lead.ID, *req.Status); err != nil {
			writeStoreError(w, err, "Contact form submission not found", "")
			return
		}
		lead, err = h.store.GetLead(r.Context(), lead.ID)
		if err != nil {
			writeStoreError(w, err, "Contact form submission not found", "")
			return
		}
	}

	writeJSON(w, http.StatusOK, lead)
}

// Delete removes a lead.
// DELETE /api/v1/admin/contact-forms/{id}
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteLead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Contact form submission not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
