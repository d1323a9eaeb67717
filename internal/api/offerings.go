package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/models"
)

// ListOfferings handles GET /offerings: active records only, optionally
// narrowed by ?category=.
func (h *Handler) ListOfferings(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	offerings, err := h.svc.ListOfferings(r.Context(), category)
	if err != nil {
		fail(w, "list offerings", err)
		return
	}
	if offerings == nil {
		offerings = []models.Offering{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"offerings": offerings})
}

// AdminListOfferings handles GET /offerings/all, deactivated records
// included.
func (h *Handler) AdminListOfferings(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.svc.AdminListOfferings(r.Context())
	if err != nil {
		fail(w, "admin list offerings", err)
		return
	}
	if offerings == nil {
		offerings = []models.Offering{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"offerings": offerings})
}

// GetOffering handles GET /offerings/{id}.
func (h *Handler) GetOffering(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.GetOffering(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, "get offering", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// CreateOffering handles POST /offerings.
func (h *Handler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	var in content.OfferingInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.CreateOffering(r.Context(), in)
	if err != nil {
		fail(w, "create offering", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateOffering handles PATCH /offerings/{id}.
func (h *Handler) UpdateOffering(w http.ResponseWriter, r *http.Request) {
	var p content.OfferingPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.UpdateOffering(r.Context(), id, p); err != nil {
		fail(w, "update offering", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// DeleteOffering handles DELETE /offerings/{id}: the soft delete that
// deactivates the record.
func (h *Handler) DeleteOffering(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteOffering(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, "delete offering", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PurgeOffering handles DELETE /offerings/{id}/purge: the hard delete.
func (h *Handler) PurgeOffering(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.PurgeOffering(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, "purge offering", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
