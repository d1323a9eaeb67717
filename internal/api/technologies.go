package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/models"
)

// VisibleTechnologies handles GET /technologies/visible.
func (h *Handler) VisibleTechnologies(w http.ResponseWriter, r *http.Request) {
	techs, err := h.svc.VisibleTechnologies(r.Context())
	if err != nil {
		fail(w, "visible technologies", err)
		return
	}
	if techs == nil {
		techs = []models.Technology{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"technologies": techs})
}

// AdminListTechnologies handles GET /technologies.
func (h *Handler) AdminListTechnologies(w http.ResponseWriter, r *http.Request) {
	techs, err := h.svc.AdminListTechnologies(r.Context())
	if err != nil {
		fail(w, "admin list technologies", err)
		return
	}
	if techs == nil {
		techs = []models.Technology{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"technologies": techs})
}

// CreateTechnology handles POST /technologies.
func (h *Handler) CreateTechnology(w http.ResponseWriter, r *http.Request) {
	var in content.TechnologyInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.CreateTechnology(r.Context(), in)
	if err != nil {
		fail(w, "create technology", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateTechnology handles PATCH /technologies/{id}.
func (h *Handler) UpdateTechnology(w http.ResponseWriter, r *http.Request) {
	var p content.TechnologyPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.UpdateTechnology(r.Context(), id, p); err != nil {
		fail(w, "update technology", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// SetTechnologyVisibility handles PUT /technologies/{id}/visibility.
func (h *Handler) SetTechnologyVisibility(w http.ResponseWriter, r *http.Request) {
	var req VisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.SetTechnologyVisibility(r.Context(), id, req.Visible); err != nil {
		fail(w, "set technology visibility", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// SetTechnologyOrder handles PUT /technologies/{id}/order.
func (h *Handler) SetTechnologyOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.SetTechnologyOrder(r.Context(), id, req.Order); err != nil {
		fail(w, "set technology order", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// DeleteTechnology handles DELETE /technologies/{id}.
func (h *Handler) DeleteTechnology(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTechnology(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, "delete technology", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
