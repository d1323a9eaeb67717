package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/models"
)

// ListExperiences handles GET /experiences.
func (h *Handler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	exps, err := h.svc.ListExperiences(r.Context())
	if err != nil {
		fail(w, "list experiences", err)
		return
	}
	if exps == nil {
		exps = []models.Experience{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"experiences": exps})
}

// GetExperience handles GET /experiences/{id}.
func (h *Handler) GetExperience(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetExperience(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, "get experience", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// CreateExperience handles POST /experiences.
func (h *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var in content.ExperienceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.CreateExperience(r.Context(), in)
	if err != nil {
		fail(w, "create experience", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateExperience handles PATCH /experiences/{id}.
func (h *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	var p content.ExperiencePatch
	if !decodeJSON(w, r, &p) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.UpdateExperience(r.Context(), id, p); err != nil {
		fail(w, "update experience", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// UpdateLatestExperience handles PATCH /experiences/latest. An empty
// collection answers 404 rather than silently doing nothing.
func (h *Handler) UpdateLatestExperience(w http.ResponseWriter, r *http.Request) {
	var p content.ExperiencePatch
	if !decodeJSON(w, r, &p) {
		return
	}
	id, err := h.svc.UpdateLatestExperience(r.Context(), p)
	if err != nil {
		fail(w, "update latest experience", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// DeleteExperience handles DELETE /experiences/{id}, the compound delete
// that also removes the icon blob.
func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteExperience(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, "delete experience", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
