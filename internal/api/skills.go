package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/models"
)

// ListSkills handles GET /skills.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.ListSkills(r.Context())
	if err != nil {
		fail(w, "list skills", err)
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"skills": skills})
}

// GetSkill handles GET /skills/{id}.
func (h *Handler) GetSkill(w http.ResponseWriter, r *http.Request) {
	sk, err := h.svc.GetSkill(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, "get skill", err)
		return
	}
	writeJSON(w, http.StatusOK, sk)
}

// CreateSkill handles POST /skills.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var in content.SkillInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.CreateSkill(r.Context(), in)
	if err != nil {
		fail(w, "create skill", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateSkill handles PATCH /skills/{id}.
func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	var p content.SkillPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.UpdateSkill(r.Context(), id, p); err != nil {
		fail(w, "update skill", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// DeleteSkill handles DELETE /skills/{id}.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSkill(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, "delete skill", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
