package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/folio/internal/content"
)

// ListProjects handles GET /projects with optional substring search and
// cursor pagination.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cursor, _ := strconv.Atoi(q.Get("cursor"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	page, err := h.svc.ListProjects(r.Context(), q.Get("q"), cursor, limit)
	if err != nil {
		fail(w, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetProject handles GET /projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, "get project", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProject handles POST /projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in content.ProjectInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.CreateProject(r.Context(), in)
	if err != nil {
		fail(w, "create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateProject handles PATCH /projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var p content.ProjectPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.UpdateProject(r.Context(), id, p); err != nil {
		fail(w, "update project", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// DeleteProject handles DELETE /projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, "delete project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
