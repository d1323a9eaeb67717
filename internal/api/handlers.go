// Package api implements the Folio REST API using chi.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/folio/internal/auth"
	"github.com/halvard/folio/internal/blob"
	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/models"
)

// Handler holds API route handlers over the content service.
type Handler struct {
	svc      *content.Service
	blobs    *blob.Store
	sessions *auth.Sessions
}

// NewHandler creates a new Handler.
func NewHandler(svc *content.Service, blobs *blob.Store, sessions *auth.Sessions) *Handler {
	return &Handler{svc: svc, blobs: blobs, sessions: sessions}
}

// LatestHeader handles GET /header/latest.
func (h *Handler) LatestHeader(w http.ResponseWriter, r *http.Request) {
	header, err := h.svc.LatestHeader(r.Context())
	if err != nil {
		fail(w, "latest header", err)
		return
	}
	writeJSON(w, http.StatusOK, header)
}

// CreateHeader handles POST /header.
func (h *Handler) CreateHeader(w http.ResponseWriter, r *http.Request) {
	var in content.HeaderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.CreateHeader(r.Context(), in)
	if err != nil {
		fail(w, "create header", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateHeader handles PATCH /header/{id}.
func (h *Handler) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	var p content.HeaderPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.UpdateHeader(r.Context(), id, p); err != nil {
		fail(w, "update header", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// DeleteHeader handles DELETE /header/{id}.
func (h *Handler) DeleteHeader(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteHeader(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, "delete header", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LatestIntroduction handles GET /introduction/latest.
func (h *Handler) LatestIntroduction(w http.ResponseWriter, r *http.Request) {
	intro, err := h.svc.LatestIntroduction(r.Context())
	if err != nil {
		fail(w, "latest introduction", err)
		return
	}
	writeJSON(w, http.StatusOK, intro)
}

// CreateIntroduction handles POST /introduction.
func (h *Handler) CreateIntroduction(w http.ResponseWriter, r *http.Request) {
	var in content.IntroductionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.CreateIntroduction(r.Context(), in)
	if err != nil {
		fail(w, "create introduction", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateIntroduction handles PATCH /introduction/{id}.
func (h *Handler) UpdateIntroduction(w http.ResponseWriter, r *http.Request) {
	var p content.IntroductionPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.UpdateIntroduction(r.Context(), id, p); err != nil {
		fail(w, "update introduction", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// DeleteIntroduction handles DELETE /introduction/{id}.
func (h *Handler) DeleteIntroduction(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteIntroduction(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, "delete introduction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SectionCopy handles GET /sections/{key}.
func (h *Handler) SectionCopy(w http.ResponseWriter, r *http.Request) {
	key := models.SectionKey(chi.URLParam(r, "key"))
	sc, err := h.svc.SectionCopy(r.Context(), key)
	if err != nil {
		fail(w, "section copy", err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// ListSectionCopies handles GET /sections.
func (h *Handler) ListSectionCopies(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListSectionCopies(r.Context())
	if err != nil {
		fail(w, "list section copies", err)
		return
	}
	if list == nil {
		list = []models.SectionCopy{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": list})
}

// CreateSectionCopy handles POST /sections.
func (h *Handler) CreateSectionCopy(w http.ResponseWriter, r *http.Request) {
	var in content.SectionCopyInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.CreateSectionCopy(r.Context(), in)
	if err != nil {
		fail(w, "create section copy", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateSectionCopy handles PATCH /sections/{id}.
func (h *Handler) UpdateSectionCopy(w http.ResponseWriter, r *http.Request) {
	var p content.SectionCopyPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.UpdateSectionCopy(r.Context(), id, p); err != nil {
		fail(w, "update section copy", err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{ID: id})
}

// DeleteSectionCopy handles DELETE /sections/{id}.
func (h *Handler) DeleteSectionCopy(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSectionCopy(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, "delete section copy", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
