package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/folio/internal/blob"
)

// IssueUpload handles POST /uploads: mints a single-use upload token for
// the declared content type.
func (h *Handler) IssueUpload(w http.ResponseWriter, r *http.Request) {
	var req UploadTargetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, err := h.blobs.IssueUploadTarget(req.ContentType)
	if err != nil {
		fail(w, "issue upload", err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadTargetResponse{
		Token:     token,
		UploadURL: "/api/uploads/" + token,
	})
}

// ReceiveUpload handles PUT /uploads/{token}: the raw request body becomes
// the blob. The token is consumed whether or not the write succeeds.
func (h *Handler) ReceiveUpload(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	ref, err := h.blobs.ReceiveUpload(chi.URLParam(r, "token"), http.MaxBytesReader(w, r.Body, blob.MaxUploadBytes+1))
	if err != nil {
		fail(w, "receive upload", err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{StorageID: ref})
}
