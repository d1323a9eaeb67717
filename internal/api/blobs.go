package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ServeBlob handles GET /blobs/{id}. Retrieval requires the exp and sig
// query parameters minted by Resolve; stale or forged signatures answer
// 401 without revealing whether the reference exists.
func (h *Handler) ServeBlob(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "id")
	exp, err := strconv.ParseInt(r.URL.Query().Get("exp"), 10, 64)
	if err != nil || !h.blobs.Verify(ref, exp, r.URL.Query().Get("sig")) {
		reject(w, http.StatusUnauthorized, "invalid or expired signature")
		return
	}

	rc, meta, err := h.blobs.Open(ref)
	if err != nil {
		fail(w, "serve blob", err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone at this point, nothing left to do but log.
		slog.Warn("blob copy interrupted", slog.String("ref", ref), slog.String("error", err.Error()))
	}
}
