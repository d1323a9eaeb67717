package api

import (
	"net/http"
)

// Login handles POST /login: exchanges the admin passkey for a session
// token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, err := h.sessions.Login(req.Passkey)
	if err != nil {
		fail(w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}
