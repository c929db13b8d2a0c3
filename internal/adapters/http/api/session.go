// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/roster/pkg/logger"
)

// loginRequest is the body of POST /login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (l loginRequest) validate() error {
	switch {
	case strings.TrimSpace(l.Username) == "":
		return ErrBadRequest
	case l.Password == "":
		return ErrBadRequest
	}
	return nil
}

// SessionHandler handles login and logout.
type SessionHandler struct {
	deps   SessionDependencies
	logger logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies, l logger.Logger) *SessionHandler {
	return &SessionHandler{deps: deps, logger: l}
}

// HandleLogin handles POST /login requests.
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, err))
		return
	}
	resp, err := h.deps.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleLogout handles POST /logout requests.
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.deps.Logout(r.Context(), TokenFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}
