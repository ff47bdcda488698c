package handler

import (
	"net/http"
	"time"

	"github.com/nlowell/fsubs/internal/auth"
	"github.com/nlowell/fsubs/internal/db"
)

// Authenticate handles POST /authenticate (form body: username, password).
// Issues a bearer token on a credential match.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderJSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		renderJSONError(w, http.StatusBadRequest, "BAD_REQUEST", "username and password are required")
		return
	}

	user, err := db.GetUserByUsername(h.DB, username)
	if err != nil {
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to look up user")
		return
	}
	if user == nil || !auth.VerifyPassword(password, user.Salt, user.HashedPassword) {
		renderJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "could not validate credentials")
		return
	}

	validity := time.Duration(h.Cfg.App.JWTExpiresHours) * time.Hour
	token, err := auth.GenerateToken(user.ID, []byte(h.Cfg.App.JWTSecret), validity)
	if err != nil {
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to issue token")
		return
	}

	renderJSON(w, http.StatusCreated, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// CheckToken handles GET /authenticate. Runs behind RequireAuth; reaching it at
// all means the token verified and the actor resolved.
func (h *Handler) CheckToken(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"detail": "You have a valid token."})
}
