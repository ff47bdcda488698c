package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nlowell/fsubs/internal/auth"
	"github.com/nlowell/fsubs/internal/db"
	"github.com/nlowell/fsubs/internal/model"
)

// RequireAuth verifies the bearer token and resolves the acting user into
// the request context. A token that verifies but whose subject cannot be
// loaded from the store is a server fault, not an authentication failure.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			renderJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED",
				"could not validate credentials")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		userID, err := auth.ParseToken(token, []byte(h.Cfg.App.JWTSecret))
		if err != nil {
			renderJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED",
				"could not validate credentials")
			return
		}

		user, err := db.GetUserByID(h.DB, userID)
		if err != nil {
			slog.Error("resolve acting user", "user_id", userID, "error", err)
			renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"failed to resolve acting user")
			return
		}
		if user == nil {
			renderJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED",
				"could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(r.Context(), user)))
	})
}

// renderAuthorizeError translates an Authorize failure: a tier denial is
// the caller's fault, an unresolved actor is ours.
func renderAuthorizeError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrForbidden) {
		renderJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient tier")
		return
	}
	slog.Error("authorize", "error", err)
	renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
		"failed to resolve acting user")
}

// RequireAdmin gates a route group on the admin tier. Must run inside
// RequireAuth.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := auth.UserFromContext(r.Context())
		if err := auth.Authorize(actor, model.AccessAdmin, nil); err != nil {
			renderJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient tier")
			return
		}
		next.ServeHTTP(w, r)
	})
}
