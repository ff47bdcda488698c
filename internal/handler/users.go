package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nlowell/fsubs/internal/auth"
	"github.com/nlowell/fsubs/internal/db"
	"github.com/nlowell/fsubs/internal/model"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Access and Verified are pointers so an omitted field reads as "keep the
// stored value" rather than as a change to the zero value.
type updateUserRequest struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"omitempty,min=8"`
	Access   *string `json:"access" validate:"omitempty,oneof=basic power admin"`
	Verified *bool   `json:"verified"`
}

type patchUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Access   *string `json:"access" validate:"omitempty,oneof=basic power admin"`
	Verified *bool   `json:"verified"`
}

// CreateUser handles POST /users. Open registration: every new account starts
// unverified at the basic tier no matter what the body claims.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if !h.decodeValid(w, r, &body) {
		return
	}

	existing, err := db.GetUserByUsername(h.DB, body.Username)
	if err != nil {
		slog.Error("check username", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create user")
		return
	}
	if existing != nil {
		renderJSONError(w, http.StatusConflict, "CONFLICT", "username in use")
		return
	}
	existing, err = db.GetUserByEmail(h.DB, body.Email)
	if err != nil {
		slog.Error("check email", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create user")
		return
	}
	if existing != nil {
		renderJSONError(w, http.StatusConflict, "CONFLICT", "email in use")
		return
	}

	salt, key, err := auth.HashPassword(body.Password)
	if err != nil {
		slog.Error("hash password", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create user")
		return
	}

	id := uuid.New().String()
	user := &model.User{
		ID:             id,
		Username:       body.Username,
		Email:          body.Email,
		Access:         model.AccessBasic,
		Verified:       false,
		Salt:           salt,
		HashedPassword: key,
		Metadata:       model.NewMetadata(id, time.Now()),
	}
	if err := db.CreateUser(h.DB, user); err != nil {
		slog.Error("create user", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create user")
		return
	}

	renderJSON(w, http.StatusCreated, idResponse{ID: user.ID})
}

// ListUsers handles GET /users?start=&page_length=. Admin only, enforced by the
// route group.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageParams(w, r)
	if !ok {
		return
	}

	users, err := db.ListUsers(h.DB, limit, offset)
	if err != nil {
		slog.Error("list users", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list users")
		return
	}

	result := make([]apiUser, len(users))
	for i := range users {
		result[i] = userToAPI(&users[i])
	}
	renderJSON(w, http.StatusOK, result)
}

// GetSelf handles GET /users/self
func (h *Handler) GetSelf(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	renderJSON(w, http.StatusOK, userToAPI(actor))
}

// GetUserByUsername handles GET /users/username/{username}
func (h *Handler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := db.GetUserByUsername(h.DB, username)
	if err != nil {
		slog.Error("get user", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get user")
		return
	}
	if user == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	renderJSON(w, http.StatusOK, userToAPI(user))
}

// GetUserByID handles GET /users/userid/{id}
func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := db.GetUserByID(h.DB, id)
	if err != nil {
		slog.Error("get user", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get user")
		return
	}
	if user == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	renderJSON(w, http.StatusOK, userToAPI(user))
}

// canManageUser reports whether the actor may modify the user with the
// given id. Admins manage anyone, everyone else only themselves.
func canManageUser(actor *model.User, id string) bool {
	return actor.Access.AtLeast(model.AccessAdmin) || actor.ID == id
}

// checkEmailFree rejects an email already claimed by a different user.
// Writes the response and returns false on a collision or store error.
func (h *Handler) checkEmailFree(w http.ResponseWriter, email, excludeID string) bool {
	inUse, err := db.EmailInUse(h.DB, email, excludeID)
	if err != nil {
		slog.Error("check email", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update user")
		return false
	}
	if inUse {
		renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "email in use")
		return false
	}
	return true
}

// checkUsernameFree rejects a username already claimed by a different
// user. Writes the response and returns false on a collision or store
// error.
func (h *Handler) checkUsernameFree(w http.ResponseWriter, username, excludeID string) bool {
	other, err := db.GetUserByUsername(h.DB, username)
	if err != nil {
		slog.Error("check username", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update user")
		return false
	}
	if other != nil && other.ID != excludeID {
		renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "username in use")
		return false
	}
	return true
}

// UpdateUser handles PUT /users/userid/{id}
//
// Admin or self. Tier and verified changes are admin only. Changing the
// email resets verification; a password in the body re-derives the stored
// salt and key.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !canManageUser(actor, id) {
		renderJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient tier")
		return
	}

	var body updateUserRequest
	if !h.decodeValid(w, r, &body) {
		return
	}

	old, err := db.GetUserByID(h.DB, id)
	if err != nil {
		slog.Error("get user", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get user")
		return
	}
	if old == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	user := &model.User{
		ID:             id,
		Username:       body.Username,
		Email:          body.Email,
		Access:         old.Access,
		Verified:       old.Verified,
		Salt:           old.Salt,
		HashedPassword: old.HashedPassword,
		Metadata:       old.Metadata.Modified(actor.ID, time.Now()),
	}

	isAdmin := actor.Access.AtLeast(model.AccessAdmin)
	if body.Access != nil && model.Access(*body.Access) != old.Access {
		if !isAdmin {
			renderJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient tier")
			return
		}
		user.Access = model.Access(*body.Access)
	}
	if body.Verified != nil && *body.Verified != old.Verified {
		if !isAdmin {
			renderJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient tier")
			return
		}
		user.Verified = *body.Verified
	}

	if body.Username != old.Username && !h.checkUsernameFree(w, body.Username, id) {
		return
	}
	if body.Email != old.Email {
		if !h.checkEmailFree(w, body.Email, id) {
			return
		}
		user.Verified = false
	}
	if body.Password != "" {
		salt, key, err := auth.HashPassword(body.Password)
		if err != nil {
			slog.Error("hash password", "error", err)
			renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update user")
			return
		}
		user.Salt = salt
		user.HashedPassword = key
	}

	if err := db.UpdateUser(h.DB, user); err != nil {
		slog.Error("update user", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update user")
		return
	}

	renderJSON(w, http.StatusOK, userToAPI(user))
}

// PatchUser handles PATCH /users/userid/{id}
//
// Same gates as UpdateUser; fields absent from the body keep their
// stored values.
func (h *Handler) PatchUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !canManageUser(actor, id) {
		renderJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient tier")
		return
	}

	var body patchUserRequest
	if !h.decodeValid(w, r, &body) {
		return
	}

	old, err := db.GetUserByID(h.DB, id)
	if err != nil {
		slog.Error("get user", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get user")
		return
	}
	if old == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	user := *old
	user.Metadata = old.Metadata.Modified(actor.ID, time.Now())

	isAdmin := actor.Access.AtLeast(model.AccessAdmin)
	if body.Access != nil && model.Access(*body.Access) != old.Access {
		if !isAdmin {
			renderJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient tier")
			return
		}
		user.Access = model.Access(*body.Access)
	}
	if body.Verified != nil && *body.Verified != old.Verified {
		if !isAdmin {
			renderJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient tier")
			return
		}
		user.Verified = *body.Verified
	}

	if body.Username != nil && *body.Username != old.Username {
		if !h.checkUsernameFree(w, *body.Username, id) {
			return
		}
		user.Username = *body.Username
	}
	if body.Email != nil && *body.Email != old.Email {
		if !h.checkEmailFree(w, *body.Email, id) {
			return
		}
		user.Email = *body.Email
		user.Verified = false
	}
	if body.Password != nil {
		salt, key, err := auth.HashPassword(*body.Password)
		if err != nil {
			slog.Error("hash password", "error", err)
			renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update user")
			return
		}
		user.Salt = salt
		user.HashedPassword = key
	}

	if err := db.UpdateUser(h.DB, &user); err != nil {
		slog.Error("update user", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update user")
		return
	}

	renderJSON(w, http.StatusOK, userToAPI(&user))
}

// DeleteUser handles DELETE /users/userid/{id}. Admin or self.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !canManageUser(actor, id) {
		renderJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient tier")
		return
	}

	user, err := db.GetUserByID(h.DB, id)
	if err != nil {
		slog.Error("get user", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get user")
		return
	}
	if user == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	if err := db.DeleteUser(h.DB, id); err != nil {
		slog.Error("delete user", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
