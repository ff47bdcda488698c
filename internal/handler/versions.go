package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nlowell/fsubs/internal/auth"
	"github.com/nlowell/fsubs/internal/db"
	"github.com/nlowell/fsubs/internal/model"
)

// Version records are shared between movies and tv episodes: once created
// they are addressed purely by their own id, so both path families bind to
// these handlers.

// GetVersion handles GET /movies/versions/{id}, GET /tv_shows/episodes/versions/{id}
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	version, err := db.GetVersion(h.DB, id)
	if err != nil {
		slog.Error("get version", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get version")
		return
	}
	if version == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "version not found")
		return
	}

	renderJSON(w, http.StatusOK, versionToAPI(version))
}

// UpdateVersion handles PUT /movies/versions/{id}, PUT /tv_shows/episodes/versions/{id}
//
// Requires power tier or ownership of the version.
func (h *Handler) UpdateVersion(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body versionRequest
	if !h.decodeValid(w, r, &body) {
		return
	}
	body.applyDefaults()

	old, err := db.GetVersion(h.DB, id)
	if err != nil {
		slog.Error("get version", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get version")
		return
	}
	if old == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "version not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &old.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	version := &model.Version{
		ID:          id,
		VideoBaseID: old.VideoBaseID,
		DiscType:    body.DiscType,
		Region:      body.Region,
		SubType:     body.SubType,
		Timestamps:  body.Timestamps,
		Description: body.Description,
		Track:       body.Track,
		Metadata:    old.Metadata.Modified(actor.ID, time.Now()),
	}
	if err := db.UpdateVersion(h.DB, version); err != nil {
		slog.Error("update version", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update version")
		return
	}

	renderJSON(w, http.StatusCreated, versionToAPI(version))
}

// DeleteVersion handles DELETE /movies/versions/{id}, DELETE /tv_shows/episodes/versions/{id}
//
// Requires power tier or ownership of the version.
func (h *Handler) DeleteVersion(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	version, err := db.GetVersion(h.DB, id)
	if err != nil {
		slog.Error("get version", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get version")
		return
	}
	if version == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "version not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &version.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	if err := db.DeleteVersion(h.DB, id); err != nil {
		slog.Error("delete version", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete version")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listVersionsOf lists all versions attached to the parent video id in the
// path. Used by both the movie and episode version listings.
func (h *Handler) listVersionsOf(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	versions, err := db.ListVersionsByVideo(h.DB, id)
	if err != nil {
		slog.Error("list versions", "video_id", id, "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list versions")
		return
	}

	result := make([]apiVersion, len(versions))
	for i := range versions {
		result[i] = versionToAPI(&versions[i])
	}
	renderJSON(w, http.StatusOK, result)
}
