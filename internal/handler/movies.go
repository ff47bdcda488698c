package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nlowell/fsubs/internal/auth"
	"github.com/nlowell/fsubs/internal/db"
	"github.com/nlowell/fsubs/internal/model"
)

// CreateMovie handles POST /movies
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	var body videoRequest
	if !h.decodeValid(w, r, &body) {
		return
	}

	movie := &model.Video{
		ID:          uuid.New().String(),
		Title:       body.Title,
		ImdbID:      body.ImdbID,
		Description: body.Description,
		Metadata:    model.NewMetadata(actor.ID, time.Now()),
	}
	if err := db.CreateMovie(h.DB, movie); err != nil {
		slog.Error("create movie", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create movie")
		return
	}

	renderJSON(w, http.StatusCreated, idResponse{ID: movie.ID})
}

// GetMovie handles GET /movies/{id}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	movie, err := db.GetMovie(h.DB, id)
	if err != nil {
		slog.Error("get movie", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get movie")
		return
	}
	if movie == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
		return
	}

	renderJSON(w, http.StatusOK, videoToAPI(movie))
}

// ListMovies handles GET /movies?start=&page_length=
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageParams(w, r)
	if !ok {
		return
	}

	movies, err := db.ListMovies(h.DB, limit, offset)
	if err != nil {
		slog.Error("list movies", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list movies")
		return
	}

	result := make([]apiVideo, len(movies))
	for i := range movies {
		result[i] = videoToAPI(&movies[i])
	}
	renderJSON(w, http.StatusOK, result)
}

// UpdateMovie handles PUT /movies/{id}
//
// Requires power tier or ownership of the movie.
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body videoRequest
	if !h.decodeValid(w, r, &body) {
		return
	}

	old, err := db.GetMovie(h.DB, id)
	if err != nil {
		slog.Error("get movie", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get movie")
		return
	}
	if old == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &old.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	movie := &model.Video{
		ID:          id,
		Title:       body.Title,
		ImdbID:      body.ImdbID,
		Description: body.Description,
		Metadata:    old.Metadata.Modified(actor.ID, time.Now()),
	}
	if err := db.UpdateMovie(h.DB, movie); err != nil {
		slog.Error("update movie", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update movie")
		return
	}

	renderJSON(w, http.StatusCreated, videoToAPI(movie))
}

// DeleteMovie handles DELETE /movies/{id}
//
// Requires power tier or ownership. Also deletes the movie's versions as a
// best-effort second step.
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	movie, err := db.GetMovie(h.DB, id)
	if err != nil {
		slog.Error("get movie", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get movie")
		return
	}
	if movie == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &movie.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	if err := db.DeleteMovie(h.DB, id); err != nil {
		slog.Error("delete movie", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete movie")
		return
	}
	// The parent is gone at this point; a failed cascade is logged, not
	// rolled back.
	if err := db.DeleteVersionsByVideo(h.DB, id); err != nil {
		slog.Error("cascade delete movie versions", "movie_id", id, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateMovieVersion handles POST /movies/{id}/versions
func (h *Handler) CreateMovieVersion(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	movie, err := db.GetMovie(h.DB, id)
	if err != nil {
		slog.Error("get movie", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get movie")
		return
	}
	if movie == nil {
		renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"id must be a valid movie id")
		return
	}

	var body versionRequest
	if !h.decodeValid(w, r, &body) {
		return
	}
	body.applyDefaults()

	version := &model.Version{
		ID:          uuid.New().String(),
		VideoBaseID: id,
		DiscType:    body.DiscType,
		Region:      body.Region,
		SubType:     body.SubType,
		Timestamps:  body.Timestamps,
		Description: body.Description,
		Track:       body.Track,
		Metadata:    model.NewMetadata(actor.ID, time.Now()),
	}
	if err := db.CreateVersion(h.DB, version); err != nil {
		slog.Error("create movie version", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create version")
		return
	}

	renderJSON(w, http.StatusCreated, idResponse{ID: version.ID})
}

// ListMovieVersions handles GET /movies/{id}/versions
func (h *Handler) ListMovieVersions(w http.ResponseWriter, r *http.Request) {
	h.listVersionsOf(w, r)
}

// DeleteMovieVersions handles DELETE /movies/{id}/versions
//
// Requires power tier or ownership of the movie.
func (h *Handler) DeleteMovieVersions(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	movie, err := db.GetMovie(h.DB, id)
	if err != nil {
		slog.Error("get movie", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get movie")
		return
	}
	if movie == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &movie.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	if err := db.DeleteVersionsByVideo(h.DB, id); err != nil {
		slog.Error("delete movie versions", "movie_id", id, "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete versions")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
