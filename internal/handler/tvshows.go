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

// CreateTVShow handles POST /tv_shows
func (h *Handler) CreateTVShow(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	var body videoRequest
	if !h.decodeValid(w, r, &body) {
		return
	}

	show := &model.Video{
		ID:          uuid.New().String(),
		Title:       body.Title,
		ImdbID:      body.ImdbID,
		Description: body.Description,
		Metadata:    model.NewMetadata(actor.ID, time.Now()),
	}
	if err := db.CreateTVShow(h.DB, show); err != nil {
		slog.Error("create tv show", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create tv show")
		return
	}

	renderJSON(w, http.StatusCreated, idResponse{ID: show.ID})
}

// GetTVShow handles GET /tv_shows/{id}
func (h *Handler) GetTVShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	show, err := db.GetTVShow(h.DB, id)
	if err != nil {
		slog.Error("get tv show", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get tv show")
		return
	}
	if show == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "tv show not found")
		return
	}

	renderJSON(w, http.StatusOK, videoToAPI(show))
}

// ListTVShows handles GET /tv_shows?start=&page_length=
func (h *Handler) ListTVShows(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageParams(w, r)
	if !ok {
		return
	}

	shows, err := db.ListTVShows(h.DB, limit, offset)
	if err != nil {
		slog.Error("list tv shows", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list tv shows")
		return
	}

	result := make([]apiVideo, len(shows))
	for i := range shows {
		result[i] = videoToAPI(&shows[i])
	}
	renderJSON(w, http.StatusOK, result)
}

// UpdateTVShow handles PUT /tv_shows/{id}
//
// Requires power tier or ownership of the show.
func (h *Handler) UpdateTVShow(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body videoRequest
	if !h.decodeValid(w, r, &body) {
		return
	}

	old, err := db.GetTVShow(h.DB, id)
	if err != nil {
		slog.Error("get tv show", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get tv show")
		return
	}
	if old == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "tv show not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &old.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	show := &model.Video{
		ID:          id,
		Title:       body.Title,
		ImdbID:      body.ImdbID,
		Description: body.Description,
		Metadata:    old.Metadata.Modified(actor.ID, time.Now()),
	}
	if err := db.UpdateTVShow(h.DB, show); err != nil {
		slog.Error("update tv show", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update tv show")
		return
	}

	renderJSON(w, http.StatusCreated, videoToAPI(show))
}

// DeleteTVShow handles DELETE /tv_shows/{id}
//
// Requires power tier or ownership. Cascades to the show's episodes and
// each episode's versions, best effort.
func (h *Handler) DeleteTVShow(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	show, err := db.GetTVShow(h.DB, id)
	if err != nil {
		slog.Error("get tv show", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get tv show")
		return
	}
	if show == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "tv show not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &show.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	episodeIDs, err := db.ListEpisodeIDsByShow(h.DB, id)
	if err != nil {
		slog.Error("list episode ids", "tv_show_id", id, "error", err)
		episodeIDs = nil
	}

	if err := db.DeleteTVShow(h.DB, id); err != nil {
		slog.Error("delete tv show", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete tv show")
		return
	}
	if err := db.DeleteEpisodesByShow(h.DB, id); err != nil {
		slog.Error("cascade delete episodes", "tv_show_id", id, "error", err)
	}
	for _, episodeID := range episodeIDs {
		if err := db.DeleteVersionsByVideo(h.DB, episodeID); err != nil {
			slog.Error("cascade delete episode versions", "episode_id", episodeID, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateEpisode handles POST /tv_shows/{id}/episodes
func (h *Handler) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	show, err := db.GetTVShow(h.DB, id)
	if err != nil {
		slog.Error("get tv show", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get tv show")
		return
	}
	if show == nil {
		renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"id must be a valid tv show id")
		return
	}

	var body episodeRequest
	if !h.decodeValid(w, r, &body) {
		return
	}

	episode := &model.Episode{
		ID:          uuid.New().String(),
		TVShowID:    id,
		Title:       body.Title,
		ImdbID:      body.ImdbID,
		Description: body.Description,
		Season:      body.Season,
		Episode:     body.Episode,
		Metadata:    model.NewMetadata(actor.ID, time.Now()),
	}
	if err := db.CreateEpisode(h.DB, episode); err != nil {
		slog.Error("create episode", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create episode")
		return
	}

	renderJSON(w, http.StatusCreated, idResponse{ID: episode.ID})
}

// GetEpisode handles GET /tv_shows/episodes/{id}
func (h *Handler) GetEpisode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	episode, err := db.GetEpisode(h.DB, id)
	if err != nil {
		slog.Error("get episode", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get episode")
		return
	}
	if episode == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "episode not found")
		return
	}

	renderJSON(w, http.StatusOK, episodeToAPI(episode))
}

// ListEpisodes handles GET /tv_shows/{id}/episodes
func (h *Handler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	episodes, err := db.ListEpisodesByShow(h.DB, id)
	if err != nil {
		slog.Error("list episodes", "tv_show_id", id, "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list episodes")
		return
	}

	result := make([]apiEpisode, len(episodes))
	for i := range episodes {
		result[i] = episodeToAPI(&episodes[i])
	}
	renderJSON(w, http.StatusOK, result)
}

// UpdateEpisode handles PUT /tv_shows/episodes/{id}
//
// Requires power tier or ownership of the episode.
func (h *Handler) UpdateEpisode(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body episodeRequest
	if !h.decodeValid(w, r, &body) {
		return
	}

	old, err := db.GetEpisode(h.DB, id)
	if err != nil {
		slog.Error("get episode", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get episode")
		return
	}
	if old == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "episode not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &old.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	episode := &model.Episode{
		ID:          id,
		TVShowID:    old.TVShowID,
		Title:       body.Title,
		ImdbID:      body.ImdbID,
		Description: body.Description,
		Season:      body.Season,
		Episode:     body.Episode,
		Metadata:    old.Metadata.Modified(actor.ID, time.Now()),
	}
	if err := db.UpdateEpisode(h.DB, episode); err != nil {
		slog.Error("update episode", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update episode")
		return
	}

	renderJSON(w, http.StatusCreated, episodeToAPI(episode))
}

// DeleteEpisode handles DELETE /tv_shows/episodes/{id}
//
// Requires power tier or ownership. Cascades to the episode's versions.
func (h *Handler) DeleteEpisode(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	episode, err := db.GetEpisode(h.DB, id)
	if err != nil {
		slog.Error("get episode", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get episode")
		return
	}
	if episode == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "episode not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &episode.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	if err := db.DeleteEpisode(h.DB, id); err != nil {
		slog.Error("delete episode", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete episode")
		return
	}
	if err := db.DeleteVersionsByVideo(h.DB, id); err != nil {
		slog.Error("cascade delete episode versions", "episode_id", id, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteEpisodes handles DELETE /tv_shows/{id}/episodes
//
// Requires power tier or ownership of the show.
func (h *Handler) DeleteEpisodes(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	show, err := db.GetTVShow(h.DB, id)
	if err != nil {
		slog.Error("get tv show", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get tv show")
		return
	}
	if show == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "tv show not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &show.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	episodeIDs, err := db.ListEpisodeIDsByShow(h.DB, id)
	if err != nil {
		slog.Error("list episode ids", "tv_show_id", id, "error", err)
		episodeIDs = nil
	}

	if err := db.DeleteEpisodesByShow(h.DB, id); err != nil {
		slog.Error("delete episodes", "tv_show_id", id, "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete episodes")
		return
	}
	for _, episodeID := range episodeIDs {
		if err := db.DeleteVersionsByVideo(h.DB, episodeID); err != nil {
			slog.Error("cascade delete episode versions", "episode_id", episodeID, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateEpisodeVersion handles POST /tv_shows/episodes/{id}/versions
func (h *Handler) CreateEpisodeVersion(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	episode, err := db.GetEpisode(h.DB, id)
	if err != nil {
		slog.Error("get episode", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get episode")
		return
	}
	if episode == nil {
		renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"id must be a valid episode id")
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
		slog.Error("create episode version", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create version")
		return
	}

	renderJSON(w, http.StatusCreated, idResponse{ID: version.ID})
}

// ListEpisodeVersions handles GET /tv_shows/episodes/{id}/versions
func (h *Handler) ListEpisodeVersions(w http.ResponseWriter, r *http.Request) {
	h.listVersionsOf(w, r)
}

// DeleteEpisodeVersions handles DELETE /tv_shows/episodes/{id}/versions
//
// Requires power tier or ownership of the episode.
func (h *Handler) DeleteEpisodeVersions(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	episode, err := db.GetEpisode(h.DB, id)
	if err != nil {
		slog.Error("get episode", "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get episode")
		return
	}
	if episode == nil {
		renderJSONError(w, http.StatusNotFound, "NOT_FOUND", "episode not found")
		return
	}
	if err := auth.Authorize(actor, model.AccessPower, &episode.Metadata); err != nil {
		renderAuthorizeError(w, err)
		return
	}

	if err := db.DeleteVersionsByVideo(h.DB, id); err != nil {
		slog.Error("delete episode versions", "episode_id", id, "error", err)
		renderJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete versions")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
