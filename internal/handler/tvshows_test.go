package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nlowell/fsubs/internal/model"
)

func createShow(t *testing.T, router http.Handler, token, title string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/tv_shows", token, map[string]string{
		"title": title,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp idResponse
	decodeBody(t, rec, &resp)
	return resp.ID
}

func createEpisode(t *testing.T, router http.Handler, token, showID, title string, season, episode int) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/tv_shows/"+showID+"/episodes", token,
		map[string]interface{}{"title": title, "season": season, "episode": episode})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp idResponse
	decodeBody(t, rec, &resp)
	return resp.ID
}

func TestEpisodeRoundTrip(t *testing.T) {
	h, router := newTestServer(t)
	token := newActor(t, h, router, "alice", model.AccessBasic)

	showID := createShow(t, router, token, "The Expanse")
	epID := createEpisode(t, router, token, showID, "Dulcinea", 1, 1)
	createEpisode(t, router, token, showID, "The Big Empty", 1, 2)

	rec := doJSON(t, router, http.MethodGet, "/tv_shows/episodes/"+epID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var episode apiEpisode
	decodeBody(t, rec, &episode)
	require.Equal(t, "Dulcinea", episode.Title)
	require.Equal(t, showID, episode.TVShowID)
	require.Equal(t, 1, episode.Season)
	require.Equal(t, 1, episode.Episode)

	rec = doJSON(t, router, http.MethodGet, "/tv_shows/"+showID+"/episodes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var episodes []apiEpisode
	decodeBody(t, rec, &episodes)
	require.Len(t, episodes, 2)
	require.Equal(t, "Dulcinea", episodes[0].Title)
}

func TestEpisodeUnderMissingShow(t *testing.T) {
	h, router := newTestServer(t)
	token := newActor(t, h, router, "alice", model.AccessBasic)

	rec := doJSON(t, router, http.MethodPost,
		"/tv_shows/00000000-0000-0000-0000-000000000000/episodes", token,
		map[string]interface{}{"title": "Orphan", "season": 1, "episode": 1})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEpisodeRejectsNegativeSeason(t *testing.T) {
	h, router := newTestServer(t)
	token := newActor(t, h, router, "alice", model.AccessBasic)
	showID := createShow(t, router, token, "The Expanse")

	rec := doJSON(t, router, http.MethodPost, "/tv_shows/"+showID+"/episodes", token,
		map[string]interface{}{"title": "Impossible", "season": -1, "episode": 1})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Nothing was written.
	rec = doJSON(t, router, http.MethodGet, "/tv_shows/"+showID+"/episodes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var episodes []apiEpisode
	decodeBody(t, rec, &episodes)
	require.Empty(t, episodes)
}

func TestEpisodeUpdateKeepsShow(t *testing.T) {
	h, router := newTestServer(t)
	token := newActor(t, h, router, "alice", model.AccessBasic)
	showID := createShow(t, router, token, "The Expanse")
	epID := createEpisode(t, router, token, showID, "Dulcinea", 1, 1)

	rec := doJSON(t, router, http.MethodPut, "/tv_shows/episodes/"+epID, token,
		map[string]interface{}{"title": "Dulcinea (redux)", "season": 1, "episode": 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var updated apiEpisode
	decodeBody(t, rec, &updated)
	require.Equal(t, showID, updated.TVShowID)
	require.Equal(t, "Dulcinea (redux)", updated.Title)
}

func TestShowDeleteCascades(t *testing.T) {
	h, router := newTestServer(t)
	token := newActor(t, h, router, "alice", model.AccessBasic)

	showID := createShow(t, router, token, "The Expanse")
	epID := createEpisode(t, router, token, showID, "Dulcinea", 1, 1)

	rec := doJSON(t, router, http.MethodPost, "/tv_shows/episodes/"+epID+"/versions", token,
		map[string]interface{}{"disc_type": "BD", "region": "A", "sub_type": "Forced"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var version idResponse
	decodeBody(t, rec, &version)

	rec = doJSON(t, router, http.MethodDelete, "/tv_shows/"+showID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/tv_shows/"+showID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/tv_shows/episodes/"+epID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/tv_shows/episodes/versions/"+version.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEpisodeDeleteCascadesVersions(t *testing.T) {
	h, router := newTestServer(t)
	token := newActor(t, h, router, "alice", model.AccessBasic)

	showID := createShow(t, router, token, "The Expanse")
	epID := createEpisode(t, router, token, showID, "Dulcinea", 1, 1)

	rec := doJSON(t, router, http.MethodPost, "/tv_shows/episodes/"+epID+"/versions", token,
		map[string]interface{}{"disc_type": "DVD"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var version idResponse
	decodeBody(t, rec, &version)

	rec = doJSON(t, router, http.MethodDelete, "/tv_shows/episodes/"+epID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/tv_shows/episodes/versions/"+version.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The show itself survives.
	rec = doJSON(t, router, http.MethodGet, "/tv_shows/"+showID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestShowUpdateAuthorization(t *testing.T) {
	h, router := newTestServer(t)
	owner := newActor(t, h, router, "owner", model.AccessBasic)
	other := newActor(t, h, router, "other", model.AccessBasic)

	showID := createShow(t, router, owner, "The Expanse")

	rec := doJSON(t, router, http.MethodDelete, "/tv_shows/"+showID, other, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/tv_shows/"+showID, other,
		map[string]string{"title": "Hijacked"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}
