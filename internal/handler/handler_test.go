package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	fsubs "github.com/nlowell/fsubs"
	"github.com/nlowell/fsubs/internal/config"
	"github.com/nlowell/fsubs/internal/db"
	"github.com/nlowell/fsubs/internal/model"
)

func newTestServer(t *testing.T) (*Handler, http.Handler) {
	t.Helper()

	database, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(database, fsubs.MigrationFS))

	cfg := &config.Config{
		App: config.AppConfig{
			Addr:            ":0",
			JWTSecret:       "test-secret-test-secret-test-sec",
			JWTExpiresHours: 1,
			CORSOrigins:     []string{"http://localhost:4200"},
		},
	}

	h := New(database, cfg)
	rl := NewRateLimiter(1000, 1000)
	t.Cleanup(rl.Stop)
	return h, h.Routes(rl)
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

// registerUser creates a user through the public endpoint and returns its id.
func registerUser(t *testing.T, router http.Handler, username, email, password string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/users", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp idResponse
	decodeBody(t, rec, &resp)
	return resp.ID
}

// login exchanges credentials for a bearer token.
func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/authenticate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// promote raises a user's tier directly in the store, the way an operator
// would seed the first admin.
func promote(t *testing.T, h *Handler, username string, access model.Access) {
	t.Helper()
	u, err := db.GetUserByUsername(h.DB, username)
	require.NoError(t, err)
	require.NotNil(t, u)
	u.Access = access
	require.NoError(t, db.UpdateUser(h.DB, u))
}

// selfID looks up the acting user's id through /users/self.
func selfID(t *testing.T, router http.Handler, token string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodGet, "/users/self", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var u apiUser
	decodeBody(t, rec, &u)
	return u.ID
}

// newActor registers a user, optionally promotes it, and returns a token.
func newActor(t *testing.T, h *Handler, router http.Handler, username string, access model.Access) string {
	t.Helper()
	registerUser(t, router, username, username+"@example.com", "correct horse battery")
	if access != model.AccessBasic {
		promote(t, h, username, access)
	}
	return login(t, router, username, "correct horse battery")
}

func TestMalformedPathID(t *testing.T) {
	h, router := newTestServer(t)
	token := newActor(t, h, router, "alice", model.AccessBasic)

	for _, path := range []string{
		"/movies/not-a-uuid",
		"/tv_shows/not-a-uuid",
		"/tv_shows/episodes/not-a-uuid",
		"/movies/versions/not-a-uuid",
	} {
		rec := doJSON(t, router, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
	}
}
