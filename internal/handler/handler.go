package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nlowell/fsubs/internal/config"
)

type Handler struct {
	DB       *sql.DB
	Cfg      *config.Config
	validate *validator.Validate
}

func New(database *sql.DB, cfg *config.Config) *Handler {
	return &Handler{
		DB:       database,
		Cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type jsonError struct {
	Error jsonErrorBody `json:"error"`
}

type jsonErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func renderJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func renderJSONError(w http.ResponseWriter, status int, code, message string) {
	renderJSON(w, status, jsonError{Error: jsonErrorBody{Code: code, Message: message}})
}

// decodeValid decodes the JSON body into dst and runs struct validation.
// On failure it writes the error response and returns false.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		renderJSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			msg := fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag())
			if fe.Param() != "" {
				msg += "=" + fe.Param()
			}
			renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", msg)
			return false
		}
		renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed")
		return false
	}
	return true
}

// pathID pulls a path parameter and rejects anything that is not a valid
// store id before any store call is made.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			name+" must be a valid id")
		return "", false
	}
	return id, true
}

// pageParams reads the start/page_length query parameters, defaulting to
// the first 100 records.
func pageParams(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	offset = 0
	limit = 100
	if v := r.URL.Query().Get("start"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
				"start must be a non-negative integer")
			return 0, 0, false
		}
		offset = n
	}
	if v := r.URL.Query().Get("page_length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			renderJSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
				"page_length must be a positive integer")
			return 0, 0, false
		}
		limit = n
	}
	return limit, offset, true
}
