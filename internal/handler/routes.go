package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Routes(authRL *RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.Cfg.App.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes. Token issuance sits behind the auth rate limiter so
	// credential guessing stays slow.
	r.Group(func(r chi.Router) {
		r.Use(authRL.Middleware)
		r.Post("/authenticate", h.Authenticate)
	})
	r.Post("/users", h.CreateUser)

	// Public reads.
	r.Get("/movies", h.ListMovies)
	r.Get("/movies/{id}", h.GetMovie)
	r.Get("/movies/{id}/versions", h.ListMovieVersions)
	r.Get("/movies/versions/{id}", h.GetVersion)

	r.Get("/tv_shows", h.ListTVShows)
	r.Get("/tv_shows/{id}", h.GetTVShow)
	r.Get("/tv_shows/{id}/episodes", h.ListEpisodes)
	r.Get("/tv_shows/episodes/{id}", h.GetEpisode)
	r.Get("/tv_shows/episodes/{id}/versions", h.ListEpisodeVersions)
	r.Get("/tv_shows/episodes/versions/{id}", h.GetVersion)

	// Everything that writes, plus user lookups, needs a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/authenticate", h.CheckToken)

		r.Post("/movies", h.CreateMovie)
		r.Put("/movies/{id}", h.UpdateMovie)
		r.Delete("/movies/{id}", h.DeleteMovie)
		r.Post("/movies/{id}/versions", h.CreateMovieVersion)
		r.Delete("/movies/{id}/versions", h.DeleteMovieVersions)
		r.Put("/movies/versions/{id}", h.UpdateVersion)
		r.Delete("/movies/versions/{id}", h.DeleteVersion)

		r.Post("/tv_shows", h.CreateTVShow)
		r.Put("/tv_shows/{id}", h.UpdateTVShow)
		r.Delete("/tv_shows/{id}", h.DeleteTVShow)
		r.Post("/tv_shows/{id}/episodes", h.CreateEpisode)
		r.Delete("/tv_shows/{id}/episodes", h.DeleteEpisodes)
		r.Put("/tv_shows/episodes/{id}", h.UpdateEpisode)
		r.Delete("/tv_shows/episodes/{id}", h.DeleteEpisode)
		r.Post("/tv_shows/episodes/{id}/versions", h.CreateEpisodeVersion)
		r.Delete("/tv_shows/episodes/{id}/versions", h.DeleteEpisodeVersions)
		r.Put("/tv_shows/episodes/versions/{id}", h.UpdateVersion)
		r.Delete("/tv_shows/episodes/versions/{id}", h.DeleteVersion)

		r.Get("/users/self", h.GetSelf)
		r.Get("/users/username/{username}", h.GetUserByUsername)
		r.Get("/users/userid/{id}", h.GetUserByID)
		r.Put("/users/userid/{id}", h.UpdateUser)
		r.Patch("/users/userid/{id}", h.PatchUser)
		r.Delete("/users/userid/{id}", h.DeleteUser)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAdmin)
			r.Get("/users", h.ListUsers)
		})
	})

	return r
}
