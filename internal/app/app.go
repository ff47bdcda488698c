package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	fsubs "github.com/nlowell/fsubs"
	"github.com/nlowell/fsubs/internal/config"
	"github.com/nlowell/fsubs/internal/db"
	"github.com/nlowell/fsubs/internal/handler"
)

func Run(ctx context.Context, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DB.DataDir, 0755); err != nil {
		return err
	}

	database, err := db.Open(cfg.DB.DataDir)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(database, fsubs.MigrationFS); err != nil {
		return err
	}
	slog.Info("database ready")

	// Rate limiter for token issuance: 5 requests/minute, burst of 5
	authRL := handler.NewRateLimiter(5.0/60.0, 5)
	defer authRL.Stop()

	h := handler.New(database, cfg)
	router := h.Routes(authRL)

	srv := &http.Server{
		Addr:    cfg.App.Addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		srv.Shutdown(context.Background())
	}()

	slog.Info("server starting", "addr", cfg.App.Addr, "base_url", cfg.App.BaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
