package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/api"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/storage"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.API.Addr = addr
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			srv := &api.Server{
				Rules:           reg,
				UserStore:       db,
				Metrics:         api.NewMetrics(),
				Logger:          a.logger,
				AllowedOrigins:  a.cfg.API.AllowedOrigins,
				SessionDuration: a.cfg.SessionDuration(),
				RequireAuth:     a.cfg.API.RequireAuth,
				MaxUploadBytes:  a.cfg.API.MaxUploadBytes,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go a.purgeSessions(ctx, db, time.Hour)

			hs := &http.Server{
				Addr:              a.cfg.API.Addr,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       60 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				a.logger.Info("api listening", "addr", hs.Addr, "rules", reg.Len(),
					"require_auth", srv.RequireAuth, "db", a.cfg.Database.DSN)
				errc <- hs.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from api.addr, :8080)")
	return cmd
}

func (a *app) openDB() (*storage.DB, error) {
	db, err := storage.OpenSQLite(a.cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// purgeSessions removes expired sessions at startup and then every interval
// until ctx is done.
func (a *app) purgeSessions(ctx context.Context, db *storage.DB, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		n, err := db.PurgeExpiredSessions(time.Now().UTC())
		if err != nil {
			a.logger.Warn("session purge failed", "err", err)
		} else if n > 0 {
			a.logger.Info("expired sessions purged", "count", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
