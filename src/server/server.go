package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"
)

// NewRouter returns the router with the public healthcheck and the webhook
// handler mounted at webhookPath.
func NewRouter(webhookPath string, webhook http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error(" \"/healthcheck error")
		}
	})

	if webhook != nil {
		r.Method(http.MethodPost, webhookPath, webhook)
	}

	return r
}

// StartServer serves handler on port until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, port string, handler http.Handler) error {
	addr := ":" + port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("Server crashed")
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown error")
		return err
	}
	return nil
}
