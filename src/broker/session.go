package broker

import (
	"context"

	logger "github.com/sirupsen/logrus"
)

// Session is an initialized terminal connection that is only valid inside the
// WithSession callback.
type Session struct {
	Terminal
}

// WithSession initializes the terminal, runs fn and shuts the terminal down on
// every exit path, including a panic in fn. A failed Initialize is reported as
// an UnavailableError and fn is not called.
func WithSession(ctx context.Context, terminal Terminal, fn func(s *Session) error) (err error) {
	if err := terminal.Initialize(ctx); err != nil {
		logger.WithError(err).Warn("terminal initialize failed")
		return initializeFailed(err)
	}

	defer func() {
		// shutdown must run even if ctx was cancelled mid-call
		if sErr := terminal.Shutdown(context.WithoutCancel(ctx)); sErr != nil {
			logger.WithError(sErr).Warn("terminal shutdown failed")
		}
	}()

	return fn(&Session{Terminal: terminal})
}
