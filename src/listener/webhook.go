package listener

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"signalexecutor/src/connectors"
	"signalexecutor/src/pipeline"
	"signalexecutor/src/security"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Webhook receives Bot API updates over HTTP. The request returns only after
// the message has been fully processed.
type Webhook struct {
	handler    pipeline.Handler
	source     string
	secretHash string
	logger     *logrus.Entry
}

func NewWebhook(handler pipeline.Handler, source, secretHash string, logger *logrus.Entry) *Webhook {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Webhook{
		handler:    handler,
		source:     source,
		secretHash: secretHash,
		logger:     logger.WithField("listener", "webhook"),
	}
}

func (h *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := security.VerifySecretToken(h.secretHash, r.Header.Get(secretTokenHeader)); err != nil {
		h.logger.WithField("remote", r.RemoteAddr).Warn("webhook call with invalid secret token")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var upd connectors.TelegramUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.logger.WithError(err).Warn("malformed webhook update")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if msg, ok := inboundFromUpdate(h.source, upd); ok {
		// the trade runs to completion even if Telegram drops the request
		h.handler.Handle(context.WithoutCancel(r.Context()), msg)
	}

	w.WriteHeader(http.StatusOK)
}
