package listener

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"signalexecutor/src/model"
	"signalexecutor/src/pipeline"
)

// RelayFrame is one chat message pushed by the relay.
type RelayFrame struct {
	ID     flexibleID `json:"id"`
	ChatID flexibleID `json:"chat_id"`
	Chat   string     `json:"chat_username,omitempty"`
	Sender string     `json:"sender"`
	Text   string     `json:"text"`
	Date   int64      `json:"date,omitempty"`
}

// flexibleID accepts ids sent either as JSON strings or numbers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// Relay consumes chat messages from a websocket relay that forwards a user
// session's channel feed. It reconnects after reconnectDelay until ctx ends.
type Relay struct {
	url            string
	header         http.Header
	handler        pipeline.Handler
	source         string
	reconnectDelay time.Duration
	dialer         *websocket.Dialer
	logger         *logrus.Entry
}

func NewRelay(url, token string, handler pipeline.Handler, source string, reconnectDelay time.Duration, logger *logrus.Entry) *Relay {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return &Relay{
		url:            url,
		header:         header,
		handler:        handler,
		source:         source,
		reconnectDelay: reconnectDelay,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 15 * time.Second,
			Proxy:            http.ProxyFromEnvironment,
		},
		logger: logger.WithField("listener", "relay"),
	}
}

func (r *Relay) Run(ctx context.Context) error {
	r.logger.WithField("source", r.source).Info("listening for trade signals")
	for {
		err := r.consume(ctx)
		if ctx.Err() != nil {
			r.logger.Info("relay stopped")
			return nil
		}
		r.logger.WithError(err).Warnf("relay connection lost, reconnecting in %s", r.reconnectDelay)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.reconnectDelay):
		}
	}
}

func (r *Relay) consume(ctx context.Context) error {
	conn, _, err := r.dialer.DialContext(ctx, r.url, r.header)
	if err != nil {
		return fmt.Errorf("ws dial failed: %w", err)
	}
	defer conn.Close()

	// unblock ReadMessage when ctx ends
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	r.logger.WithField("url", r.url).Info("relay connected")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("ws read failed: %w", err)
		}

		var frame RelayFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			r.logger.WithError(err).Warn("skipping malformed relay frame")
			continue
		}
		msg, ok := r.inbound(frame)
		if !ok {
			continue
		}
		r.handler.Handle(context.WithoutCancel(ctx), msg)
	}
}

func (r *Relay) inbound(f RelayFrame) (model.InboundMessage, bool) {
	if f.Text == "" || !matchesSource(r.source, string(f.ChatID), f.Chat) {
		return model.InboundMessage{}, false
	}
	received := time.Now().UTC()
	if f.Date > 0 {
		received = time.Unix(f.Date, 0).UTC()
	}
	return model.InboundMessage{
		ID:         string(f.ID),
		ChatID:     string(f.ChatID),
		Sender:     f.Sender,
		Text:       f.Text,
		ReceivedAt: received,
	}, true
}
