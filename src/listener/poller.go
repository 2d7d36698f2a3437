package listener

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"signalexecutor/src/connectors"
	"signalexecutor/src/pipeline"
)

type UpdatesClient interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]connectors.TelegramUpdate, error)
}

// Poller long-polls the Bot API and feeds each source message to the handler,
// waiting for it to finish before taking the next one.
type Poller struct {
	client     UpdatesClient
	handler    pipeline.Handler
	source     string
	timeout    time.Duration
	errorDelay time.Duration
	logger     *logrus.Entry
}

func NewPoller(client UpdatesClient, handler pipeline.Handler, source string, timeout, errorDelay time.Duration, logger *logrus.Entry) *Poller {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Poller{
		client:     client,
		handler:    handler,
		source:     source,
		timeout:    timeout,
		errorDelay: errorDelay,
		logger:     logger.WithField("listener", "poll"),
	}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64

	p.logger.WithField("source", p.source).Info("listening for trade signals")
	for {
		if ctx.Err() != nil {
			p.logger.Info("poller stopped")
			return nil
		}

		updates, err := p.client.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.WithError(err).Warn("getUpdates failed")
			select {
			case <-ctx.Done():
			case <-time.After(p.errorDelay):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			msg, ok := inboundFromUpdate(p.source, upd)
			if !ok {
				continue
			}
			p.handler.Handle(context.WithoutCancel(ctx), msg)
		}
	}
}
