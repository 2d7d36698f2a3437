package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"signalexecutor/src/broker"
	"signalexecutor/src/model"
	"signalexecutor/src/report"
	"signalexecutor/src/risk"
)

type SignalParser interface {
	Parse(text string) (model.TradeSignal, bool)
}

// TradeExecutor runs one trade attempt against the broker in a single
// terminal session.
type TradeExecutor interface {
	Execute(ctx context.Context, signal model.TradeSignal, adjust broker.AdjustFunc) broker.TradeResult
}

// Notifier delivers the report text to a chat. Implementations make a single
// attempt.
type Notifier interface {
	Send(ctx context.Context, chatID string, text string) error
}

// Outcome describes what happened to one parsed message.
type Outcome struct {
	TraceID   string
	Signal    model.TradeSignal
	Adjusted  model.AdjustedSignal
	Quote     *model.BrokerQuote
	Result    model.OrderResult
	Report    string
	NotifyErr error
}

type Orchestrator struct {
	logger       *logrus.Entry
	parser       SignalParser
	trader       TradeExecutor
	notifier     Notifier
	notifyChatID string
	newTraceID   func() string
}

func NewOrchestrator(
	logger *logrus.Entry,
	parser SignalParser,
	trader TradeExecutor,
	notifier Notifier,
	notifyChatID string,
) *Orchestrator {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Orchestrator{
		logger:       logger,
		parser:       parser,
		trader:       trader,
		notifier:     notifier,
		notifyChatID: notifyChatID,
		newTraceID:   uuid.NewString,
	}
}

// Handle runs one message through parse, quote, adjust, submit and notify.
// It returns nil when the message carries no signal. Every failure stays
// inside the returned Outcome; nothing is retried.
func (o *Orchestrator) Handle(ctx context.Context, msg model.InboundMessage) *Outcome {
	log := o.logger.WithFields(logrus.Fields{
		"message_id": msg.ID,
		"chat_id":    msg.ChatID,
		"sender":     msg.Sender,
	})
	log.WithField("text", msg.Text).Info("new message")

	signal, ok := o.parser.Parse(msg.Text)
	if !ok {
		log.Info("no valid trade signal detected")
		return nil
	}

	out := &Outcome{TraceID: o.newTraceID(), Signal: signal}
	log = log.WithField("trace_id", out.TraceID)
	log.WithFields(logrus.Fields{
		"action":     signal.Action,
		"symbol":     signal.Symbol,
		"entry_low":  signal.EntryLow.String(),
		"entry_high": signal.EntryHigh.String(),
		"sl":         signal.StopLoss.String(),
		"tp1":        signal.TakeProfit1.String(),
		"tp2":        signal.TakeProfit2.String(),
	}).Info("trade signal detected")

	trade := o.trader.Execute(ctx, signal, o.adjuster(log))
	out.Adjusted, out.Quote, out.Result = trade.Adjusted, trade.Quote, trade.Result
	if out.Quote == nil {
		log.WithField("reason", out.Result.Reason).Warn("no quote, order not submitted")
	}
	out.Report = report.Format(out.Signal, out.Adjusted, out.Result)

	if err := o.notifier.Send(ctx, o.notifyChatID, out.Report); err != nil {
		out.NotifyErr = err
		log.WithError(err).Error("failed to send notification")
	} else {
		log.WithField("result", out.Result.String()).Info("notification sent")
	}

	return out
}

// adjuster widens SL and TP1 to the broker minimum and logs when it had to.
func (o *Orchestrator) adjuster(log *logrus.Entry) broker.AdjustFunc {
	return func(signal model.TradeSignal, quote model.BrokerQuote) model.AdjustedSignal {
		adjusted := risk.Adjust(signal, quote)
		if !adjusted.StopLoss.Equal(signal.StopLoss) || !adjusted.TakeProfit1.Equal(signal.TakeProfit1) {
			log.WithFields(logrus.Fields{
				"sl":  adjusted.StopLoss.String(),
				"tp1": adjusted.TakeProfit1.String(),
			}).Info("levels widened to broker minimum stop distance")
		}
		return adjusted
	}
}
