package broker

import (
	"context"

	"github.com/sirupsen/logrus"

	"signalexecutor/src/model"
)

// AdjustFunc turns a parsed signal into the levels that will be sent, given
// the live quote.
type AdjustFunc func(signal model.TradeSignal, quote model.BrokerQuote) model.AdjustedSignal

// TradeResult is what one trade attempt produced. Quote is nil when the
// terminal could not provide one, and Adjusted then carries the signal's own
// levels.
type TradeResult struct {
	Adjusted model.AdjustedSignal
	Quote    *model.BrokerQuote
	Result   model.OrderResult
}

// Trader runs a whole trade attempt (select, quote, adjust, order_send) inside
// a single terminal session.
type Trader struct {
	terminal Terminal
	quotes   *QuoteAdapter
	gateway  *Gateway
	logger   *logrus.Entry
}

func NewTrader(terminal Terminal, config Config, logger *logrus.Entry) *Trader {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Trader{
		terminal: terminal,
		quotes:   NewQuoteAdapter(terminal, logger),
		gateway:  NewGateway(config, logger),
		logger:   logger,
	}
}

// Execute quotes signal.Symbol, lets adjust fix the levels and submits the
// order once. Broker failures before submission come back as an Unavailable
// result; the session is always released before returning.
func (t *Trader) Execute(ctx context.Context, signal model.TradeSignal, adjust AdjustFunc) TradeResult {
	var out TradeResult

	err := WithSession(ctx, t.terminal, func(s *Session) error {
		quote, err := t.quotes.read(ctx, s, signal.Symbol)
		if err != nil {
			return err
		}
		out.Quote = &quote
		out.Adjusted = adjust(signal, quote)

		req := t.gateway.BuildOrder(out.Adjusted, quote.ExecutionPrice(signal.Action))
		out.Result = t.gateway.send(ctx, s, req)
		return nil
	})
	if err != nil {
		ue := AsUnavailable(err)
		t.logger.WithError(err).WithField("symbol", signal.Symbol).Warn("broker unavailable, order not submitted")
		return TradeResult{
			Adjusted: model.Unadjusted(signal),
			Result:   model.Unavailable(ue.Reason),
		}
	}
	return out
}
