package broker

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"signalexecutor/src/model"
)

type QuoteAdapter struct {
	terminal Terminal
	logger   *logrus.Entry
}

func NewQuoteAdapter(terminal Terminal, logger *logrus.Entry) *QuoteAdapter {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &QuoteAdapter{terminal: terminal, logger: logger}
}

// GetQuote opens a terminal session, reads the current tick and stop level for
// symbol and closes the session before returning. Failures are returned as
// *UnavailableError.
func (q *QuoteAdapter) GetQuote(ctx context.Context, symbol string) (model.BrokerQuote, error) {
	var quote model.BrokerQuote

	err := WithSession(ctx, q.terminal, func(s *Session) error {
		var err error
		quote, err = q.read(ctx, s, symbol)
		return err
	})
	if err != nil {
		q.logger.WithError(err).WithField("symbol", symbol).Warn("quote unavailable")
		return model.BrokerQuote{}, err
	}

	q.logger.WithFields(logrus.Fields{
		"symbol":            symbol,
		"bid":               quote.Bid.String(),
		"ask":               quote.Ask.String(),
		"min_stop_distance": quote.MinStopDistance.String(),
	}).Debug("quote fetched")

	return quote, nil
}

// read selects symbol and reads its stop level and tick inside an open
// session.
func (q *QuoteAdapter) read(ctx context.Context, s *Session, symbol string) (model.BrokerQuote, error) {
	if err := s.SelectSymbol(ctx, symbol); err != nil {
		return model.BrokerQuote{}, symbolSelectFailed(symbol, err)
	}

	info, err := s.SymbolInfo(ctx, symbol)
	if err != nil || info == nil {
		return model.BrokerQuote{}, symbolInfoFailed(symbol, err)
	}

	tick, err := s.SymbolTick(ctx, symbol)
	if err != nil || tick == nil {
		return model.BrokerQuote{}, noTick(symbol, err)
	}

	return model.BrokerQuote{
		Bid:             tick.Bid,
		Ask:             tick.Ask,
		MinStopDistance: MinStopDistance(*info),
	}, nil
}

// MinStopDistance converts a stops level expressed in points into a price
// distance.
func MinStopDistance(info model.SymbolInfo) decimal.Decimal {
	if info.StopsLevel <= 0 {
		return decimal.Zero
	}
	return info.Point.Mul(decimal.NewFromInt(info.StopsLevel))
}
