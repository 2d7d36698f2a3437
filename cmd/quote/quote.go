package quote

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"signalexecutor/src/broker"
	"signalexecutor/src/connectors"
	"signalexecutor/src/model"
	"signalexecutor/src/report"
)

type Quoter interface {
	GetQuote(ctx context.Context, symbol string) (model.BrokerQuote, error)
}

// Run fetches one quote from the configured terminal and prints it.
func Run(ctx context.Context, symbol string, out io.Writer, log *logrus.Entry) error {
	terminal, err := connectors.NewTerminal(connectors.GetConfig())
	if err != nil {
		return err
	}
	return Print(ctx, broker.NewQuoteAdapter(terminal, log), symbol, out)
}

func Print(ctx context.Context, quotes Quoter, symbol string, out io.Writer) error {
	q, err := quotes.GetQuote(ctx, symbol)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s bid=%s ask=%s min_stop_distance=%s\n",
		symbol, report.Price(q.Bid), report.Price(q.Ask), report.Price(q.MinStopDistance))
	return err
}
