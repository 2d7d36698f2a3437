package risk

import (
	"github.com/shopspring/decimal"

	"signalexecutor/src/model"
)

// Adjust widens StopLoss and TakeProfit1 so both sit at least
// quote.MinStopDistance away from the execution price. Levels that already
// respect the distance are kept; levels are never narrowed. TakeProfit2 is
// carried through as received.
//
// Buy:
// - SL  = min(SL, ask - d)
// - TP1 = max(TP1, ask + d)
//
// Sell:
// - SL  = max(SL, bid + d)
// - TP1 = min(TP1, bid - d)
func Adjust(signal model.TradeSignal, quote model.BrokerQuote) model.AdjustedSignal {
	price := quote.ExecutionPrice(signal.Action)
	dist := quote.MinStopDistance

	adjusted := model.AdjustedSignal{TradeSignal: signal}

	if signal.IsBuy() {
		adjusted.StopLoss = decimal.Min(signal.StopLoss, price.Sub(dist))
		adjusted.TakeProfit1 = decimal.Max(signal.TakeProfit1, price.Add(dist))
	} else {
		adjusted.StopLoss = decimal.Max(signal.StopLoss, price.Add(dist))
		adjusted.TakeProfit1 = decimal.Min(signal.TakeProfit1, price.Sub(dist))
	}

	return adjusted
}
