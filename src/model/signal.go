package model

import "github.com/shopspring/decimal"

type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// TradeSignal is the structured trade intent extracted from a chat message.
type TradeSignal struct {
	Action      Action          `json:"action"`
	Symbol      string          `json:"symbol"`
	EntryLow    decimal.Decimal `json:"entry_low"`
	EntryHigh   decimal.Decimal `json:"entry_high"`
	StopLoss    decimal.Decimal `json:"sl"`
	TakeProfit1 decimal.Decimal `json:"tp1"`
	TakeProfit2 decimal.Decimal `json:"tp2"`
}

func (s TradeSignal) IsBuy() bool { return s.Action == ActionBuy }

// AdjustedSignal is a TradeSignal whose StopLoss and TakeProfit1 respect the
// broker minimum stop distance. TakeProfit2 is carried through untouched.
type AdjustedSignal struct {
	TradeSignal
}

// Unadjusted wraps a signal whose levels were never clamped, used when no
// quote could be obtained.
func Unadjusted(s TradeSignal) AdjustedSignal {
	return AdjustedSignal{TradeSignal: s}
}

// BrokerQuote holds the tradable prices and stop distance for one instrument.
type BrokerQuote struct {
	Bid             decimal.Decimal `json:"bid"`
	Ask             decimal.Decimal `json:"ask"`
	MinStopDistance decimal.Decimal `json:"min_stop_distance"`
}

// ExecutionPrice is the ask for buys and the bid for sells.
func (q BrokerQuote) ExecutionPrice(action Action) decimal.Decimal {
	if action == ActionBuy {
		return q.Ask
	}
	return q.Bid
}

// SymbolInfo is the subset of terminal instrument metadata the pipeline reads.
type SymbolInfo struct {
	Point      decimal.Decimal `json:"point"`
	StopsLevel int64           `json:"trade_stops_level"`
}

type Tick struct {
	Bid decimal.Decimal `json:"bid"`
	Ask decimal.Decimal `json:"ask"`
}
