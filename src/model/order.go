package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	TradeActionDeal = "deal"

	OrderTypeBuy  = "buy"
	OrderTypeSell = "sell"

	OrderTimeGTC    = "gtc"
	OrderFillingIOC = "ioc"
)

const (
	OrderStatusFilled      = "filled"
	OrderStatusRejected    = "rejected"
	OrderStatusUnavailable = "unavailable"
)

// OrderRequest is the market order sent to the terminal.
type OrderRequest struct {
	Action      string          `json:"action"`
	Symbol      string          `json:"symbol"`
	Volume      decimal.Decimal `json:"volume"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	StopLoss    decimal.Decimal `json:"sl"`
	TakeProfit  decimal.Decimal `json:"tp"`
	Deviation   int             `json:"deviation"`
	Magic       int64           `json:"magic"`
	Comment     string          `json:"comment"`
	TypeTime    string          `json:"type_time"`
	TypeFilling string          `json:"type_filling"`
}

// OrderSendResult is the raw terminal reply to an order submission.
type OrderSendResult struct {
	Retcode int    `json:"retcode"`
	Order   uint64 `json:"order"`
	Comment string `json:"comment"`
}

// OrderResult is the outcome of one trade attempt.
type OrderResult struct {
	Status string `json:"status"`
	Ticket uint64 `json:"ticket,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func Filled(ticket uint64) OrderResult {
	return OrderResult{Status: OrderStatusFilled, Ticket: ticket}
}

func Rejected(reason string) OrderResult {
	return OrderResult{Status: OrderStatusRejected, Reason: reason}
}

func Unavailable(reason string) OrderResult {
	return OrderResult{Status: OrderStatusUnavailable, Reason: reason}
}

func (r OrderResult) IsFilled() bool { return r.Status == OrderStatusFilled }

func (r OrderResult) String() string {
	switch r.Status {
	case OrderStatusFilled:
		return fmt.Sprintf("filled ticket=%d", r.Ticket)
	default:
		return fmt.Sprintf("%s: %s", r.Status, r.Reason)
	}
}
