package broker

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"signalexecutor/src/model"
)

// Gateway turns adjusted signals into market orders and interprets the
// terminal's reply. It runs inside a session opened by Trader.
type Gateway struct {
	config Config
	logger *logrus.Entry
}

func NewGateway(config Config, logger *logrus.Entry) *Gateway {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Gateway{config: config, logger: logger}
}

// BuildOrder maps an adjusted signal onto a GTC/IOC market deal at price.
func (g *Gateway) BuildOrder(signal model.AdjustedSignal, price decimal.Decimal) model.OrderRequest {
	orderType := model.OrderTypeSell
	if signal.IsBuy() {
		orderType = model.OrderTypeBuy
	}

	return model.OrderRequest{
		Action:      model.TradeActionDeal,
		Symbol:      signal.Symbol,
		Volume:      g.config.Volume,
		Type:        orderType,
		Price:       price,
		StopLoss:    signal.StopLoss,
		TakeProfit:  signal.TakeProfit1,
		Deviation:   g.config.Deviation,
		Magic:       g.config.Magic,
		Comment:     g.config.Comment,
		TypeTime:    model.OrderTimeGTC,
		TypeFilling: model.OrderFillingIOC,
	}
}

// send makes the single order_send call of a trade inside an open session.
// It never retries.
func (g *Gateway) send(ctx context.Context, s *Session, req model.OrderRequest) model.OrderResult {
	log := g.logger.WithFields(logrus.Fields{
		"symbol": req.Symbol,
		"type":   req.Type,
		"volume": req.Volume.String(),
		"price":  req.Price.String(),
		"sl":     req.StopLoss.String(),
		"tp":     req.TakeProfit.String(),
	})
	log.Info("sending order")

	var result model.OrderResult
	resp, err := s.OrderSend(ctx, req)
	if err != nil {
		result = model.Rejected(fmt.Sprintf("order_send failed: %v", err))
	} else {
		result = interpret(resp)
	}

	if result.IsFilled() {
		log.WithField("ticket", result.Ticket).Info("order placed")
	} else {
		log.WithField("reason", result.Reason).Warn("order rejected")
	}
	return result
}

func interpret(resp *model.OrderSendResult) model.OrderResult {
	if resp == nil {
		return model.Rejected("order_send returned no result")
	}
	if resp.Retcode == RetcodeDone {
		return model.Filled(resp.Order)
	}
	if resp.Comment == "" {
		return model.Rejected(RetcodeName(resp.Retcode))
	}
	return model.Rejected(resp.Comment)
}
