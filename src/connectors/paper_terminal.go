package connectors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"signalexecutor/src/broker"
	"signalexecutor/src/model"
)

var errPaperNotInitialized = errors.New("paper terminal not initialized")

// PaperTerminal is an in-process terminal with a fixed quote. It fills every
// valid market order and rejects stops closer than the stops level, like a
// live MT5 trade server would.
type PaperTerminal struct {
	mu sync.Mutex

	symbol     string
	bid        decimal.Decimal
	ask        decimal.Decimal
	point      decimal.Decimal
	stopsLevel int64

	open       bool
	selected   bool
	nextTicket uint64
}

func NewPaperTerminal(cfg Config) *PaperTerminal {
	return &PaperTerminal{
		symbol:     strings.ToUpper(cfg.PaperSymbol),
		bid:        cfg.PaperBid,
		ask:        cfg.PaperAsk,
		point:      cfg.PaperPoint,
		stopsLevel: cfg.PaperStopsLevel,
		nextTicket: 1,
	}
}

func (p *PaperTerminal) Initialize(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
	return nil
}

func (p *PaperTerminal) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.selected = false
	return nil
}

func (p *PaperTerminal) SelectSymbol(ctx context.Context, symbol string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return errPaperNotInitialized
	}
	if !strings.EqualFold(symbol, p.symbol) {
		return fmt.Errorf("symbol %s not available on paper terminal", symbol)
	}
	p.selected = true
	return nil
}

func (p *PaperTerminal) SymbolInfo(ctx context.Context, symbol string) (*model.SymbolInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return nil, errPaperNotInitialized
	}
	if !p.selected || !strings.EqualFold(symbol, p.symbol) {
		return nil, nil
	}
	return &model.SymbolInfo{Point: p.point, StopsLevel: p.stopsLevel}, nil
}

func (p *PaperTerminal) SymbolTick(ctx context.Context, symbol string) (*model.Tick, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return nil, errPaperNotInitialized
	}
	if !p.selected || !strings.EqualFold(symbol, p.symbol) {
		return nil, nil
	}
	return &model.Tick{Bid: p.bid, Ask: p.ask}, nil
}

func (p *PaperTerminal) OrderSend(ctx context.Context, req model.OrderRequest) (*model.OrderSendResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return nil, errPaperNotInitialized
	}

	if !req.Volume.IsPositive() {
		return &model.OrderSendResult{Retcode: broker.RetcodeInvalidVolume, Comment: "Invalid volume"}, nil
	}

	price := p.bid
	if req.Type == model.OrderTypeBuy {
		price = p.ask
	}
	minDist := p.point.Mul(decimal.NewFromInt(p.stopsLevel))

	if !stopsValid(req.Type, price, req.StopLoss, req.TakeProfit, minDist) {
		logger.WithFields(map[string]interface{}{
			"price": price.String(),
			"sl":    req.StopLoss.String(),
			"tp":    req.TakeProfit.String(),
		}).Debug("paper terminal rejected stops")
		return &model.OrderSendResult{Retcode: broker.RetcodeInvalidStops, Comment: "Invalid stops"}, nil
	}

	ticket := p.nextTicket
	p.nextTicket++
	return &model.OrderSendResult{Retcode: broker.RetcodeDone, Order: ticket, Comment: "Request executed"}, nil
}

// stopsValid applies the stops level rule. Zero levels mean "not set".
func stopsValid(orderType string, price, sl, tp, minDist decimal.Decimal) bool {
	if orderType == model.OrderTypeBuy {
		if !sl.IsZero() && price.Sub(sl).LessThan(minDist) {
			return false
		}
		if !tp.IsZero() && tp.Sub(price).LessThan(minDist) {
			return false
		}
		return true
	}

	if !sl.IsZero() && sl.Sub(price).LessThan(minDist) {
		return false
	}
	if !tp.IsZero() && price.Sub(tp).LessThan(minDist) {
		return false
	}
	return true
}
