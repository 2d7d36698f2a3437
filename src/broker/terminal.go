package broker

import (
	"context"

	"signalexecutor/src/model"
)

// Terminal is the broker terminal binding. SymbolInfo and SymbolTick return
// nil without an error when the terminal has no data for the symbol.
type Terminal interface {
	Initialize(ctx context.Context) error
	SelectSymbol(ctx context.Context, symbol string) error
	SymbolInfo(ctx context.Context, symbol string) (*model.SymbolInfo, error)
	SymbolTick(ctx context.Context, symbol string) (*model.Tick, error)
	OrderSend(ctx context.Context, req model.OrderRequest) (*model.OrderSendResult, error)
	Shutdown(ctx context.Context) error
}
