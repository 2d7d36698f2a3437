package broker

import (
	"context"

	"signalexecutor/src/model"
)

type fakeTerminal struct {
	initErr   error
	selectErr error
	info      *model.SymbolInfo
	infoErr   error
	tick      *model.Tick
	tickErr   error
	sendResp  *model.OrderSendResult
	sendErr   error

	initCalls     int
	shutdownCalls int
	sent          []model.OrderRequest
	calls         []string
}

func (f *fakeTerminal) Initialize(ctx context.Context) error {
	f.initCalls++
	f.calls = append(f.calls, "initialize")
	return f.initErr
}

func (f *fakeTerminal) SelectSymbol(ctx context.Context, symbol string) error {
	f.calls = append(f.calls, "select:"+symbol)
	return f.selectErr
}

func (f *fakeTerminal) SymbolInfo(ctx context.Context, symbol string) (*model.SymbolInfo, error) {
	f.calls = append(f.calls, "info:"+symbol)
	return f.info, f.infoErr
}

func (f *fakeTerminal) SymbolTick(ctx context.Context, symbol string) (*model.Tick, error) {
	f.calls = append(f.calls, "tick:"+symbol)
	return f.tick, f.tickErr
}

func (f *fakeTerminal) OrderSend(ctx context.Context, req model.OrderRequest) (*model.OrderSendResult, error) {
	f.calls = append(f.calls, "order_send")
	f.sent = append(f.sent, req)
	return f.sendResp, f.sendErr
}

func (f *fakeTerminal) Shutdown(ctx context.Context) error {
	f.shutdownCalls++
	f.calls = append(f.calls, "shutdown")
	return nil
}
