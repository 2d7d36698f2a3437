package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalexecutor/src/broker"
	"signalexecutor/src/model"
	"signalexecutor/src/signal"
)

const referenceText = "Buy Gold @1950.00-1952.00 SL: 1945.00 TP1: 1960.00 TP2: 1970.00"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type sentMessage struct {
	chatID string
	text   string
}

type fakeNotifier struct {
	err  error
	sent []sentMessage
}

func (f *fakeNotifier) Send(ctx context.Context, chatID string, text string) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return f.err
}

// terminal is a broker.Terminal that records every call.
type terminal struct {
	tick     *model.Tick
	info     *model.SymbolInfo
	sendResp *model.OrderSendResult

	sent     []model.OrderRequest
	sessions int
	released int
}

func (t *terminal) Initialize(ctx context.Context) error { t.sessions++; return nil }
func (t *terminal) SelectSymbol(ctx context.Context, s string) error { return nil }
func (t *terminal) SymbolInfo(ctx context.Context, s string) (*model.SymbolInfo, error) {
	return t.info, nil
}
func (t *terminal) SymbolTick(ctx context.Context, s string) (*model.Tick, error) {
	return t.tick, nil
}
func (t *terminal) OrderSend(ctx context.Context, req model.OrderRequest) (*model.OrderSendResult, error) {
	t.sent = append(t.sent, req)
	return t.sendResp, nil
}
func (t *terminal) Shutdown(ctx context.Context) error { t.released++; return nil }

func newTestOrchestrator(term *terminal, notifier Notifier) *Orchestrator {
	cfg := broker.Config{Volume: d("0.1"), Deviation: 20, Magic: 123456, Comment: "Telegram Bot Trade"}
	o := NewOrchestrator(
		nil,
		signal.NewParser("Gold", "XAUUSD"),
		broker.NewTrader(term, cfg, nil),
		notifier,
		"-100200300",
	)
	o.newTraceID = func() string { return "trace-1" }
	return o
}

func message(text string) model.InboundMessage {
	return model.InboundMessage{ID: "42", ChatID: "-100200300", Sender: "goldvip", Text: text, ReceivedAt: time.Now()}
}

func TestHandleNoSignal(t *testing.T) {
	term := &terminal{}
	notifier := &fakeNotifier{}
	o := newTestOrchestrator(term, notifier)

	out := o.Handle(context.Background(), message("gm everyone, waiting for NFP"))

	assert.Nil(t, out)
	assert.Empty(t, notifier.sent, "unparsed messages produce no notification")
	assert.Equal(t, 0, term.sessions, "broker must not be touched without a signal")
}

func TestHandleFilled(t *testing.T) {
	term := &terminal{
		info:     &model.SymbolInfo{Point: d("0.01"), StopsLevel: 50},
		tick:     &model.Tick{Bid: d("1950.10"), Ask: d("1950.40")},
		sendResp: &model.OrderSendResult{Retcode: broker.RetcodeDone, Order: 5550001, Comment: "Request executed"},
	}
	notifier := &fakeNotifier{}
	o := newTestOrchestrator(term, notifier)

	out := o.Handle(context.Background(), message(referenceText))
	require.NotNil(t, out)

	assert.Equal(t, "trace-1", out.TraceID)
	assert.True(t, out.Result.IsFilled())
	assert.Equal(t, uint64(5550001), out.Result.Ticket)
	require.NotNil(t, out.Quote)
	assert.NoError(t, out.NotifyErr)

	require.Len(t, term.sent, 1)
	req := term.sent[0]
	assert.True(t, req.Price.Equal(d("1950.40")), "buy executes at the ask")
	assert.True(t, req.StopLoss.Equal(d("1945.00")))
	assert.True(t, req.TakeProfit.Equal(d("1960.00")))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "-100200300", notifier.sent[0].chatID)
	assert.Contains(t, notifier.sent[0].text, "Ticket: 5550001")
	assert.NotContains(t, notifier.sent[0].text, "Order failed")

	assert.Equal(t, 1, term.sessions, "quote and submission share one session")
	assert.Equal(t, term.sessions, term.released)
}

func TestHandleWidensLevels(t *testing.T) {
	term := &terminal{
		info:     &model.SymbolInfo{Point: d("0.01"), StopsLevel: 50},
		tick:     &model.Tick{Bid: d("2000.00"), Ask: d("2000.00")},
		sendResp: &model.OrderSendResult{Retcode: broker.RetcodeDone, Order: 9},
	}
	notifier := &fakeNotifier{}
	o := newTestOrchestrator(term, notifier)

	out := o.Handle(context.Background(), message("Sell Gold @1999.00-2000.00 SL: 2000.20 TP1: 2001.00 TP2: 1980.00"))
	require.NotNil(t, out)

	assert.True(t, out.Adjusted.StopLoss.Equal(d("2000.50")))
	assert.True(t, out.Adjusted.TakeProfit1.Equal(d("1999.50")))
	assert.True(t, out.Signal.StopLoss.Equal(d("2000.20")), "original signal is left untouched")

	require.Len(t, term.sent, 1)
	assert.True(t, term.sent[0].StopLoss.Equal(d("2000.50")))
	assert.True(t, term.sent[0].TakeProfit.Equal(d("1999.50")))
	assert.Equal(t, model.OrderTypeSell, term.sent[0].Type)

	text := notifier.sent[0].text
	assert.Contains(t, text, "*Stop Loss:* 2000.50\n")
	assert.Contains(t, text, "*Take Profit:* 1999.50, 1980.00\n")
	assert.Contains(t, text, "*Entry Range:* 1999.00 - 2000.00\n")
}

func TestHandleNoTick(t *testing.T) {
	term := &terminal{info: &model.SymbolInfo{Point: d("0.01"), StopsLevel: 50}}
	notifier := &fakeNotifier{}
	o := newTestOrchestrator(term, notifier)

	out := o.Handle(context.Background(), message(referenceText))
	require.NotNil(t, out)

	assert.Equal(t, model.OrderStatusUnavailable, out.Result.Status)
	assert.Empty(t, term.sent, "no order may be submitted without a tick")
	assert.Nil(t, out.Quote)
	assert.Equal(t, 1, term.sessions)
	assert.Equal(t, 1, term.released)

	require.Len(t, notifier.sent, 1)
	text := notifier.sent[0].text
	assert.True(t, strings.HasSuffix(text, "❌ No tick data available for XAUUSD. Ensure the symbol is active."), text)
	assert.Contains(t, text, "*Stop Loss:* 1945.00\n", "unadjusted levels are reported")
	assert.Contains(t, text, "*Take Profit:* 1960.00, 1970.00\n")
}

func TestHandleRejected(t *testing.T) {
	term := &terminal{
		info:     &model.SymbolInfo{Point: d("0.01"), StopsLevel: 0},
		tick:     &model.Tick{Bid: d("1950.10"), Ask: d("1950.40")},
		sendResp: &model.OrderSendResult{Retcode: 10018, Comment: "Market closed"},
	}
	notifier := &fakeNotifier{}
	o := newTestOrchestrator(term, notifier)

	out := o.Handle(context.Background(), message(referenceText))
	require.NotNil(t, out)

	assert.Equal(t, model.OrderStatusRejected, out.Result.Status)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0].text, "❌ Order failed. Error: Market closed")
	assert.NotContains(t, notifier.sent[0].text, "Ticket")
}

func TestHandleNotificationFailureIsSwallowed(t *testing.T) {
	term := &terminal{
		info:     &model.SymbolInfo{Point: d("0.01"), StopsLevel: 50},
		tick:     &model.Tick{Bid: d("1950.10"), Ask: d("1950.40")},
		sendResp: &model.OrderSendResult{Retcode: broker.RetcodeDone, Order: 1},
	}
	notifier := &fakeNotifier{err: errors.New("telegram: 502 bad gateway")}
	o := newTestOrchestrator(term, notifier)

	out := o.Handle(context.Background(), message(referenceText))
	require.NotNil(t, out)

	assert.EqualError(t, out.NotifyErr, "telegram: 502 bad gateway")
	assert.True(t, out.Result.IsFilled(), "trade outcome is unaffected by delivery")
	assert.Len(t, notifier.sent, 1, "delivery is attempted once")
	assert.Len(t, term.sent, 1)
}

type blockingHandler struct {
	mu      sync.Mutex
	active  int
	maxSeen int
}

func (b *blockingHandler) Handle(ctx context.Context, msg model.InboundMessage) *Outcome {
	b.mu.Lock()
	b.active++
	if b.active > b.maxSeen {
		b.maxSeen = b.active
	}
	b.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	b.mu.Lock()
	b.active--
	b.mu.Unlock()
	return nil
}

func TestSequentialRunsOneAtATime(t *testing.T) {
	inner := &blockingHandler{}
	seq := NewSequential(inner)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq.Handle(context.Background(), message("x"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inner.maxSeen)
}
