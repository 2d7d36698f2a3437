package listener

import (
	"context"
	"sync"

	"signalexecutor/src/model"
	"signalexecutor/src/pipeline"
)

type recordingHandler struct {
	mu       sync.Mutex
	messages []model.InboundMessage
	onHandle func(msg model.InboundMessage)
}

func (h *recordingHandler) Handle(_ context.Context, msg model.InboundMessage) *pipeline.Outcome {
	h.mu.Lock()
	h.messages = append(h.messages, msg)
	cb := h.onHandle
	h.mu.Unlock()
	if cb != nil {
		cb(msg)
	}
	return nil
}

func (h *recordingHandler) received() []model.InboundMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.InboundMessage, len(h.messages))
	copy(out, h.messages)
	return out
}
