package pipeline

import (
	"context"
	"sync"

	"signalexecutor/src/model"
)

type Handler interface {
	Handle(ctx context.Context, msg model.InboundMessage) *Outcome
}

// Sequential lets only one message through the wrapped handler at a time.
// Callers block until their message has been fully processed.
type Sequential struct {
	mu   sync.Mutex
	next Handler
}

func NewSequential(next Handler) *Sequential {
	return &Sequential{next: next}
}

func (s *Sequential) Handle(ctx context.Context, msg model.InboundMessage) *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Handle(ctx, msg)
}
