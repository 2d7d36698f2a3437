package connectors

import (
	"fmt"
	"strings"

	"signalexecutor/src/broker"
)

// NewTerminal builds the broker terminal selected by cfg.Terminal.
func NewTerminal(cfg Config) (broker.Terminal, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Terminal)) {
	case TerminalBridge, "":
		return NewMT5BridgeClient(cfg.BridgeURL, cfg.BridgeToken, cfg.BridgeTimeout), nil
	case TerminalPaper:
		return NewPaperTerminal(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported terminal %q", cfg.Terminal)
	}
}
