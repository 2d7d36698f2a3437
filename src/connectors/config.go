package connectors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	TerminalBridge = "bridge"
	TerminalPaper  = "paper"
)

type Config struct {
	Terminal      string        `envconfig:"TERMINAL" default:"bridge"`
	BridgeURL     string        `envconfig:"BRIDGE_URL" default:"http://127.0.0.1:8228"`
	BridgeToken   string        `envconfig:"BRIDGE_TOKEN"`
	BridgeTimeout time.Duration `envconfig:"BRIDGE_TIMEOUT" default:"15s"`

	BotToken        string `envconfig:"BOT_TOKEN"`
	TelegramBaseURL string `envconfig:"TELEGRAM_API_URL" default:"https://api.telegram.org"`

	PaperSymbol     string          `envconfig:"PAPER_SYMBOL" default:"XAUUSD"`
	PaperBid        decimal.Decimal `envconfig:"PAPER_BID" default:"2000.00"`
	PaperAsk        decimal.Decimal `envconfig:"PAPER_ASK" default:"2000.30"`
	PaperPoint      decimal.Decimal `envconfig:"PAPER_POINT" default:"0.01"`
	PaperStopsLevel int64           `envconfig:"PAPER_STOPS_LEVEL" default:"50"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
