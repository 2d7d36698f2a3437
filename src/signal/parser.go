package signal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"signalexecutor/src/model"
)

const (
	DefaultKeyword = "Gold"
	DefaultSymbol  = "XAUUSD"
)

// space matches any Unicode whitespace. RE2 \s is ASCII only, and chat
// clients often send NBSP or other spaces between tokens.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// patternTemplate is searched anywhere in the message; (?s) lets the lazy
// gaps between labels span line breaks.
var patternTemplate = strings.ReplaceAll(
	`(?is)(Buy|Sell)\s+%s\s*@\s*(\d+\.\d+)-(\d+\.\d+).*?SL\s*:\s*(\d+\.\d+).*?TP1\s*:\s*(\d+\.\d+).*?TP2\s*:\s*(\d+\.\d+)`,
	`\s`, space,
)

type Parser struct {
	pattern *regexp.Regexp
	symbol  string
}

// NewParser builds a parser that recognises keyword as the instrument word and
// reports every match as symbol.
func NewParser(keyword, symbol string) *Parser {
	if strings.TrimSpace(keyword) == "" {
		keyword = DefaultKeyword
	}
	if strings.TrimSpace(symbol) == "" {
		symbol = DefaultSymbol
	}
	return &Parser{
		pattern: regexp.MustCompile(fmt.Sprintf(patternTemplate, regexp.QuoteMeta(keyword))),
		symbol:  strings.ToUpper(symbol),
	}
}

func NewParserFromConfig(cfg Config) *Parser {
	return NewParser(cfg.Keyword, cfg.Symbol)
}

// Parse returns the signal found in text. The second value is false when the
// message does not carry every required field.
func (p *Parser) Parse(text string) (model.TradeSignal, bool) {
	m := p.pattern.FindStringSubmatch(text)
	if m == nil {
		return model.TradeSignal{}, false
	}

	values := make([]decimal.Decimal, 0, 5)
	for _, raw := range m[2:] {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			// unreachable with the \d+\.\d+ groups, kept so a bad capture is a miss
			logger.WithError(err).WithField("value", raw).Warn("signal value is not a decimal")
			return model.TradeSignal{}, false
		}
		values = append(values, d)
	}

	return model.TradeSignal{
		Action:      model.Action(strings.ToLower(m[1])),
		Symbol:      p.symbol,
		EntryLow:    values[0],
		EntryHigh:   values[1],
		StopLoss:    values[2],
		TakeProfit1: values[3],
		TakeProfit2: values[4],
	}, true
}
