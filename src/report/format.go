package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"signalexecutor/src/model"
)

// Format renders the notification for one trade attempt. Entry range and TP2
// come from the original signal, SL and TP1 from the adjusted one.
func Format(signal model.TradeSignal, adjusted model.AdjustedSignal, result model.OrderResult) string {
	var b strings.Builder

	b.WriteString("✅ *Trade Signal Executed:*\n")
	fmt.Fprintf(&b, "*Type:* %s\n", capitalize(string(signal.Action)))
	fmt.Fprintf(&b, "*Instrument:* %s\n", EscapeMarkdown(signal.Symbol))
	fmt.Fprintf(&b, "*Entry Range:* %s - %s\n", Price(signal.EntryLow), Price(signal.EntryHigh))
	fmt.Fprintf(&b, "*Stop Loss:* %s\n", Price(adjusted.StopLoss))
	fmt.Fprintf(&b, "*Take Profit:* %s, %s\n\n", Price(adjusted.TakeProfit1), Price(signal.TakeProfit2))
	b.WriteString(Outcome(result))

	return b.String()
}

// Outcome is the human-readable result line of a trade attempt.
func Outcome(result model.OrderResult) string {
	switch result.Status {
	case model.OrderStatusFilled:
		return fmt.Sprintf("✅ Order placed successfully!\nTicket: %d", result.Ticket)
	case model.OrderStatusRejected:
		return fmt.Sprintf("❌ Order failed. Error: %s", EscapeMarkdown(result.Reason))
	default:
		return fmt.Sprintf("❌ %s", EscapeMarkdown(result.Reason))
	}
}

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// EscapeMarkdown makes text safe to embed in a legacy Markdown message, where
// an unpaired _ * ` or [ makes Telegram reject the whole message.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// Price prints a decimal with its own scale, so 1950.00 stays 1950.00 and
// nothing is ever rounded.
func Price(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
