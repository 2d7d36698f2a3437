package parse

import (
	"encoding/json"
	"fmt"
	"io"

	tradesignal "signalexecutor/src/signal"
)

// Run parses text with the configured keyword and prints the signal as JSON.
func Run(text string, out io.Writer) error {
	parser := tradesignal.NewParserFromConfig(tradesignal.GetConfig())

	signal, ok := parser.Parse(text)
	if !ok {
		_, err := fmt.Fprintln(out, "no valid trade signal detected")
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(signal)
}
