package signal

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Keyword string `envconfig:"SIGNAL_KEYWORD" default:"Gold"`
	Symbol  string `envconfig:"SIGNAL_SYMBOL" default:"XAUUSD"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
