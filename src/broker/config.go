package broker

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	Volume    decimal.Decimal `envconfig:"ORDER_VOLUME" default:"0.1"`
	Deviation int             `envconfig:"ORDER_DEVIATION" default:"20"`
	Magic     int64           `envconfig:"ORDER_MAGIC" default:"123456"`
	Comment   string          `envconfig:"ORDER_COMMENT" default:"Telegram Bot Trade"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
