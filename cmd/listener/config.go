package listener

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	ModePoll    = "poll"
	ModeWebhook = "webhook"
	ModeRelay   = "relay"
)

type Config struct {
	Mode            string `envconfig:"LISTENER_MODE" default:"poll"`
	SourceChannelID string `envconfig:"SOURCE_CHANNEL_ID"`
	NotifyChannelID string `envconfig:"NOTIFY_CHANNEL_ID"`

	PollTimeout    time.Duration `envconfig:"POLL_TIMEOUT" default:"30s"`
	PollErrorDelay time.Duration `envconfig:"POLL_ERROR_DELAY" default:"5s"`

	RelayURL            string        `envconfig:"RELAY_URL"`
	RelayToken          string        `envconfig:"RELAY_TOKEN"`
	RelayReconnectDelay time.Duration `envconfig:"RELAY_RECONNECT_DELAY" default:"5s"`
}

// NotifyChat is where reports go; it defaults to the source channel.
func (c Config) NotifyChat() string {
	if c.NotifyChannelID != "" {
		return c.NotifyChannelID
	}
	return c.SourceChannelID
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
