package security

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// bcrypt hash of the secret token registered with setWebhook
	WebhookSecretHash string `envconfig:"WEBHOOK_SECRET_HASH"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
