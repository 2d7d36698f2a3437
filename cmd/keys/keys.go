package keys

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"signalexecutor/src/security"
)

// HashSecret prints the WEBHOOK_SECRET_HASH line for a webhook secret token.
func HashSecret(token string, out io.Writer) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("secret token is empty")
	}

	hash, err := security.HashSecretToken(token)
	if err != nil {
		return fmt.Errorf("hash secret token: %w", err)
	}

	_, err = fmt.Fprintf(out, "WEBHOOK_SECRET_HASH=%s\n", hash)
	return err
}
