package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidSecretToken = errors.New("invalid secret token")

// VerifySecretToken checks a webhook secret token against its bcrypt hash.
// An empty hash disables the check.
func VerifySecretToken(hash, token string) error {
	if hash == "" {
		return nil
	}
	if token == "" {
		return ErrInvalidSecretToken
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		return ErrInvalidSecretToken
	}
	return nil
}

// HashSecretToken produces the value to store in WEBHOOK_SECRET_HASH.
func HashSecretToken(token string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
