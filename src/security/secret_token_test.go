package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifySecretToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cr3t-token"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, VerifySecretToken(string(hash), "s3cr3t-token"))
	assert.ErrorIs(t, VerifySecretToken(string(hash), "wrong"), ErrInvalidSecretToken)
	assert.ErrorIs(t, VerifySecretToken(string(hash), ""), ErrInvalidSecretToken)
	assert.ErrorIs(t, VerifySecretToken("not-a-hash", "s3cr3t-token"), ErrInvalidSecretToken)
}

func TestVerifySecretTokenDisabled(t *testing.T) {
	assert.NoError(t, VerifySecretToken("", ""))
	assert.NoError(t, VerifySecretToken("", "anything"))
}

func TestHashSecretToken(t *testing.T) {
	hash, err := HashSecretToken("abc")
	require.NoError(t, err)
	assert.NoError(t, VerifySecretToken(hash, "abc"))
}
