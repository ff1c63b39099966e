package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormTokenRoundTrip(t *testing.T) {
	raw, err := GenerateFormToken("secret", "sess-1", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	assert.NoError(t, ValidateFormToken("secret", "sess-1", raw))
}

func TestFormTokenWrongSecret(t *testing.T) {
	raw, err := GenerateFormToken("secret", "sess-1", time.Minute)
	require.NoError(t, err)

	assert.Error(t, ValidateFormToken("other-secret", "sess-1", raw))
}

func TestFormTokenBoundToSession(t *testing.T) {
	raw, err := GenerateFormToken("secret", "sess-1", time.Minute)
	require.NoError(t, err)

	assert.Error(t, ValidateFormToken("secret", "sess-2", raw))
}

func TestFormTokenExpired(t *testing.T) {
	raw, err := GenerateFormToken("secret", "sess-1", -time.Minute)
	require.NoError(t, err)

	assert.Error(t, ValidateFormToken("secret", "sess-1", raw))
}

func TestFormTokenGarbage(t *testing.T) {
	assert.Error(t, ValidateFormToken("secret", "sess-1", "not-a-token"))
	assert.Error(t, ValidateFormToken("secret", "sess-1", ""))
}
