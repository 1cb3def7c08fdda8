package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, exp, err := Generate("s3cret", "u-1", "op@biocol.com.br", "operador", "biocol-import", 30)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "operador", claims.Role)
	assert.Equal(t, "biocol-import", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := Generate("s3cret", "u-1", "op@biocol.com.br", "operador", "", 30)
	require.NoError(t, err)

	_, err = Parse("outro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, _, err := Generate("s3cret", "u-1", "op@biocol.com.br", "operador", "", -5)
	require.NoError(t, err)

	_, err = Parse("s3cret", token)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, _, err := Generate("", "u-1", "", "", "", 30)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
