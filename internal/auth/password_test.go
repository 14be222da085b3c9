package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(4) // minimal cost keeps the test fast

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, hasher.Verify("s3cret-password", hash))
	assert.False(t, hasher.Verify("wrong-password", hash))
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewPasswordHasher(4)

	h1, err := hasher.Hash("same-password")
	require.NoError(t, err)
	h2, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	hasher := NewPasswordHasher(99)
	hash, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("pw", hash))
}
