package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
    hash, err := HashPassword("s3cret", 4)
    require.NoError(t, err)
    assert.NotEqual(t, "s3cret", hash)

    assert.True(t, VerifyPassword(hash, "s3cret"))
    assert.False(t, VerifyPassword(hash, "wrong"))
    assert.False(t, VerifyPassword("not-a-hash", "s3cret"))
}

func TestHashPasswordCostFallback(t *testing.T) {
    // A cost below bcrypt's minimum is replaced with the library default
    // instead of producing a weak hash or an error.
    hash, err := HashPassword("s3cret", 0)
    require.NoError(t, err)
    assert.True(t, VerifyPassword(hash, "s3cret"))
}
