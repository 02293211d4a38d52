package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
    tok, err := NewAccessToken(testSecret, "HS256", "alice@example.com", "user", 15)
    require.NoError(t, err)
    require.NotEmpty(t, tok.Token)

    claims, err := DecodeAccessToken(testSecret, "HS256", tok.Token)
    require.NoError(t, err)
    assert.Equal(t, "alice@example.com", claims.Subject)
    assert.Equal(t, "user", claims.Role)
    assert.WithinDuration(t, tok.Exp, claims.ExpiresAt, time.Second)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
    tok, err := NewAccessToken(testSecret, "HS256", "alice@example.com", "user", 15)
    require.NoError(t, err)

    _, err = DecodeAccessToken("other-secret", "HS256", tok.Token)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsAlgorithmMismatch(t *testing.T) {
    tok, err := NewAccessToken(testSecret, "HS384", "alice@example.com", "user", 15)
    require.NoError(t, err)

    _, err = DecodeAccessToken(testSecret, "HS256", tok.Token)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsUnsignedToken(t *testing.T) {
    unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
        "sub": "mallory@example.com",
        "exp": time.Now().Add(time.Hour).Unix(),
    })
    raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
    require.NoError(t, err)

    _, err = DecodeAccessToken(testSecret, "HS256", raw)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
    expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "sub": "alice@example.com",
        "exp": time.Now().Add(-time.Minute).Unix(),
    })
    raw, err := expired.SignedString([]byte(testSecret))
    require.NoError(t, err)

    _, err = DecodeAccessToken(testSecret, "HS256", raw)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsMissingSubject(t *testing.T) {
    tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "exp": time.Now().Add(time.Hour).Unix(),
    })
    raw, err := tok.SignedString([]byte(testSecret))
    require.NoError(t, err)

    _, err = DecodeAccessToken(testSecret, "HS256", raw)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDefaultTTLApplied(t *testing.T) {
    tok, err := NewAccessToken(testSecret, "HS256", "alice@example.com", "user", 0)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)
}

func TestDecodeExpiryUnverified(t *testing.T) {
    tok, err := NewAccessToken(testSecret, "HS256", "alice@example.com", "user", 30)
    require.NoError(t, err)

    // No secret involved: the expiry must come out even without a
    // verification key.
    exp, err := DecodeExpiryUnverified(tok.Token)
    require.NoError(t, err)
    assert.WithinDuration(t, tok.Exp, exp, time.Second)

    _, err = DecodeExpiryUnverified("not-a-token")
    assert.ErrorIs(t, err, ErrInvalidToken)
}
