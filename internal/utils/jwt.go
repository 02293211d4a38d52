package utils // package utils provides helper functions for token creation and hashing

import (
    "errors" // sentinel error for token decoding failures
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by DecodeAccessToken whenever signature
// verification fails or the token structure is malformed.  Callers never
// learn which of the two happened.
var ErrInvalidToken = errors.New("invalid token")

// defaultTTLMin is applied when the caller passes a non-positive TTL.
const defaultTTLMin = 15

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are short-lived and sent in the
// Authorization header when calling protected endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// TokenClaims is the decoded content of a verified access token: the
// subject (user email), the role claim, and the absolute expiry.  Expiry
// against the blacklist is deliberately NOT checked here; revocation is
// the auth middleware's concern.
type TokenClaims struct {
    Subject   string
    Role      string
    ExpiresAt time.Time
}

// NewAccessToken builds and signs a JWT for a user.  It takes the signing
// secret and algorithm name from configuration, the user's email, the
// user's role, and a TTL in minutes (non-positive falls back to 15).  The
// JWT carries standard claims: subject (sub), role, expiration (exp) and
// issued at (iat).
func NewAccessToken(secret, algorithm, email, role string, ttlMin int) (AccessToken, error) {
    if ttlMin <= 0 {
        ttlMin = defaultTTLMin
    }
    // Calculate the expiration time by adding the TTL to the current UTC time.
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":  email,
        "role": role,
        "exp":  exp.Unix(),
        "iat":  time.Now().UTC().Unix(),
    }
    // The algorithm name was validated at startup; GetSigningMethod cannot
    // return nil here for a config that allowed the process to boot.
    t := jwt.NewWithClaims(jwt.GetSigningMethod(algorithm), claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// DecodeAccessToken verifies the signature of a token and extracts its
// claims.  Any parse or verification failure comes back as ErrInvalidToken.
func DecodeAccessToken(secret, algorithm, raw string) (TokenClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything but the configured HMAC family.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        if t.Method.Alg() != algorithm {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return TokenClaims{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return TokenClaims{}, ErrInvalidToken
    }
    sub, _ := claims["sub"].(string)
    role, _ := claims["role"].(string)
    if sub == "" {
        return TokenClaims{}, ErrInvalidToken
    }
    out := TokenClaims{Subject: sub, Role: role}
    if expVal, err := claims.GetExpirationTime(); err == nil && expVal != nil {
        out.ExpiresAt = expVal.Time.UTC()
    }
    return out, nil
}

// DecodeExpiryUnverified extracts the exp claim from a token WITHOUT
// verifying its signature.  It exists for logout: the token there is
// already known authentic because it matched an active session row, and
// only its natural expiry is needed to fill the blacklist entry.
func DecodeExpiryUnverified(raw string) (time.Time, error) {
    tok, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
    if err != nil {
        return time.Time{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return time.Time{}, ErrInvalidToken
    }
    expVal, err := claims.GetExpirationTime()
    if err != nil || expVal == nil {
        return time.Time{}, ErrInvalidToken
    }
    return expVal.Time.UTC(), nil
}
