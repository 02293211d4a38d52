package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"       // context carries request-scoped deadlines into the lookups
    "database/sql"  // sentinel comparison for a missing user row
    "net/http"      // HTTP status codes for responses
    "strings"       // string utilities for prefix checking and trimming
    "time"          // timeout for the per-request database lookups

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/novakir/storefront/internal/config" // signing secret and algorithm
    "github.com/novakir/storefront/internal/model"  // Principal built on success
    "github.com/novakir/storefront/internal/utils"  // token decoding
)

// TokenRevocations answers whether an exact token string has been
// blacklisted.  Implemented by repository.SessionRepo.
type TokenRevocations interface {
    IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// UserResolver loads a user by email.  Implemented by repository.UserRepo.
type UserResolver interface {
    GetByEmail(ctx context.Context, email string) (model.User, error)
}

// Context keys the guard populates for downstream handlers.
const (
    CtxUserID = "user_id"
    CtxEmail  = "email"
    CtxRole   = "role"
    CtxToken  = "token"
)

// JWTAuth returns an Echo middleware implementing the full authorization
// guard: bearer extraction, signature verification, blacklist lookup, and
// resolution of the token subject to an existing user.  Every failure
// mode (bad header, bad signature, revoked token, vanished user) comes
// back as 401; the caller learns nothing about which check failed beyond
// the generic detail message.  On success the principal's id, email and
// role are stored in the context together with the raw token (logout
// needs the exact string).
func JWTAuth(cfg config.Config, revoked TokenRevocations, users UserResolver) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Signature validity first; a token that never verified is not
            // worth a database round trip.
            claims, err := utils.DecodeAccessToken(cfg.JWTSecret, cfg.JWTAlgorithm, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            // Revocation validity second: a blacklisted token is rejected no
            // matter how sound its signature and expiry are.
            black, err := revoked.IsBlacklisted(ctx, raw)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authorization check failed"})
            }
            if black {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            // The subject must still resolve to a user; a deleted account is
            // treated as an expired token rather than an error.
            u, err := users.GetByEmail(ctx, claims.Subject)
            if err != nil {
                if err == sql.ErrNoRows {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
                }
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authorization check failed"})
            }

            // The role gate reads the PERSISTED role, not the claim: demoting
            // a user takes effect on their next request, not at token expiry.
            c.Set(CtxUserID, u.ID)
            c.Set(CtxEmail, u.Email)
            c.Set(CtxRole, u.Role)
            c.Set(CtxToken, raw)
            return next(c)
        }
    }
}
