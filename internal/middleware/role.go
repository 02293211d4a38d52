package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireRole returns a middleware that enforces an EXACT role match.
// The two roles are mutually exclusive, not hierarchical: an admin
// hitting a user-only endpoint is forbidden exactly like a user hitting
// an admin-only endpoint.  It assumes JWTAuth already stored the
// persisted role in the context under "role".
func RequireRole(role string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            v := c.Get(CtxRole)
            got, ok := v.(string)
            if !ok || got != role {
                return c.JSON(http.StatusForbidden, echo.Map{"error": role + "s only"})
            }
            return next(c)
        }
    }
}
