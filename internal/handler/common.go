package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/middleware"
)

// dbTimeout bounds every database round trip issued from a handler.
const dbTimeout = 5 * time.Second

// reqContext derives a bounded context from the incoming request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUserID reads the authenticated user's ID placed in the echo
// context by the JWT middleware. The middleware always sets it, so a
// missing value means the route was wired without auth.
func currentUserID(c echo.Context) (uint64, bool) {
    v, ok := c.Get(middleware.CtxUserID).(uint64)
    return v, ok
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

func badID(c echo.Context, name string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + name})
}
