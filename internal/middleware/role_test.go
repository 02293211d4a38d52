package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func runRoleGate(t *testing.T, required, actual string) (*httptest.ResponseRecorder, bool) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if actual != "" {
        c.Set(CtxRole, actual)
    }

    called := false
    h := RequireRole(required)(func(c echo.Context) error {
        called = true
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    return rec, called
}

func TestRequireRoleExactMatch(t *testing.T) {
    rec, called := runRoleGate(t, "admin", "admin")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.True(t, called)
}

func TestRequireRoleAdminIsNotUser(t *testing.T) {
    // Roles are disjoint: an admin is forbidden on user-only routes.
    rec, called := runRoleGate(t, "user", "admin")
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.False(t, called)
}

func TestRequireRoleUserIsNotAdmin(t *testing.T) {
    rec, called := runRoleGate(t, "admin", "user")
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.False(t, called)
}

func TestRequireRoleMissingRole(t *testing.T) {
    rec, called := runRoleGate(t, "user", "")
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.False(t, called)
}
