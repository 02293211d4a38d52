package middleware

import (
    "context"
    "database/sql"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/novakir/storefront/internal/config"
    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/utils"
)

type fakeRevocations struct {
    blacklisted map[string]bool
    err         error
}

func (f *fakeRevocations) IsBlacklisted(_ context.Context, token string) (bool, error) {
    if f.err != nil {
        return false, f.err
    }
    return f.blacklisted[token], nil
}

type fakeUsers struct {
    users map[string]model.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
    u, ok := f.users[email]
    if !ok {
        return model.User{}, sql.ErrNoRows
    }
    return u, nil
}

func testCfg() config.Config {
    return config.Config{JWTSecret: "test-secret", JWTAlgorithm: "HS256", AccessTTLMin: 15}
}

func runGuard(t *testing.T, authHeader string, revoked *fakeRevocations, users *fakeUsers) (*httptest.ResponseRecorder, echo.Context, bool) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    called := false
    h := JWTAuth(testCfg(), revoked, users)(func(c echo.Context) error {
        called = true
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    return rec, c, called
}

func TestJWTAuthMissingHeader(t *testing.T) {
    rec, _, called := runGuard(t, "", &fakeRevocations{}, &fakeUsers{})
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.False(t, called)
}

func TestJWTAuthMalformedToken(t *testing.T) {
    rec, _, called := runGuard(t, "Bearer garbage", &fakeRevocations{}, &fakeUsers{})
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.False(t, called)
}

func TestJWTAuthBlacklistedToken(t *testing.T) {
    tok, err := utils.NewAccessToken("test-secret", "HS256", "alice@example.com", "user", 15)
    require.NoError(t, err)

    revoked := &fakeRevocations{blacklisted: map[string]bool{tok.Token: true}}
    users := &fakeUsers{users: map[string]model.User{
        "alice@example.com": {ID: 1, Email: "alice@example.com", Role: "user"},
    }}
    rec, _, called := runGuard(t, "Bearer "+tok.Token, revoked, users)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.False(t, called)
}

func TestJWTAuthDeletedUser(t *testing.T) {
    tok, err := utils.NewAccessToken("test-secret", "HS256", "ghost@example.com", "user", 15)
    require.NoError(t, err)

    rec, _, called := runGuard(t, "Bearer "+tok.Token, &fakeRevocations{}, &fakeUsers{})
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.False(t, called)
}

func TestJWTAuthSuccessUsesPersistedRole(t *testing.T) {
    // Token claims say admin, the database says user: the database wins.
    tok, err := utils.NewAccessToken("test-secret", "HS256", "alice@example.com", "admin", 15)
    require.NoError(t, err)

    users := &fakeUsers{users: map[string]model.User{
        "alice@example.com": {ID: 42, Email: "alice@example.com", Role: "user"},
    }}
    rec, c, called := runGuard(t, "Bearer "+tok.Token, &fakeRevocations{}, users)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.True(t, called)
    assert.Equal(t, uint64(42), c.Get(CtxUserID))
    assert.Equal(t, "alice@example.com", c.Get(CtxEmail))
    assert.Equal(t, "user", c.Get(CtxRole))
    assert.Equal(t, tok.Token, c.Get(CtxToken))
}
