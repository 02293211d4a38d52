package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/config"
    "github.com/novakir/storefront/internal/middleware"
    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/repository"
    "github.com/novakir/storefront/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.  Logout
// needs the raw DB handle because it writes the session close and the
// blacklist row in one transaction.
type AuthHandler struct {
    Cfg      config.Config
    DB       *sql.DB
    Users    *repository.UserRepo
    Sessions *repository.SessionRepo
}

func NewAuthHandler(cfg config.Config, db *sql.DB, u *repository.UserRepo, s *repository.SessionRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, DB: db, Users: u, Sessions: s}
}

// ----- DTOs -----

type signupReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type tokenPart struct {
    Token   string    `json:"access_token"`
    Type    string    `json:"token_type"`
    Expires time.Time `json:"expires"`
}
type userPart struct {
    ID    uint64 `json:"id"`
    Email string `json:"email"`
    Role  string `json:"role"`
}

// Signup creates a user account. The very first account on a fresh
// database becomes the admin; everyone after that is a regular user.
func (h *AuthHandler) Signup(c echo.Context) error {
    var req signupReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    total, err := h.Users.Count(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    role := model.RoleUser
    if total == 0 {
        role = model.RoleAdmin
    }

    uid, err := h.Users.Create(ctx, req.Email, req.Password, role, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }

    return c.JSON(http.StatusCreated, userPart{ID: uid, Email: req.Email, Role: role})
}

// Login verifies credentials, issues an access token and records a
// session row so the token can be revoked later.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.JWTAlgorithm, u.Email, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }

    ip := c.RealIP()
    ua := c.Request().UserAgent()
    if err := h.Sessions.Open(ctx, u.ID, access.Token, &ip, &ua); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open session failed"})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "user":   userPart{ID: u.ID, Email: u.Email, Role: u.Role},
        "access": tokenPart{Token: access.Token, Type: "bearer", Expires: access.Exp},
    })
}

// sessionRevoker is the slice of SessionRepo that logout needs.
type sessionRevoker interface {
    Close(ctx context.Context, userID uint64, token string) error
    Blacklist(ctx context.Context, token string, expiresAt time.Time) error
}

// revokeSession closes the session row, then blacklists the token until
// its own exp claim (the signature was verified upstream, so an
// unverified decode is enough to read the expiry).  A token whose exp
// cannot be decoded is blacklisted for one fresh TTL instead of failing
// the logout.  A Close failure stops the sequence so the caller's
// transaction rolls back with neither write applied.
func revokeSession(ctx context.Context, s sessionRevoker, userID uint64, token string, fallbackTTLMin int) error {
    if err := s.Close(ctx, userID, token); err != nil {
        return err
    }
    exp, err := utils.DecodeExpiryUnverified(token)
    if err != nil {
        exp = time.Now().UTC().Add(time.Duration(fallbackTTLMin) * time.Minute)
    }
    return s.Blacklist(ctx, token, exp)
}

// Logout closes the caller's active session for the presented token and
// blacklists the token until its natural expiry. Both writes share one
// transaction: a half-applied logout would leave the session closed
// while the token keeps working. Runs behind the JWT middleware, so the
// token in context already passed signature and blacklist checks.
func (h *AuthHandler) Logout(c echo.Context) error {
    uid, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    raw, _ := c.Get(middleware.CtxToken).(string)
    if raw == "" {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    tx, err := h.DB.BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := revokeSession(ctx, h.Sessions.WithTx(tx), uid, raw, h.Cfg.AccessTTLMin); err != nil {
        if errors.Is(err, repository.ErrSessionNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "active session not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
    }
    committed = true

    return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the authenticated identity as resolved by the middleware.
func (h *AuthHandler) Me(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "user_id": c.Get(middleware.CtxUserID),
        "email":   c.Get(middleware.CtxEmail),
        "role":    c.Get(middleware.CtxRole),
    })
}
