package handler

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/novakir/storefront/internal/repository"
    "github.com/novakir/storefront/internal/utils"
)

type fakeSessionRevoker struct {
    closeErr     error
    blacklistErr error

    closedUser  uint64
    closedToken string
    blacklisted bool
    expiresAt   time.Time
}

func (f *fakeSessionRevoker) Close(_ context.Context, userID uint64, token string) error {
    if f.closeErr != nil {
        return f.closeErr
    }
    f.closedUser = userID
    f.closedToken = token
    return nil
}

func (f *fakeSessionRevoker) Blacklist(_ context.Context, token string, expiresAt time.Time) error {
    if f.blacklistErr != nil {
        return f.blacklistErr
    }
    f.blacklisted = true
    f.expiresAt = expiresAt
    return nil
}

func TestRevokeSessionUsesTokenExpiry(t *testing.T) {
    access, err := utils.NewAccessToken("secret", "HS256", "a@b.c", "user", 30)
    require.NoError(t, err)

    s := &fakeSessionRevoker{}
    require.NoError(t, revokeSession(context.Background(), s, 9, access.Token, 15))

    assert.Equal(t, uint64(9), s.closedUser)
    assert.Equal(t, access.Token, s.closedToken)
    assert.True(t, s.blacklisted)
    assert.WithinDuration(t, access.Exp, s.expiresAt, time.Second)
}

func TestRevokeSessionExpiryFallback(t *testing.T) {
    // An undecodable token is still blacklisted, for one fresh TTL.
    s := &fakeSessionRevoker{}
    require.NoError(t, revokeSession(context.Background(), s, 9, "not-a-jwt", 15))

    assert.True(t, s.blacklisted)
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), s.expiresAt, 5*time.Second)
}

func TestRevokeSessionStopsWhenCloseFails(t *testing.T) {
    // No blacklist write without a matching session row; the sentinel
    // surfaces unchanged so the handler can answer 404.
    s := &fakeSessionRevoker{closeErr: repository.ErrSessionNotFound}
    err := revokeSession(context.Background(), s, 9, "tok", 15)

    require.ErrorIs(t, err, repository.ErrSessionNotFound)
    assert.False(t, s.blacklisted)
}

func TestRevokeSessionSurfacesBlacklistFailure(t *testing.T) {
    s := &fakeSessionRevoker{blacklistErr: errors.New("insert failed")}
    err := revokeSession(context.Background(), s, 9, "tok", 15)

    require.Error(t, err)
    assert.NotErrorIs(t, err, repository.ErrSessionNotFound)
}
