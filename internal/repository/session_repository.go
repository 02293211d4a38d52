package repository

import (
	"context"
	"database/sql"
	"time"
)

// SessionRepo persists login sessions in `user_sessions` and revoked
// tokens in `blacklisted_tokens`.  Sessions only ever move from active to
// inactive; blacklist rows are append-only.
type SessionRepo struct{ q runner }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{q: db} }

// WithTx returns a copy of the repo bound to the given transaction.
func (r *SessionRepo) WithTx(tx *sql.Tx) *SessionRepo { return &SessionRepo{q: tx} }

// Open inserts a new active session row at login.  There is no cap on
// concurrent sessions per user.
func (r *SessionRepo) Open(ctx context.Context, userID uint64, token string, ip, userAgent *string) error {
	_, err := r.q.ExecContext(ctx,
		"INSERT INTO user_sessions (user_id, token, ip_address, user_agent, is_active) VALUES (?,?,?,?,1)",
		userID, token, ip, userAgent)
	return err
}

// Close marks the unique active session for the exact (user, token) pair
// as logged out.  It returns ErrSessionNotFound when no row matches:
// either the session was already closed or the token belongs to a
// different session.
func (r *SessionRepo) Close(ctx context.Context, userID uint64, token string) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE user_sessions SET is_active=0, logout_time=UTC_TIMESTAMP() WHERE user_id=? AND token=? AND is_active=1",
		userID, token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Blacklist inserts the token into `blacklisted_tokens`.  expiresAt comes
// from the token's own exp claim and only informs offline cleanup; the
// middleware rejects a blacklisted token for as long as the row exists.
func (r *SessionRepo) Blacklist(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.q.ExecContext(ctx,
		"INSERT INTO blacklisted_tokens (token, expires_at) VALUES (?,?)",
		token, expiresAt)
	return err
}

// IsBlacklisted reports whether the exact token string has been revoked.
func (r *SessionRepo) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var one int
	err := r.q.QueryRowContext(ctx,
		"SELECT 1 FROM blacklisted_tokens WHERE token=? LIMIT 1", token).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
