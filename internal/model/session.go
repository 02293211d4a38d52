package model

import "time"

// Session models a row in `user_sessions`.  A session is created at login
// and flipped inactive at logout; it is immutable otherwise.  A user may
// hold any number of concurrent active sessions.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – owner of the session.
//  Token      – the exact access token issued at login (opaque here).
//  IPAddress  – client address recorded at login (nullable).
//  UserAgent  – client user agent recorded at login (nullable).
//  LoginTime  – when the session was opened.
//  LogoutTime – when the session was closed (null while active).
//  IsActive   – whether the session is still live.
type Session struct {
    ID         uint64     // user_sessions.id
    UserID     uint64     // user_sessions.user_id
    Token      string     // user_sessions.token
    IPAddress  *string    // user_sessions.ip_address (nullable)
    UserAgent  *string    // user_sessions.user_agent (nullable)
    LoginTime  time.Time  // user_sessions.login_time
    LogoutTime *time.Time // user_sessions.logout_time (nullable)
    IsActive   bool       // user_sessions.is_active
}

// BlacklistedToken models a row in `blacklisted_tokens`.  A token lands
// here at logout and must be rejected by the auth middleware from then on,
// even while its signature and expiry would otherwise still verify.  Rows
// are never updated or deleted; ExpiresAt only informs offline cleanup.
type BlacklistedToken struct {
    ID            uint64    // blacklisted_tokens.id
    Token         string    // blacklisted_tokens.token (unique)
    BlacklistedAt time.Time // blacklisted_tokens.blacklisted_at
    ExpiresAt     time.Time // blacklisted_tokens.expires_at
}
