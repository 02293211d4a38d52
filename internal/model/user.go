package model

import "time"

// Role values stored in users.role.  The two roles are disjoint: an admin
// is not a superset of a user, and route guards compare for exact equality.
const (
    RoleAdmin = "admin"
    RoleUser  = "user"
)

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column.  The json tags are omitted
// because these structs are used internally by the repository layer;
// handlers define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – "admin" or "user".
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    CreatedAt    time.Time // users.created_at
}

// Principal is the authenticated identity derived from a validated access
// token.  It is never persisted; the auth middleware builds it per request
// after the blacklist and user lookups succeed.
type Principal struct {
    UserID uint64
    Email  string
    Role   string
}
