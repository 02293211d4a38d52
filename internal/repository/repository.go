// Package repository implements typed access to the relational schema.
// Each aggregate gets its own repo struct over database/sql.  Repos are
// constructed once against the *sql.DB pool; flows that need multi-step
// atomicity (order assembly, logout) rebind a repo to a transaction with
// WithTx so every statement inside the flow shares the same tx.
package repository

import (
    "context"
    "database/sql"
)

// runner is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Binding repos to this interface is what makes WithTx possible.
type runner interface {
    ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
    QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
    QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
