package repository

import (
	"context"
	"database/sql"

	"github.com/novakir/storefront/internal/model"
)

type AddressRepo struct{ q runner }

func NewAddressRepo(db *sql.DB) *AddressRepo { return &AddressRepo{q: db} }

// Create inserts an address for the user and returns its ID.
func (r *AddressRepo) Create(ctx context.Context, userID uint64, address string) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO user_addresses (user_id, address) VALUES (?,?)", userID, address)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns all addresses of one user.
func (r *AddressRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Address, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id,user_id,address FROM user_addresses WHERE user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Address); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update overwrites an address scoped to its owner.  Returns
// sql.ErrNoRows when the address does not exist or belongs to another
// user.
func (r *AddressRepo) Update(ctx context.Context, addressID, userID uint64, address string) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE user_addresses SET address=? WHERE id=? AND user_id=?", address, addressID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.q.QueryRowContext(ctx,
			"SELECT 1 FROM user_addresses WHERE id=? AND user_id=? LIMIT 1", addressID, userID).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an address scoped to its owner.
func (r *AddressRepo) Delete(ctx context.Context, addressID, userID uint64) error {
	res, err := r.q.ExecContext(ctx,
		"DELETE FROM user_addresses WHERE id=? AND user_id=?", addressID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
