package repository

import (
	"context"
	"database/sql"
)

type WishlistRepo struct{ q runner }

func NewWishlistRepo(db *sql.DB) *WishlistRepo { return &WishlistRepo{q: db} }

// Add saves a product to the user's wishlist.  Returns ErrConflict when
// the product is already saved.
func (r *WishlistRepo) Add(ctx context.Context, userID, productID uint64) error {
	var one int
	err := r.q.QueryRowContext(ctx,
		"SELECT 1 FROM wishlist WHERE user_id=? AND product_id=? LIMIT 1",
		userID, productID).Scan(&one)
	switch {
	case err == nil:
		return ErrConflict
	case err != sql.ErrNoRows:
		return err
	}
	_, err = r.q.ExecContext(ctx,
		"INSERT INTO wishlist (user_id, product_id) VALUES (?,?)", userID, productID)
	return err
}

// WishlistEntry is a wishlist row joined with its product name.
type WishlistEntry struct {
	ProductID   uint64 `json:"product_id"`
	ProductName string `json:"product_name"`
}

// List returns the user's wishlist with product names.
func (r *WishlistRepo) List(ctx context.Context, userID uint64) ([]WishlistEntry, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT p.id, p.product_name
		 FROM wishlist w JOIN products p ON w.product_id = p.id
		 WHERE w.user_id = ? ORDER BY w.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []WishlistEntry
	for rows.Next() {
		var e WishlistEntry
		if err := rows.Scan(&e.ProductID, &e.ProductName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Remove deletes one wishlist entry.  Returns sql.ErrNoRows when the
// product was not saved.
func (r *WishlistRepo) Remove(ctx context.Context, userID, productID uint64) error {
	res, err := r.q.ExecContext(ctx,
		"DELETE FROM wishlist WHERE user_id=? AND product_id=?", userID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
