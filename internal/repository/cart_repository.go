package repository

import (
	"context"
	"database/sql"
)

// CartRepo manages `carts` rows.  The table carries a unique key over
// (user_id, product_id, variant_id); AddOrIncrement leans on it so two
// concurrent adds of the same variant cannot race a read-then-write on
// the quantity column.
type CartRepo struct{ q runner }

func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{q: db} }

// WithTx returns a copy of the repo bound to the given transaction.
func (r *CartRepo) WithTx(tx *sql.Tx) *CartRepo { return &CartRepo{q: tx} }

// AddOrIncrement inserts a cart row or atomically bumps the quantity of
// the existing (user, product, variant) row.
func (r *CartRepo) AddOrIncrement(ctx context.Context, userID, productID, variantID uint64, quantity int64) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO carts (user_id, product_id, variant_id, quantity) VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		userID, productID, variantID, quantity)
	return err
}

// CartLine is a cart row joined with its product and variant for display
// and for pricing at order creation.  UnitPrice is the CURRENT variant
// price; carts never cache prices.
type CartLine struct {
	ProductID   uint64  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Image       string  `json:"product_image"`
	VariantID   uint64  `json:"variant_id"`
	VariantName string  `json:"variant_name"`
	UnitPrice   float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// ListDetailed returns the user's cart joined with catalog data, with the
// per-line subtotal already computed.
func (r *CartRepo) ListDetailed(ctx context.Context, userID uint64) ([]CartLine, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT p.id, p.product_name, p.prod_image, v.id, v.name, v.price, c.quantity
		 FROM carts c
		 JOIN variants v ON c.variant_id = v.id
		 JOIN products p ON c.product_id = p.id
		 WHERE c.user_id = ?
		 ORDER BY c.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Image, &l.VariantID, &l.VariantName, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, err
		}
		l.Subtotal = l.UnitPrice * float64(l.Quantity)
		out = append(out, l)
	}
	return out, rows.Err()
}

// SetQuantity overwrites the quantity of the user's cart row for a
// product.  Returns sql.ErrNoRows when the row does not exist.
func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID uint64, quantity int64) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE carts SET quantity=? WHERE user_id=? AND product_id=?", quantity, userID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.q.QueryRowContext(ctx,
			"SELECT 1 FROM carts WHERE user_id=? AND product_id=? LIMIT 1", userID, productID).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// DeleteByProduct removes the user's cart row for one product.  Returns
// sql.ErrNoRows when nothing matched.
func (r *CartRepo) DeleteByProduct(ctx context.Context, userID, productID uint64) error {
	res, err := r.q.ExecContext(ctx,
		"DELETE FROM carts WHERE user_id=? AND product_id=?", userID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ClearForUser removes every cart row of the user.  Called inside the
// order-creation transaction after the order and its items persist.
func (r *CartRepo) ClearForUser(ctx context.Context, userID uint64) error {
	_, err := r.q.ExecContext(ctx, "DELETE FROM carts WHERE user_id=?", userID)
	return err
}
