package repository

import (
	"context"
	"database/sql"

	"github.com/novakir/storefront/internal/model"
)

// OrderRepo provides access to `orders` and `order_items`.  Order creation
// always happens inside a transaction shared with the cart clear, so the
// write methods are used through WithTx.
type OrderRepo struct{ q runner }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{q: db} }

// WithTx returns a copy of the repo bound to the given transaction.
func (r *OrderRepo) WithTx(tx *sql.Tx) *OrderRepo { return &OrderRepo{q: tx} }

// Create inserts the order header and populates the generated ID and
// creation time on the passed record.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO orders (user_id, coupon_id, total_amount, discount_amount, status) VALUES (?,?,?,?,?)",
		o.UserID, nullableUint64(o.CouponID), o.TotalAmount, o.DiscountAmount, o.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return r.q.QueryRowContext(ctx,
		"SELECT created_at FROM orders WHERE id=?", o.ID).Scan(&o.CreatedAt)
}

// InsertItems bulk-inserts the order line items in one statement.  Each
// row snapshots the unit price used when the order total was computed;
// that price is never recomputed afterwards.
func (r *OrderRepo) InsertItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := "INSERT INTO order_items (order_id, product_id, variant_id, quantity, price) VALUES "
	args := make([]any, 0, len(items)*5)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?,?)"
		args = append(args, it.OrderID, it.ProductID, nullableUint64(it.VariantID), it.Quantity, it.Price)
	}
	_, err := r.q.ExecContext(ctx, query, args...)
	return err
}

// CountByCoupon counts every order referencing the coupon, regardless of
// status.  Orders are hard-deleted, so a deleted order stops counting;
// that matches the observed semantics and is intentionally left as is.
func (r *OrderRepo) CountByCoupon(ctx context.Context, couponID uint64) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE coupon_id=?", couponID).Scan(&n)
	return n, err
}

// CountByCouponAndUser counts the orders of one user referencing the coupon.
func (r *OrderRepo) CountByCouponAndUser(ctx context.Context, couponID, userID uint64) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE coupon_id=? AND user_id=?", couponID, userID).Scan(&n)
	return n, err
}

const orderColumns = "id,user_id,coupon_id,total_amount,discount_amount,status,created_at"

func scanOrder(scan func(dest ...any) error) (model.Order, error) {
	var o model.Order
	var couponID sql.NullInt64
	err := scan(&o.ID, &o.UserID, &couponID, &o.TotalAmount, &o.DiscountAmount, &o.Status, &o.CreatedAt)
	if err != nil {
		return model.Order{}, err
	}
	if couponID.Valid {
		v := uint64(couponID.Int64)
		o.CouponID = &v
	}
	return o, nil
}

// ListByUser returns all orders of one user, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id=? ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetByIDForUser returns one order scoped to its owner.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (model.Order, error) {
	o, err := scanOrder(r.q.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id=? AND user_id=? LIMIT 1", orderID, userID).Scan)
	if err == sql.ErrNoRows {
		return model.Order{}, ErrOrderNotFound
	}
	return o, err
}

// ListItems returns the line items of an order.
func (r *OrderRepo) ListItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id,order_id,product_id,variant_id,quantity,price FROM order_items WHERE order_id=? ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		var variantID sql.NullInt64
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &variantID, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		if variantID.Valid {
			v := uint64(variantID.Int64)
			it.VariantID = &v
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status column without any transition checks; the
// admin endpoint accepts any value.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID uint64, status string) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE orders SET status=? WHERE id=?", status, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Unchanged status also reports zero rows; verify existence.
		var one int
		if err := r.q.QueryRowContext(ctx, "SELECT 1 FROM orders WHERE id=? LIMIT 1", orderID).Scan(&one); err == sql.ErrNoRows {
			return ErrOrderNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// DeleteForUser removes a pending order of the given user together with
// its line items.  Non-pending orders return ErrOrderNotPending.
func (r *OrderRepo) DeleteForUser(ctx context.Context, orderID, userID uint64) error {
	var status string
	err := r.q.QueryRowContext(ctx,
		"SELECT status FROM orders WHERE id=? AND user_id=? LIMIT 1", orderID, userID).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if status != model.StatusPending {
		return ErrOrderNotPending
	}
	if _, err := r.q.ExecContext(ctx, "DELETE FROM order_items WHERE order_id=?", orderID); err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, "DELETE FROM orders WHERE id=?", orderID)
	return err
}

func nullableUint64(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}
