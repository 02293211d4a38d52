package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/novakir/storefront/internal/model"
)

// CouponRepo provides CRUD over `coupons`.  When bound to a transaction
// via WithTx, GetByCode locks the coupon row (SELECT ... FOR UPDATE) so
// that concurrent order creations using the same code serialize their
// usage-count checks against the subsequent order insert.
type CouponRepo struct {
	q       runner
	locking bool
}

func NewCouponRepo(db *sql.DB) *CouponRepo { return &CouponRepo{q: db} }

// WithTx returns a copy bound to tx with row locking enabled.
func (r *CouponRepo) WithTx(tx *sql.Tx) *CouponRepo { return &CouponRepo{q: tx, locking: true} }

const couponColumns = "id,code,discount_type,discount_value,min_order_amount,start_date,end_date,usage_limit,usage_per_user,is_active"

func scanCoupon(row *sql.Row) (model.Coupon, error) {
	var c model.Coupon
	var limit sql.NullInt64
	err := row.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderAmount,
		&c.StartDate, &c.EndDate, &limit, &c.UsagePerUser, &c.IsActive)
	if err != nil {
		return model.Coupon{}, err
	}
	if limit.Valid {
		v := limit.Int64
		c.UsageLimit = &v
	}
	return c, nil
}

// Create inserts a coupon; duplicate codes surface as ErrConflict.
func (r *CouponRepo) Create(ctx context.Context, c model.Coupon) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO coupons (code, discount_type, discount_value, min_order_amount, start_date, end_date, usage_limit, usage_per_user, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		c.Code, c.DiscountType, c.DiscountValue, c.MinOrderAmount, c.StartDate, c.EndDate,
		nullableInt64(c.UsageLimit), c.UsagePerUser, c.IsActive)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByCode fetches a coupon by its unique code.  Missing codes come back
// as ErrCouponNotFound.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (model.Coupon, error) {
	query := "SELECT " + couponColumns + " FROM coupons WHERE code=? LIMIT 1"
	if r.locking {
		query += " FOR UPDATE"
	}
	c, err := scanCoupon(r.q.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return model.Coupon{}, ErrCouponNotFound
	}
	return c, err
}

// GetByID fetches a coupon by primary key.
func (r *CouponRepo) GetByID(ctx context.Context, id uint64) (model.Coupon, error) {
	c, err := scanCoupon(r.q.QueryRowContext(ctx,
		"SELECT "+couponColumns+" FROM coupons WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Coupon{}, ErrCouponNotFound
	}
	return c, err
}

// List returns all coupons ordered by id.
func (r *CouponRepo) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT "+couponColumns+" FROM coupons ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Coupon
	for rows.Next() {
		var c model.Coupon
		var limit sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderAmount,
			&c.StartDate, &c.EndDate, &limit, &c.UsagePerUser, &c.IsActive); err != nil {
			return nil, err
		}
		if limit.Valid {
			v := limit.Int64
			c.UsageLimit = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update writes the full mutable field set of a coupon.  The handler
// applies a CouponPatch to the loaded row first, so unconditional
// overwrite here is correct.
func (r *CouponRepo) Update(ctx context.Context, c model.Coupon) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE coupons SET discount_type=?, discount_value=?, min_order_amount=?, start_date=?, end_date=?, usage_limit=?, usage_per_user=?, is_active=?
		 WHERE id=?`,
		c.DiscountType, c.DiscountValue, c.MinOrderAmount, c.StartDate, c.EndDate,
		nullableInt64(c.UsageLimit), c.UsagePerUser, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is zero both for a missing row and an unchanged one,
		// so re-check existence before reporting not found.
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a coupon by id.
func (r *CouponRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM coupons WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
