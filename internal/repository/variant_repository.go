package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/novakir/storefront/internal/model"
)

// VariantRepo manages purchasable product variants.  Order assembly reads
// variant prices through a transaction-bound copy so the prices used for
// the subtotal are the ones snapshotted into the order items.
type VariantRepo struct{ q runner }

func NewVariantRepo(db *sql.DB) *VariantRepo { return &VariantRepo{q: db} }

// WithTx returns a copy of the repo bound to the given transaction.
func (r *VariantRepo) WithTx(tx *sql.Tx) *VariantRepo { return &VariantRepo{q: tx} }

const variantColumns = "id,product_id,name,sku,price,stock,available"

// Create inserts a variant; duplicate SKUs surface as ErrConflict.
func (r *VariantRepo) Create(ctx context.Context, v model.Variant) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO variants (product_id, name, sku, price, stock, available) VALUES (?,?,?,?,?,?)",
		v.ProductID, v.Name, v.SKU, v.Price, v.Stock, v.Available)
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

// GetByID fetches a variant by primary key.
func (r *VariantRepo) GetByID(ctx context.Context, id uint64) (model.Variant, error) {
	var v model.Variant
	err := r.q.QueryRowContext(ctx,
		"SELECT "+variantColumns+" FROM variants WHERE id=? LIMIT 1", id).
		Scan(&v.ID, &v.ProductID, &v.Name, &v.SKU, &v.Price, &v.Stock, &v.Available)
	return v, err
}

// ListByProduct returns all variants of one product.
func (r *VariantRepo) ListByProduct(ctx context.Context, productID uint64) ([]model.Variant, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+variantColumns+" FROM variants WHERE product_id=? ORDER BY id", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Variant
	for rows.Next() {
		var v model.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.SKU, &v.Price, &v.Stock, &v.Available); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Update overwrites the mutable variant fields.  Changing the SKU to one
// already taken surfaces as ErrConflict.
func (r *VariantRepo) Update(ctx context.Context, v model.Variant) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE variants SET name=?, sku=?, price=?, stock=?, available=? WHERE id=?",
		v.Name, v.SKU, v.Price, v.Stock, v.Available, v.ID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrConflict
	}
	return err
}

// Delete removes a variant by id.  Returns sql.ErrNoRows when missing.
func (r *VariantRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM variants WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
