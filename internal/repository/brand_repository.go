package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/novakir/storefront/internal/model"
)

type BrandRepo struct{ q runner }

func NewBrandRepo(db *sql.DB) *BrandRepo { return &BrandRepo{q: db} }

const brandColumns = "id,brand_name,short_name,short_description,long_description,image"

func scanBrand(scan func(dest ...any) error) (model.Brand, error) {
	var b model.Brand
	err := scan(&b.ID, &b.BrandName, &b.ShortName, &b.ShortDescription, &b.LongDescription, &b.Image)
	return b, err
}

// Create inserts a brand; the unique brand_name maps duplicates to
// ErrConflict.
func (r *BrandRepo) Create(ctx context.Context, b model.Brand) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO brands (brand_name, short_name, short_description, long_description, image) VALUES (?,?,?,?,?)",
		b.BrandName, b.ShortName, b.ShortDescription, b.LongDescription, b.Image)
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

// GetByName fetches a brand by its unique name.
func (r *BrandRepo) GetByName(ctx context.Context, name string) (model.Brand, error) {
	return scanBrand(r.q.QueryRowContext(ctx,
		"SELECT "+brandColumns+" FROM brands WHERE brand_name=? LIMIT 1", name).Scan)
}

// GetByID fetches a brand by primary key.
func (r *BrandRepo) GetByID(ctx context.Context, id uint64) (model.Brand, error) {
	return scanBrand(r.q.QueryRowContext(ctx,
		"SELECT "+brandColumns+" FROM brands WHERE id=? LIMIT 1", id).Scan)
}

// List returns all brands.
func (r *BrandRepo) List(ctx context.Context) ([]model.Brand, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT "+brandColumns+" FROM brands ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Brand
	for rows.Next() {
		b, err := scanBrand(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update overwrites the mutable brand fields.
func (r *BrandRepo) Update(ctx context.Context, b model.Brand) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE brands SET brand_name=?, short_name=?, short_description=?, long_description=?, image=? WHERE id=?",
		b.BrandName, b.ShortName, b.ShortDescription, b.LongDescription, b.Image, b.ID)
	return err
}

// Delete removes a brand by id.  Returns sql.ErrNoRows when missing.
func (r *BrandRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM brands WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
