package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/novakir/storefront/internal/model"
)

// ProductRepo provides catalog product persistence plus the browse
// queries (price/category/brand filters and cross-entity search).
type ProductRepo struct{ q runner }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{q: db} }

const productColumns = "id,product_name,prod_image,product_price,product_description,brand_id,sub_category_id,category_id"

func scanProductRows(rows *sql.Rows) ([]model.Product, error) {
	defer rows.Close()
	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Image, &p.Price, &p.Description,
			&p.BrandID, &p.SubCategoryID, &p.CategoryID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts a product; the unique product_name maps duplicates to
// ErrConflict.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO products (product_name, prod_image, product_price, product_description, brand_id, sub_category_id, category_id)
		 VALUES (?,?,?,?,?,?,?)`,
		p.ProductName, p.Image, p.Price, p.Description, p.BrandID, p.SubCategoryID, p.CategoryID)
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

// GetByID fetches a product by primary key.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	var p model.Product
	err := r.q.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.ProductName, &p.Image, &p.Price, &p.Description,
			&p.BrandID, &p.SubCategoryID, &p.CategoryID)
	return p, err
}

// List returns all products.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	return scanProductRows(rows)
}

// FilterByPrice returns the products whose base price lies in [min, max].
func (r *ProductRepo) FilterByPrice(ctx context.Context, min, max float64) ([]model.Product, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE product_price >= ? AND product_price <= ? ORDER BY id",
		min, max)
	if err != nil {
		return nil, err
	}
	return scanProductRows(rows)
}

// FilterByCategory returns the products of one category.
func (r *ProductRepo) FilterByCategory(ctx context.Context, categoryID uint64) ([]model.Product, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE category_id=? ORDER BY id", categoryID)
	if err != nil {
		return nil, err
	}
	return scanProductRows(rows)
}

// FilterByBrand returns the products of one brand.
func (r *ProductRepo) FilterByBrand(ctx context.Context, brandID uint64) ([]model.Product, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE brand_id=? ORDER BY id", brandID)
	if err != nil {
		return nil, err
	}
	return scanProductRows(rows)
}

// Search matches the query against product name and description plus the
// joined brand, category and subcategory names, case-insensitively.
func (r *ProductRepo) Search(ctx context.Context, query string) ([]model.Product, error) {
	term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := r.q.QueryContext(ctx,
		`SELECT p.id, p.product_name, p.prod_image, p.product_price, p.product_description, p.brand_id, p.sub_category_id, p.category_id
		 FROM products p
		 LEFT JOIN brands b ON p.brand_id = b.id
		 LEFT JOIN categories c ON p.category_id = c.id
		 LEFT JOIN subcategories sc ON p.sub_category_id = sc.id
		 WHERE LOWER(p.product_name) LIKE ?
		    OR LOWER(p.product_description) LIKE ?
		    OR LOWER(b.brand_name) LIKE ?
		    OR LOWER(c.category_name) LIKE ?
		    OR LOWER(sc.sub_category_name) LIKE ?
		 ORDER BY p.id`,
		term, term, term, term, term)
	if err != nil {
		return nil, err
	}
	return scanProductRows(rows)
}

// Update overwrites the mutable product fields.
func (r *ProductRepo) Update(ctx context.Context, p model.Product) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE products SET product_name=?, prod_image=?, product_price=?, product_description=?, brand_id=?, sub_category_id=?, category_id=?
		 WHERE id=?`,
		p.ProductName, p.Image, p.Price, p.Description, p.BrandID, p.SubCategoryID, p.CategoryID, p.ID)
	return err
}

// Delete removes a product by id.  Returns sql.ErrNoRows when missing.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
