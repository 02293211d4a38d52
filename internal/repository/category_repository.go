package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/novakir/storefront/internal/model"
)

// CategoryRepo covers both `categories` and `subcategories`; the two are
// only ever managed together by the catalog admin.
type CategoryRepo struct{ q runner }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{q: db} }

// CreateCategory inserts a category under a brand.
func (r *CategoryRepo) CreateCategory(ctx context.Context, c model.Category) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO categories (category_name, brand_id) VALUES (?,?)",
		c.CategoryName, c.BrandID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetCategoryByName fetches a category by name, used for duplicate checks.
func (r *CategoryRepo) GetCategoryByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category
	err := r.q.QueryRowContext(ctx,
		"SELECT id,category_name,brand_id FROM categories WHERE category_name=? LIMIT 1", name).
		Scan(&c.ID, &c.CategoryName, &c.BrandID)
	return c, err
}

// GetCategoryByID fetches a category by primary key.
func (r *CategoryRepo) GetCategoryByID(ctx context.Context, id uint64) (model.Category, error) {
	var c model.Category
	err := r.q.QueryRowContext(ctx,
		"SELECT id,category_name,brand_id FROM categories WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.CategoryName, &c.BrandID)
	return c, err
}

// ListCategories returns all categories.
func (r *CategoryRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT id,category_name,brand_id FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.CategoryName, &c.BrandID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateCategory overwrites the category fields.
func (r *CategoryRepo) UpdateCategory(ctx context.Context, c model.Category) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE categories SET category_name=?, brand_id=? WHERE id=?",
		c.CategoryName, c.BrandID, c.ID)
	return err
}

// DeleteCategory removes a category by id.
func (r *CategoryRepo) DeleteCategory(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateSubCategory inserts a subcategory; the unique name maps
// duplicates to ErrConflict.
func (r *CategoryRepo) CreateSubCategory(ctx context.Context, sc model.SubCategory) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO subcategories (sub_category_name, category_id, brand_id) VALUES (?,?,?)",
		sc.SubCategoryName, sc.CategoryID, sc.BrandID)
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

// GetSubCategoryByID fetches a subcategory by primary key.
func (r *CategoryRepo) GetSubCategoryByID(ctx context.Context, id uint64) (model.SubCategory, error) {
	var sc model.SubCategory
	err := r.q.QueryRowContext(ctx,
		"SELECT id,sub_category_name,category_id,brand_id FROM subcategories WHERE id=? LIMIT 1", id).
		Scan(&sc.ID, &sc.SubCategoryName, &sc.CategoryID, &sc.BrandID)
	return sc, err
}

// ListSubCategories returns all subcategories.
func (r *CategoryRepo) ListSubCategories(ctx context.Context) ([]model.SubCategory, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id,sub_category_name,category_id,brand_id FROM subcategories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.SubCategory
	for rows.Next() {
		var sc model.SubCategory
		if err := rows.Scan(&sc.ID, &sc.SubCategoryName, &sc.CategoryID, &sc.BrandID); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// UpdateSubCategory overwrites the subcategory fields.
func (r *CategoryRepo) UpdateSubCategory(ctx context.Context, sc model.SubCategory) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE subcategories SET sub_category_name=?, category_id=?, brand_id=? WHERE id=?",
		sc.SubCategoryName, sc.CategoryID, sc.BrandID, sc.ID)
	return err
}

// DeleteSubCategory removes a subcategory by id.
func (r *CategoryRepo) DeleteSubCategory(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM subcategories WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
