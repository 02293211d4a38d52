package repository

import (
	"context"
	"database/sql"

	"github.com/novakir/storefront/internal/model"
)

// AttributeRepo covers the attribute/term tagging tables plus the
// product-to-term assignment table.
type AttributeRepo struct{ q runner }

func NewAttributeRepo(db *sql.DB) *AttributeRepo { return &AttributeRepo{q: db} }

// CreateAttribute inserts an attribute (e.g. Color).
func (r *AttributeRepo) CreateAttribute(ctx context.Context, a model.Attribute) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO attributes (attribute_name) VALUES (?)", a.AttributeName)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAttributes returns all attributes.
func (r *AttributeRepo) ListAttributes(ctx context.Context) ([]model.Attribute, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT id,attribute_name FROM attributes ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Attribute
	for rows.Next() {
		var a model.Attribute
		if err := rows.Scan(&a.ID, &a.AttributeName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAttribute removes an attribute by id.
func (r *AttributeRepo) DeleteAttribute(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM attributes WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetAttributeByID fetches an attribute by primary key.
func (r *AttributeRepo) GetAttributeByID(ctx context.Context, id uint64) (model.Attribute, error) {
	var a model.Attribute
	err := r.q.QueryRowContext(ctx,
		"SELECT id,attribute_name FROM attributes WHERE id=? LIMIT 1", id).Scan(&a.ID, &a.AttributeName)
	return a, err
}

// CreateTerm inserts a term under an attribute (e.g. Black under Color).
func (r *AttributeRepo) CreateTerm(ctx context.Context, t model.Term) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO terms (value, attribute_id) VALUES (?,?)", t.Value, t.AttributeID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetTermByID fetches a term by primary key.
func (r *AttributeRepo) GetTermByID(ctx context.Context, id uint64) (model.Term, error) {
	var t model.Term
	err := r.q.QueryRowContext(ctx,
		"SELECT id,value,attribute_id FROM terms WHERE id=? LIMIT 1", id).Scan(&t.ID, &t.Value, &t.AttributeID)
	return t, err
}

// ListTermsByAttribute returns all terms of one attribute.
func (r *AttributeRepo) ListTermsByAttribute(ctx context.Context, attributeID uint64) ([]model.Term, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id,value,attribute_id FROM terms WHERE attribute_id=? ORDER BY id", attributeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Term
	for rows.Next() {
		var t model.Term
		if err := rows.Scan(&t.ID, &t.Value, &t.AttributeID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTerm removes a term by id.
func (r *AttributeRepo) DeleteTerm(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM terms WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AssignTerm links a product to a term.
func (r *AttributeRepo) AssignTerm(ctx context.Context, productID, termID uint64) (uint64, error) {
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO product_assignments (product_id, term_id) VALUES (?,?)", productID, termID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAssignmentsByProduct returns the term assignments of one product.
func (r *AttributeRepo) ListAssignmentsByProduct(ctx context.Context, productID uint64) ([]model.ProductAssignment, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id,product_id,term_id FROM product_assignments WHERE product_id=? ORDER BY id", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ProductAssignment
	for rows.Next() {
		var pa model.ProductAssignment
		if err := rows.Scan(&pa.ID, &pa.ProductID, &pa.TermID); err != nil {
			return nil, err
		}
		out = append(out, pa)
	}
	return out, rows.Err()
}

// DeleteAssignment removes a product-term link by id.
func (r *AttributeRepo) DeleteAssignment(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM product_assignments WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
