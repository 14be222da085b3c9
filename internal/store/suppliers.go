package store

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/internal/models"

	"github.com/jmoiron/sqlx"
)

var supplierSortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"contactPerson": "contact_person",
}

func (s *Store) ListSuppliers(ctx context.Context, deleted bool, req PageRequest) (Page[models.Supplier], error) {
	return selectPage[models.Supplier](ctx, s.db, "suppliers",
		"WHERE deleted = $1", req.orderClause(supplierSortColumns), []any{deleted}, req)
}

func (s *Store) SearchSuppliersByName(ctx context.Context, query string, req PageRequest) (Page[models.Supplier], error) {
	return selectPage[models.Supplier](ctx, s.db, "suppliers",
		"WHERE deleted = false AND name ILIKE '%' || $1 || '%'",
		req.orderClause(supplierSortColumns), []any{query}, req)
}

func (s *Store) GetSupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.GetContext(ctx, &supplier, "SELECT * FROM suppliers WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// GetSuppliersByIDs retrieves multiple suppliers; callers compare the
// result count against the requested ids to detect missing ones.
func (s *Store) GetSuppliersByIDs(ctx context.Context, ids []int64) ([]models.Supplier, error) {
	if len(ids) == 0 {
		return []models.Supplier{}, nil
	}
	query, args, err := sqlx.In("SELECT * FROM suppliers WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	var suppliers []models.Supplier
	err = s.db.SelectContext(ctx, &suppliers, s.db.Rebind(query), args...)
	return suppliers, err
}

func (s *Store) InsertSupplier(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (name, contact_person, email, phone, address, deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	return s.db.GetContext(ctx, &supplier.ID, query,
		supplier.Name, supplier.ContactPerson, supplier.Email,
		supplier.Phone, supplier.Address, supplier.Deleted)
}

func (s *Store) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE suppliers
		SET name = $1, contact_person = $2, email = $3, phone = $4, address = $5
		WHERE id = $6`,
		supplier.Name, supplier.ContactPerson, supplier.Email,
		supplier.Phone, supplier.Address, supplier.ID)
	if err != nil {
		return err
	}
	return requireAffected(result, "suppliers", supplier.ID)
}

func (s *Store) SetSupplierDeleted(ctx context.Context, id int64, deleted bool) error {
	return s.setDeleted(ctx, "suppliers", id, deleted)
}

func (s *Store) SetSuppliersDeleted(ctx context.Context, ids []int64, deleted bool) error {
	return s.setDeletedBatch(ctx, "suppliers", ids, deleted)
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "suppliers", id)
}

func (s *Store) DeleteSuppliers(ctx context.Context, ids []int64) error {
	return s.deleteRows(ctx, "suppliers", ids)
}
