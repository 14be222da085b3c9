package store

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/internal/models"
)

var manufacturerSortColumns = map[string]string{
	"id":      "id",
	"name":    "name",
	"country": "country",
}

func (s *Store) ListManufacturers(ctx context.Context, deleted bool, req PageRequest) (Page[models.Manufacturer], error) {
	return selectPage[models.Manufacturer](ctx, s.db, "manufacturers",
		"WHERE deleted = $1", req.orderClause(manufacturerSortColumns), []any{deleted}, req)
}

func (s *Store) SearchManufacturersByName(ctx context.Context, query string, req PageRequest) (Page[models.Manufacturer], error) {
	return selectPage[models.Manufacturer](ctx, s.db, "manufacturers",
		"WHERE deleted = false AND name ILIKE '%' || $1 || '%'",
		req.orderClause(manufacturerSortColumns), []any{query}, req)
}

// FilterManufacturersByCountry matches the country exactly, ignoring case.
func (s *Store) FilterManufacturersByCountry(ctx context.Context, country string, req PageRequest) (Page[models.Manufacturer], error) {
	return selectPage[models.Manufacturer](ctx, s.db, "manufacturers",
		"WHERE deleted = false AND LOWER(country) = LOWER($1)",
		req.orderClause(manufacturerSortColumns), []any{country}, req)
}

func (s *Store) GetManufacturerByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	var m models.Manufacturer
	err := s.db.GetContext(ctx, &m, "SELECT * FROM manufacturers WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) InsertManufacturer(ctx context.Context, m *models.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (name, country, email, phone, address, deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	return s.db.GetContext(ctx, &m.ID, query,
		m.Name, m.Country, m.Email, m.Phone, m.Address, m.Deleted)
}

func (s *Store) UpdateManufacturer(ctx context.Context, m *models.Manufacturer) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE manufacturers
		SET name = $1, country = $2, email = $3, phone = $4, address = $5
		WHERE id = $6`,
		m.Name, m.Country, m.Email, m.Phone, m.Address, m.ID)
	if err != nil {
		return err
	}
	return requireAffected(result, "manufacturers", m.ID)
}

func (s *Store) SetManufacturerDeleted(ctx context.Context, id int64, deleted bool) error {
	return s.setDeleted(ctx, "manufacturers", id, deleted)
}

func (s *Store) SetManufacturersDeleted(ctx context.Context, ids []int64, deleted bool) error {
	return s.setDeletedBatch(ctx, "manufacturers", ids, deleted)
}

func (s *Store) DeleteManufacturer(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "manufacturers", id)
}

func (s *Store) DeleteManufacturers(ctx context.Context, ids []int64) error {
	return s.deleteRows(ctx, "manufacturers", ids)
}
