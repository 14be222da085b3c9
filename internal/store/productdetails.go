package store

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/internal/models"
)

var productDetailsSortColumns = map[string]string{
	"id":                 "id",
	"characteristicName": "characteristic_name",
	"productId":          "product_id",
}

func (s *Store) ListProductDetails(ctx context.Context, deleted bool, req PageRequest) (Page[models.ProductDetails], error) {
	return selectPage[models.ProductDetails](ctx, s.db, "product_details",
		"WHERE deleted = $1", req.orderClause(productDetailsSortColumns), []any{deleted}, req)
}

func (s *Store) SearchProductDetailsByName(ctx context.Context, query string, req PageRequest) (Page[models.ProductDetails], error) {
	return selectPage[models.ProductDetails](ctx, s.db, "product_details",
		"WHERE deleted = false AND characteristic_name ILIKE '%' || $1 || '%'",
		req.orderClause(productDetailsSortColumns), []any{query}, req)
}

func (s *Store) FilterProductDetailsByProduct(ctx context.Context, productID int64, req PageRequest) (Page[models.ProductDetails], error) {
	return selectPage[models.ProductDetails](ctx, s.db, "product_details",
		"WHERE deleted = false AND product_id = $1",
		req.orderClause(productDetailsSortColumns), []any{productID}, req)
}

func (s *Store) GetProductDetailsByID(ctx context.Context, id int64) (*models.ProductDetails, error) {
	var details models.ProductDetails
	err := s.db.GetContext(ctx, &details, "SELECT * FROM product_details WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (s *Store) InsertProductDetails(ctx context.Context, details *models.ProductDetails) error {
	query := `
		INSERT INTO product_details (product_id, characteristic_name, characteristic_value, deleted)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return s.db.GetContext(ctx, &details.ID, query,
		details.ProductID, details.CharacteristicName,
		details.CharacteristicValue, details.Deleted)
}

func (s *Store) UpdateProductDetails(ctx context.Context, details *models.ProductDetails) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE product_details
		SET product_id = $1, characteristic_name = $2, characteristic_value = $3
		WHERE id = $4`,
		details.ProductID, details.CharacteristicName,
		details.CharacteristicValue, details.ID)
	if err != nil {
		return err
	}
	return requireAffected(result, "product_details", details.ID)
}

func (s *Store) SetProductDetailsDeleted(ctx context.Context, id int64, deleted bool) error {
	return s.setDeleted(ctx, "product_details", id, deleted)
}

func (s *Store) SetProductDetailsDeletedBatch(ctx context.Context, ids []int64, deleted bool) error {
	return s.setDeletedBatch(ctx, "product_details", ids, deleted)
}

func (s *Store) DeleteProductDetails(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "product_details", id)
}

func (s *Store) DeleteProductDetailsBatch(ctx context.Context, ids []int64) error {
	return s.deleteRows(ctx, "product_details", ids)
}
