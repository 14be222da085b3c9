package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backoffice-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var productSortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"price":         "price",
	"stockQuantity": "stock_quantity",
}

func (s *Store) ListProducts(ctx context.Context, deleted bool, req PageRequest) (Page[models.Product], error) {
	return selectPage[models.Product](ctx, s.db, "products",
		"WHERE deleted = $1", req.orderClause(productSortColumns), []any{deleted}, req)
}

func (s *Store) SearchProductsByName(ctx context.Context, query string, req PageRequest) (Page[models.Product], error) {
	return selectPage[models.Product](ctx, s.db, "products",
		"WHERE deleted = false AND name ILIKE '%' || $1 || '%'",
		req.orderClause(productSortColumns), []any{query}, req)
}

func (s *Store) FilterProductsByCategory(ctx context.Context, categoryID int64, req PageRequest) (Page[models.Product], error) {
	return selectPage[models.Product](ctx, s.db, "products",
		"WHERE deleted = false AND category_id = $1",
		req.orderClause(productSortColumns), []any{categoryID}, req)
}

func (s *Store) FilterProductsByManufacturer(ctx context.Context, manufacturerID int64, req PageRequest) (Page[models.Product], error) {
	return selectPage[models.Product](ctx, s.db, "products",
		"WHERE deleted = false AND manufacturer_id = $1",
		req.orderClause(productSortColumns), []any{manufacturerID}, req)
}

// FilterProductsBySupplier pages active products linked to the supplier
// through the join table.
func (s *Store) FilterProductsBySupplier(ctx context.Context, supplierID int64, req PageRequest) (Page[models.Product], error) {
	where := `JOIN product_suppliers ps ON ps.product_id = products.id
		WHERE products.deleted = false AND ps.supplier_id = $1`
	return selectPage[models.Product](ctx, s.db, "products",
		where, req.orderClause(productSortColumns), []any{supplierID}, req)
}

// FilterProductsByPriceRange pages active products inside [min, max];
// either bound may be nil.
func (s *Store) FilterProductsByPriceRange(ctx context.Context, min, max *decimal.Decimal, req PageRequest) (Page[models.Product], error) {
	switch {
	case min != nil && max != nil:
		return selectPage[models.Product](ctx, s.db, "products",
			"WHERE deleted = false AND price BETWEEN $1 AND $2",
			req.orderClause(productSortColumns), []any{*min, *max}, req)
	case min != nil:
		return selectPage[models.Product](ctx, s.db, "products",
			"WHERE deleted = false AND price >= $1",
			req.orderClause(productSortColumns), []any{*min}, req)
	case max != nil:
		return selectPage[models.Product](ctx, s.db, "products",
			"WHERE deleted = false AND price <= $1",
			req.orderClause(productSortColumns), []any{*max}, req)
	default:
		return s.ListProducts(ctx, false, req)
	}
}

// GetProductByID returns the product with its supplier ids, or nil.
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	supplierIDs := []int64{}
	err = s.db.SelectContext(ctx, &supplierIDs,
		"SELECT supplier_id FROM product_suppliers WHERE product_id = $1 ORDER BY supplier_id", id)
	if err != nil {
		return nil, err
	}
	product.SupplierIDs = supplierIDs
	return &product, nil
}

// GetProductsByIDs retrieves multiple products by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	err = s.db.SelectContext(ctx, &products, s.db.Rebind(query), args...)
	return products, err
}

// InsertProduct creates the product and its supplier links atomically.
func (s *Store) InsertProduct(ctx context.Context, product *models.Product) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (name, price, stock_quantity, category_id, manufacturer_id, deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := tx.GetContext(ctx, &product.ID, query,
		product.Name, product.Price, product.StockQuantity,
		product.CategoryID, product.ManufacturerID, product.Deleted); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if err := replaceSupplierLinks(ctx, tx, product.ID, product.SupplierIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateProduct persists the product and replaces its supplier links
// atomically.
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = $1, price = $2, stock_quantity = $3, category_id = $4, manufacturer_id = $5
		WHERE id = $6`,
		product.Name, product.Price, product.StockQuantity,
		product.CategoryID, product.ManufacturerID, product.ID)
	if err != nil {
		return err
	}
	if err := requireAffected(result, "products", product.ID); err != nil {
		return err
	}

	if err := replaceSupplierLinks(ctx, tx, product.ID, product.SupplierIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceSupplierLinks(ctx context.Context, tx *sqlx.Tx, productID int64, supplierIDs []int64) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM product_suppliers WHERE product_id = $1", productID); err != nil {
		return fmt.Errorf("failed to clear supplier links: %w", err)
	}
	for _, supplierID := range supplierIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO product_suppliers (product_id, supplier_id) VALUES ($1, $2)",
			productID, supplierID); err != nil {
			return fmt.Errorf("failed to link supplier %d: %w", supplierID, err)
		}
	}
	return nil
}

func (s *Store) SetProductDeleted(ctx context.Context, id int64, deleted bool) error {
	return s.setDeleted(ctx, "products", id, deleted)
}

func (s *Store) SetProductsDeleted(ctx context.Context, ids []int64, deleted bool) error {
	return s.setDeletedBatch(ctx, "products", ids, deleted)
}

// DeleteProduct removes the row; details, reviews and supplier links go
// with it through the FK cascades.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "products", id)
}

func (s *Store) DeleteProducts(ctx context.Context, ids []int64) error {
	return s.deleteRows(ctx, "products", ids)
}
