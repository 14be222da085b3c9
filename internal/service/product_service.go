package service

import (
	"context"
	"fmt"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, deleted bool, req store.PageRequest) (store.Page[models.Product], error)
	SearchProductsByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Product], error)
	FilterProductsByCategory(ctx context.Context, categoryID int64, req store.PageRequest) (store.Page[models.Product], error)
	FilterProductsByManufacturer(ctx context.Context, manufacturerID int64, req store.PageRequest) (store.Page[models.Product], error)
	FilterProductsBySupplier(ctx context.Context, supplierID int64, req store.PageRequest) (store.Page[models.Product], error)
	FilterProductsByPriceRange(ctx context.Context, min, max *decimal.Decimal, req store.PageRequest) (store.Page[models.Product], error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	InsertProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	SetProductDeleted(ctx context.Context, id int64, deleted bool) error
	SetProductsDeleted(ctx context.Context, ids []int64, deleted bool) error
	DeleteProduct(ctx context.Context, id int64) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

// SupplierResolver is the supplier lookup the product service needs to
// validate link targets.
type SupplierResolver interface {
	GetSuppliersByIDs(ctx context.Context, ids []int64) ([]models.Supplier, error)
}

type CategoryResolver interface {
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
}

type ManufacturerResolver interface {
	GetManufacturerByID(ctx context.Context, id int64) (*models.Manufacturer, error)
}

// ProductService validates references before any write: a product with
// an unknown category, manufacturer or supplier is never persisted.
type ProductService struct {
	repo          ProductRepository
	categories    CategoryResolver
	manufacturers ManufacturerResolver
	suppliers     SupplierResolver
	logger        *zap.Logger
}

func NewProductService(repo ProductRepository, categories CategoryResolver,
	manufacturers ManufacturerResolver, suppliers SupplierResolver) *ProductService {
	return &ProductService{
		repo:          repo,
		categories:    categories,
		manufacturers: manufacturers,
		suppliers:     suppliers,
		logger:        util.GetLogger(),
	}
}

func (s *ProductService) FindAllActive(ctx context.Context, req store.PageRequest) (store.Page[models.Product], error) {
	return s.repo.ListProducts(ctx, false, req)
}

func (s *ProductService) FindAllDeleted(ctx context.Context, req store.PageRequest) (store.Page[models.Product], error) {
	return s.repo.ListProducts(ctx, true, req)
}

func (s *ProductService) SearchByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Product], error) {
	return s.repo.SearchProductsByName(ctx, query, req)
}

func (s *ProductService) FilterByCategory(ctx context.Context, categoryID int64, req store.PageRequest) (store.Page[models.Product], error) {
	return s.repo.FilterProductsByCategory(ctx, categoryID, req)
}

func (s *ProductService) FilterByManufacturer(ctx context.Context, manufacturerID int64, req store.PageRequest) (store.Page[models.Product], error) {
	return s.repo.FilterProductsByManufacturer(ctx, manufacturerID, req)
}

func (s *ProductService) FilterBySupplier(ctx context.Context, supplierID int64, req store.PageRequest) (store.Page[models.Product], error) {
	return s.repo.FilterProductsBySupplier(ctx, supplierID, req)
}

func (s *ProductService) FilterByPriceRange(ctx context.Context, min, max *decimal.Decimal, req store.PageRequest) (store.Page[models.Product], error) {
	if min != nil && max != nil && min.GreaterThan(*max) {
		return store.Page[models.Product]{}, apperr.InvalidArgument("minPrice must not exceed maxPrice")
	}
	return s.repo.FilterProductsByPriceRange(ctx, min, max, req)
}

func (s *ProductService) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product %d not found", id)
	}
	return product, nil
}

func (s *ProductService) validate(product *models.Product) error {
	var fields []apperr.FieldError
	if product.Name == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	if !product.Price.IsPositive() {
		fields = append(fields, apperr.FieldError{Field: "price", Message: "must be greater than zero"})
	}
	if product.StockQuantity < 0 {
		fields = append(fields, apperr.FieldError{Field: "stockQuantity", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return apperr.Validation("validation failed", fields...)
	}
	return nil
}

// resolveRefs checks every referenced entity before a write touches the
// database.
func (s *ProductService) resolveRefs(ctx context.Context, product *models.Product) error {
	category, err := s.categories.GetCategoryByID(ctx, product.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperr.NotFound("category %d not found", product.CategoryID)
	}

	manufacturer, err := s.manufacturers.GetManufacturerByID(ctx, product.ManufacturerID)
	if err != nil {
		return err
	}
	if manufacturer == nil {
		return apperr.NotFound("manufacturer %d not found", product.ManufacturerID)
	}

	if len(product.SupplierIDs) > 0 {
		found, err := s.suppliers.GetSuppliersByIDs(ctx, product.SupplierIDs)
		if err != nil {
			return err
		}
		if len(found) != len(product.SupplierIDs) {
			known := make(map[int64]bool, len(found))
			for _, supplier := range found {
				known[supplier.ID] = true
			}
			for _, id := range product.SupplierIDs {
				if !known[id] {
					return apperr.NotFound("supplier %d not found", id)
				}
			}
		}
	}
	return nil
}

func (s *ProductService) Save(ctx context.Context, product *models.Product) error {
	ctx, span := util.StartSpan(ctx, "ProductService.Save")
	defer span.End()

	if err := s.validate(product); err != nil {
		return err
	}
	if err := s.resolveRefs(ctx, product); err != nil {
		return err
	}
	product.Deleted = false
	if err := s.repo.InsertProduct(ctx, product); err != nil {
		return err
	}
	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	return nil
}

func (s *ProductService) Update(ctx context.Context, id int64, product *models.Product) error {
	ctx, span := util.StartSpan(ctx, fmt.Sprintf("ProductService.Update %d", id))
	defer span.End()

	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.validate(product); err != nil {
		return err
	}
	if err := s.resolveRefs(ctx, product); err != nil {
		return err
	}

	existing.Name = product.Name
	existing.Price = product.Price
	existing.StockQuantity = product.StockQuantity
	existing.CategoryID = product.CategoryID
	existing.ManufacturerID = product.ManufacturerID
	existing.SupplierIDs = product.SupplierIDs
	return s.repo.UpdateProduct(ctx, existing)
}

func (s *ProductService) LogicDelete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetProductDeleted(ctx, id, true); err != nil {
		return err
	}
	util.EntitiesSoftDeletedTotal.WithLabelValues("products").Inc()
	return nil
}

func (s *ProductService) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetProductsDeleted(ctx, ids, true)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, id)
}

func (s *ProductService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteProducts(ctx, ids)
}

func (s *ProductService) Restore(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetProductDeleted(ctx, id, false); err != nil {
		return err
	}
	util.EntitiesRestoredTotal.WithLabelValues("products").Inc()
	return nil
}

func (s *ProductService) RestoreBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetProductsDeleted(ctx, ids, false)
}
