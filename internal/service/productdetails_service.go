package service

import (
	"context"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"

	"go.uber.org/zap"
)

type ProductDetailsRepository interface {
	ListProductDetails(ctx context.Context, deleted bool, req store.PageRequest) (store.Page[models.ProductDetails], error)
	SearchProductDetailsByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.ProductDetails], error)
	FilterProductDetailsByProduct(ctx context.Context, productID int64, req store.PageRequest) (store.Page[models.ProductDetails], error)
	GetProductDetailsByID(ctx context.Context, id int64) (*models.ProductDetails, error)
	InsertProductDetails(ctx context.Context, details *models.ProductDetails) error
	UpdateProductDetails(ctx context.Context, details *models.ProductDetails) error
	SetProductDetailsDeleted(ctx context.Context, id int64, deleted bool) error
	SetProductDetailsDeletedBatch(ctx context.Context, ids []int64, deleted bool) error
	DeleteProductDetails(ctx context.Context, id int64) error
	DeleteProductDetailsBatch(ctx context.Context, ids []int64) error
}

type ProductResolver interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
}

type ProductDetailsService struct {
	repo     ProductDetailsRepository
	products ProductResolver
	logger   *zap.Logger
}

func NewProductDetailsService(repo ProductDetailsRepository, products ProductResolver) *ProductDetailsService {
	return &ProductDetailsService{repo: repo, products: products, logger: util.GetLogger()}
}

func (s *ProductDetailsService) FindAllActive(ctx context.Context, req store.PageRequest) (store.Page[models.ProductDetails], error) {
	return s.repo.ListProductDetails(ctx, false, req)
}

func (s *ProductDetailsService) FindAllDeleted(ctx context.Context, req store.PageRequest) (store.Page[models.ProductDetails], error) {
	return s.repo.ListProductDetails(ctx, true, req)
}

func (s *ProductDetailsService) SearchByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.ProductDetails], error) {
	return s.repo.SearchProductDetailsByName(ctx, query, req)
}

func (s *ProductDetailsService) FilterByProduct(ctx context.Context, productID int64, req store.PageRequest) (store.Page[models.ProductDetails], error) {
	return s.repo.FilterProductDetailsByProduct(ctx, productID, req)
}

func (s *ProductDetailsService) FindByID(ctx context.Context, id int64) (*models.ProductDetails, error) {
	details, err := s.repo.GetProductDetailsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, apperr.NotFound("product details %d not found", id)
	}
	return details, nil
}

func (s *ProductDetailsService) resolveProduct(ctx context.Context, productID int64) error {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperr.NotFound("product %d not found", productID)
	}
	return nil
}

func (s *ProductDetailsService) Save(ctx context.Context, details *models.ProductDetails) error {
	if details.CharacteristicName == "" {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "characteristicName", Message: "must not be blank"})
	}
	if err := s.resolveProduct(ctx, details.ProductID); err != nil {
		return err
	}
	details.Deleted = false
	return s.repo.InsertProductDetails(ctx, details)
}

func (s *ProductDetailsService) Update(ctx context.Context, id int64, details *models.ProductDetails) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.resolveProduct(ctx, details.ProductID); err != nil {
		return err
	}
	existing.ProductID = details.ProductID
	existing.CharacteristicName = details.CharacteristicName
	existing.CharacteristicValue = details.CharacteristicValue
	return s.repo.UpdateProductDetails(ctx, existing)
}

func (s *ProductDetailsService) LogicDelete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetProductDetailsDeleted(ctx, id, true); err != nil {
		return err
	}
	util.EntitiesSoftDeletedTotal.WithLabelValues("productdetails").Inc()
	return nil
}

func (s *ProductDetailsService) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetProductDetailsDeletedBatch(ctx, ids, true)
}

func (s *ProductDetailsService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteProductDetails(ctx, id)
}

func (s *ProductDetailsService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteProductDetailsBatch(ctx, ids)
}

func (s *ProductDetailsService) Restore(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetProductDetailsDeleted(ctx, id, false); err != nil {
		return err
	}
	util.EntitiesRestoredTotal.WithLabelValues("productdetails").Inc()
	return nil
}

func (s *ProductDetailsService) RestoreBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetProductDetailsDeletedBatch(ctx, ids, false)
}
