package service

import (
	"context"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"

	"go.uber.org/zap"
)

type SupplierRepository interface {
	ListSuppliers(ctx context.Context, deleted bool, req store.PageRequest) (store.Page[models.Supplier], error)
	SearchSuppliersByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Supplier], error)
	GetSupplierByID(ctx context.Context, id int64) (*models.Supplier, error)
	InsertSupplier(ctx context.Context, supplier *models.Supplier) error
	UpdateSupplier(ctx context.Context, supplier *models.Supplier) error
	SetSupplierDeleted(ctx context.Context, id int64, deleted bool) error
	SetSuppliersDeleted(ctx context.Context, ids []int64, deleted bool) error
	DeleteSupplier(ctx context.Context, id int64) error
	DeleteSuppliers(ctx context.Context, ids []int64) error
}

type SupplierService struct {
	repo   SupplierRepository
	logger *zap.Logger
}

func NewSupplierService(repo SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo, logger: util.GetLogger()}
}

func (s *SupplierService) FindAllActive(ctx context.Context, req store.PageRequest) (store.Page[models.Supplier], error) {
	return s.repo.ListSuppliers(ctx, false, req)
}

func (s *SupplierService) FindAllDeleted(ctx context.Context, req store.PageRequest) (store.Page[models.Supplier], error) {
	return s.repo.ListSuppliers(ctx, true, req)
}

func (s *SupplierService) SearchByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Supplier], error) {
	return s.repo.SearchSuppliersByName(ctx, query, req)
}

func (s *SupplierService) FindByID(ctx context.Context, id int64) (*models.Supplier, error) {
	supplier, err := s.repo.GetSupplierByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperr.NotFound("supplier %d not found", id)
	}
	return supplier, nil
}

func (s *SupplierService) Save(ctx context.Context, supplier *models.Supplier) error {
	if supplier.Name == "" {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	supplier.Deleted = false
	return s.repo.InsertSupplier(ctx, supplier)
}

func (s *SupplierService) Update(ctx context.Context, id int64, supplier *models.Supplier) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	existing.Name = supplier.Name
	existing.ContactPerson = supplier.ContactPerson
	existing.Email = supplier.Email
	existing.Phone = supplier.Phone
	existing.Address = supplier.Address
	return s.repo.UpdateSupplier(ctx, existing)
}

func (s *SupplierService) LogicDelete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetSupplierDeleted(ctx, id, true); err != nil {
		return err
	}
	util.EntitiesSoftDeletedTotal.WithLabelValues("suppliers").Inc()
	return nil
}

func (s *SupplierService) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetSuppliersDeleted(ctx, ids, true)
}

func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteSupplier(ctx, id)
}

func (s *SupplierService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteSuppliers(ctx, ids)
}

func (s *SupplierService) Restore(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetSupplierDeleted(ctx, id, false); err != nil {
		return err
	}
	util.EntitiesRestoredTotal.WithLabelValues("suppliers").Inc()
	return nil
}

func (s *SupplierService) RestoreBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetSuppliersDeleted(ctx, ids, false)
}
