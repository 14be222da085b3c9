package service

import (
	"context"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"

	"go.uber.org/zap"
)

type ManufacturerRepository interface {
	ListManufacturers(ctx context.Context, deleted bool, req store.PageRequest) (store.Page[models.Manufacturer], error)
	SearchManufacturersByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Manufacturer], error)
	FilterManufacturersByCountry(ctx context.Context, country string, req store.PageRequest) (store.Page[models.Manufacturer], error)
	GetManufacturerByID(ctx context.Context, id int64) (*models.Manufacturer, error)
	InsertManufacturer(ctx context.Context, m *models.Manufacturer) error
	UpdateManufacturer(ctx context.Context, m *models.Manufacturer) error
	SetManufacturerDeleted(ctx context.Context, id int64, deleted bool) error
	SetManufacturersDeleted(ctx context.Context, ids []int64, deleted bool) error
	DeleteManufacturer(ctx context.Context, id int64) error
	DeleteManufacturers(ctx context.Context, ids []int64) error
}

type ManufacturerService struct {
	repo   ManufacturerRepository
	logger *zap.Logger
}

func NewManufacturerService(repo ManufacturerRepository) *ManufacturerService {
	return &ManufacturerService{repo: repo, logger: util.GetLogger()}
}

func (s *ManufacturerService) FindAllActive(ctx context.Context, req store.PageRequest) (store.Page[models.Manufacturer], error) {
	return s.repo.ListManufacturers(ctx, false, req)
}

func (s *ManufacturerService) FindAllDeleted(ctx context.Context, req store.PageRequest) (store.Page[models.Manufacturer], error) {
	return s.repo.ListManufacturers(ctx, true, req)
}

func (s *ManufacturerService) SearchByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Manufacturer], error) {
	return s.repo.SearchManufacturersByName(ctx, query, req)
}

func (s *ManufacturerService) FilterByCountry(ctx context.Context, country string, req store.PageRequest) (store.Page[models.Manufacturer], error) {
	return s.repo.FilterManufacturersByCountry(ctx, country, req)
}

func (s *ManufacturerService) FindByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	m, err := s.repo.GetManufacturerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("manufacturer %d not found", id)
	}
	return m, nil
}

func (s *ManufacturerService) Save(ctx context.Context, m *models.Manufacturer) error {
	if m.Name == "" {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	m.Deleted = false
	return s.repo.InsertManufacturer(ctx, m)
}

func (s *ManufacturerService) Update(ctx context.Context, id int64, m *models.Manufacturer) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	existing.Name = m.Name
	existing.Country = m.Country
	existing.Email = m.Email
	existing.Phone = m.Phone
	existing.Address = m.Address
	return s.repo.UpdateManufacturer(ctx, existing)
}

func (s *ManufacturerService) LogicDelete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetManufacturerDeleted(ctx, id, true); err != nil {
		return err
	}
	util.EntitiesSoftDeletedTotal.WithLabelValues("manufacturers").Inc()
	return nil
}

func (s *ManufacturerService) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetManufacturersDeleted(ctx, ids, true)
}

func (s *ManufacturerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteManufacturer(ctx, id)
}

func (s *ManufacturerService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteManufacturers(ctx, ids)
}

func (s *ManufacturerService) Restore(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetManufacturerDeleted(ctx, id, false); err != nil {
		return err
	}
	util.EntitiesRestoredTotal.WithLabelValues("manufacturers").Inc()
	return nil
}

func (s *ManufacturerService) RestoreBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetManufacturersDeleted(ctx, ids, false)
}
