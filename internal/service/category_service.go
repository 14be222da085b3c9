package service

import (
	"context"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"

	"go.uber.org/zap"
)

type CategoryRepository interface {
	ListCategories(ctx context.Context, deleted bool, req store.PageRequest) (store.Page[models.Category], error)
	SearchCategoriesByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Category], error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	CategoryNameInUse(ctx context.Context, name string, excludeID int64) (bool, error)
	InsertCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	SetCategoryDeleted(ctx context.Context, id int64, deleted bool) error
	SetCategoriesDeleted(ctx context.Context, ids []int64, deleted bool) error
	DeleteCategory(ctx context.Context, id int64) error
	DeleteCategories(ctx context.Context, ids []int64) error
}

type CategoryService struct {
	repo   CategoryRepository
	logger *zap.Logger
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, logger: util.GetLogger()}
}

func (s *CategoryService) FindAllActive(ctx context.Context, req store.PageRequest) (store.Page[models.Category], error) {
	return s.repo.ListCategories(ctx, false, req)
}

func (s *CategoryService) FindAllDeleted(ctx context.Context, req store.PageRequest) (store.Page[models.Category], error) {
	return s.repo.ListCategories(ctx, true, req)
}

func (s *CategoryService) SearchByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Category], error) {
	return s.repo.SearchCategoriesByName(ctx, query, req)
}

func (s *CategoryService) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("category %d not found", id)
	}
	return category, nil
}

func (s *CategoryService) Save(ctx context.Context, category *models.Category) error {
	if category.Name == "" {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	inUse, err := s.repo.CategoryNameInUse(ctx, category.Name, 0)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "category name already in use"})
	}
	category.Deleted = false
	return s.repo.InsertCategory(ctx, category)
}

func (s *CategoryService) Update(ctx context.Context, id int64, category *models.Category) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	inUse, err := s.repo.CategoryNameInUse(ctx, category.Name, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "category name already in use"})
	}
	existing.Name = category.Name
	existing.Description = category.Description
	return s.repo.UpdateCategory(ctx, existing)
}

func (s *CategoryService) LogicDelete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetCategoryDeleted(ctx, id, true); err != nil {
		return err
	}
	util.EntitiesSoftDeletedTotal.WithLabelValues("categories").Inc()
	return nil
}

func (s *CategoryService) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetCategoriesDeleted(ctx, ids, true)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteCategory(ctx, id)
}

func (s *CategoryService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteCategories(ctx, ids)
}

func (s *CategoryService) Restore(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetCategoryDeleted(ctx, id, false); err != nil {
		return err
	}
	util.EntitiesRestoredTotal.WithLabelValues("categories").Inc()
	return nil
}

func (s *CategoryService) RestoreBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetCategoriesDeleted(ctx, ids, false)
}
