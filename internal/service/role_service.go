package service

import (
	"context"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"

	"go.uber.org/zap"
)

// RoleRepository is the slice of the store the role service needs.
type RoleRepository interface {
	ListRoles(ctx context.Context, deleted bool, req store.PageRequest) (store.Page[models.Role], error)
	SearchRolesByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Role], error)
	GetRoleByID(ctx context.Context, id int64) (*models.Role, error)
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
	RoleNameInUse(ctx context.Context, name string, excludeID int64) (bool, error)
	InsertRole(ctx context.Context, role *models.Role) error
	UpdateRole(ctx context.Context, role *models.Role) error
	SetRoleDeleted(ctx context.Context, id int64, deleted bool) error
	SetRolesDeleted(ctx context.Context, ids []int64, deleted bool) error
	DeleteRole(ctx context.Context, id int64) error
	DeleteRoles(ctx context.Context, ids []int64) error
}

// RoleService implements the uniform CRUD + soft-delete/restore contract
// for roles.
type RoleService struct {
	repo   RoleRepository
	logger *zap.Logger
}

func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{repo: repo, logger: util.GetLogger()}
}

// SeedDefaults creates the three built-in roles when absent.
func (s *RoleService) SeedDefaults(ctx context.Context) error {
	seeds := []models.Role{
		{Name: models.RoleAdministrator, Description: "Full access to every system function"},
		{Name: models.RoleManager, Description: "Management of products, orders and reviews"},
		{Name: models.RoleClient, Description: "Personal account and order placement"},
	}
	for i := range seeds {
		existing, err := s.repo.GetRoleByName(ctx, seeds[i].Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.repo.InsertRole(ctx, &seeds[i]); err != nil {
			return err
		}
		s.logger.Info("Seeded role", zap.String("name", seeds[i].Name))
	}
	return nil
}

func (s *RoleService) FindAllActive(ctx context.Context, req store.PageRequest) (store.Page[models.Role], error) {
	return s.repo.ListRoles(ctx, false, req)
}

func (s *RoleService) FindAllDeleted(ctx context.Context, req store.PageRequest) (store.Page[models.Role], error) {
	return s.repo.ListRoles(ctx, true, req)
}

func (s *RoleService) SearchByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.Role], error) {
	return s.repo.SearchRolesByName(ctx, query, req)
}

func (s *RoleService) FindByID(ctx context.Context, id int64) (*models.Role, error) {
	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperr.NotFound("role %d not found", id)
	}
	return role, nil
}

// Save creates the role. Saved entities always start active.
func (s *RoleService) Save(ctx context.Context, role *models.Role) error {
	if role.Name == "" {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	inUse, err := s.repo.RoleNameInUse(ctx, role.Name, 0)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "role name already in use"})
	}
	role.Deleted = false
	return s.repo.InsertRole(ctx, role)
}

func (s *RoleService) Update(ctx context.Context, id int64, role *models.Role) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	inUse, err := s.repo.RoleNameInUse(ctx, role.Name, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "role name already in use"})
	}
	existing.Name = role.Name
	existing.Description = role.Description
	return s.repo.UpdateRole(ctx, existing)
}

func (s *RoleService) LogicDelete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetRoleDeleted(ctx, id, true); err != nil {
		return err
	}
	util.EntitiesSoftDeletedTotal.WithLabelValues("roles").Inc()
	return nil
}

func (s *RoleService) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetRolesDeleted(ctx, ids, true)
}

func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteRole(ctx, id)
}

func (s *RoleService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteRoles(ctx, ids)
}

// Restore clears the deleted flag; restoring an active role is a no-op.
func (s *RoleService) Restore(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetRoleDeleted(ctx, id, false); err != nil {
		return err
	}
	util.EntitiesRestoredTotal.WithLabelValues("roles").Inc()
	return nil
}

func (s *RoleService) RestoreBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetRolesDeleted(ctx, ids, false)
}
