package service

import (
	"context"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"

	"go.uber.org/zap"
)

type UserRepository interface {
	ListUsers(ctx context.Context, deleted bool, req store.PageRequest) (store.Page[models.User], error)
	SearchUsersByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.User], error)
	SearchUsersByEmail(ctx context.Context, query string, req store.PageRequest) (store.Page[models.User], error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)
	PhoneInUse(ctx context.Context, phone string, excludeID int64) (bool, error)
	InsertUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	SetUserDeleted(ctx context.Context, id int64, deleted bool) error
	SetUsersDeleted(ctx context.Context, ids []int64, deleted bool) error
	DeleteUser(ctx context.Context, id int64) error
	DeleteUsers(ctx context.Context, ids []int64) error
}

// PasswordHasher abstracts bcrypt so tests can plug a cheap fake.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type UserService struct {
	repo   UserRepository
	roles  RoleRepository
	hasher PasswordHasher
	logger *zap.Logger
}

func NewUserService(repo UserRepository, roles RoleRepository, hasher PasswordHasher) *UserService {
	return &UserService{repo: repo, roles: roles, hasher: hasher, logger: util.GetLogger()}
}

func (s *UserService) FindAllActive(ctx context.Context, req store.PageRequest) (store.Page[models.User], error) {
	return s.repo.ListUsers(ctx, false, req)
}

func (s *UserService) FindAllDeleted(ctx context.Context, req store.PageRequest) (store.Page[models.User], error) {
	return s.repo.ListUsers(ctx, true, req)
}

func (s *UserService) SearchByName(ctx context.Context, query string, req store.PageRequest) (store.Page[models.User], error) {
	return s.repo.SearchUsersByName(ctx, query, req)
}

func (s *UserService) SearchByEmail(ctx context.Context, query string, req store.PageRequest) (store.Page[models.User], error) {
	return s.repo.SearchUsersByEmail(ctx, query, req)
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", id)
	}
	return user, nil
}

func (s *UserService) validate(ctx context.Context, user *models.User, excludeID int64) error {
	var fields []apperr.FieldError
	if user.Name == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	if user.Email == "" {
		fields = append(fields, apperr.FieldError{Field: "email", Message: "must not be blank"})
	}
	if len(fields) > 0 {
		return apperr.Validation("validation failed", fields...)
	}

	emailTaken, err := s.repo.EmailInUse(ctx, user.Email, excludeID)
	if err != nil {
		return err
	}
	if emailTaken {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "email", Message: "email already in use"})
	}
	if user.Phone != "" {
		phoneTaken, err := s.repo.PhoneInUse(ctx, user.Phone, excludeID)
		if err != nil {
			return err
		}
		if phoneTaken {
			return apperr.Validation("validation failed",
				apperr.FieldError{Field: "phone", Message: "phone already in use"})
		}
	}
	return nil
}

func (s *UserService) resolveRole(ctx context.Context, roleID int64) error {
	role, err := s.roles.GetRoleByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return apperr.NotFound("role %d not found", roleID)
	}
	return nil
}

// Save creates the user with a hashed password. The plaintext never
// reaches the store.
func (s *UserService) Save(ctx context.Context, user *models.User) error {
	if err := s.validate(ctx, user, 0); err != nil {
		return err
	}
	if user.Password == "" {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "password", Message: "must not be blank"})
	}
	if err := s.resolveRole(ctx, user.RoleID); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return apperr.Internal(err)
	}
	user.Password = hash
	user.Deleted = false
	return s.repo.InsertUser(ctx, user)
}

// Update rewrites the account. An empty password means "keep the
// current one"; a non-empty password is hashed exactly once.
func (s *UserService) Update(ctx context.Context, id int64, user *models.User) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.validate(ctx, user, id); err != nil {
		return err
	}
	if err := s.resolveRole(ctx, user.RoleID); err != nil {
		return err
	}

	existing.Name = user.Name
	existing.Email = user.Email
	existing.Phone = user.Phone
	existing.Address = user.Address
	existing.RoleID = user.RoleID
	existing.Active = user.Active
	if user.Password != "" {
		hash, err := s.hasher.Hash(user.Password)
		if err != nil {
			return apperr.Internal(err)
		}
		existing.Password = hash
	}
	return s.repo.UpdateUser(ctx, existing)
}

func (s *UserService) LogicDelete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetUserDeleted(ctx, id, true); err != nil {
		return err
	}
	util.EntitiesSoftDeletedTotal.WithLabelValues("users").Inc()
	return nil
}

func (s *UserService) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetUsersDeleted(ctx, ids, true)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}

func (s *UserService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteUsers(ctx, ids)
}

func (s *UserService) Restore(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetUserDeleted(ctx, id, false); err != nil {
		return err
	}
	util.EntitiesRestoredTotal.WithLabelValues("users").Inc()
	return nil
}

func (s *UserService) RestoreBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetUsersDeleted(ctx, ids, false)
}
