package store

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/internal/models"
)

var userSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

func (s *Store) ListUsers(ctx context.Context, deleted bool, req PageRequest) (Page[models.User], error) {
	return selectPage[models.User](ctx, s.db, "users",
		"WHERE deleted = $1", req.orderClause(userSortColumns), []any{deleted}, req)
}

func (s *Store) SearchUsersByName(ctx context.Context, query string, req PageRequest) (Page[models.User], error) {
	return selectPage[models.User](ctx, s.db, "users",
		"WHERE deleted = false AND name ILIKE '%' || $1 || '%'",
		req.orderClause(userSortColumns), []any{query}, req)
}

func (s *Store) SearchUsersByEmail(ctx context.Context, query string, req PageRequest) (Page[models.User], error) {
	return selectPage[models.User](ctx, s.db, "users",
		"WHERE deleted = false AND email ILIKE '%' || $1 || '%'",
		req.orderClause(userSortColumns), []any{query}, req)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByLogin resolves a non-deleted user by email or phone, the two
// identifiers the login form accepts.
func (s *Store) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE (email = $1 OR phone = $1) AND deleted = false", login)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailInUse reports whether another non-deleted user holds the email.
func (s *Store) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted = false AND id <> $2)",
		email, excludeID)
	return exists, err
}

// PhoneInUse reports whether another non-deleted user holds the phone.
func (s *Store) PhoneInUse(ctx context.Context, phone string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM users WHERE phone = $1 AND deleted = false AND id <> $2)",
		phone, excludeID)
	return exists, err
}

func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, phone, password, address, role_id, active, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	return s.db.GetContext(ctx, user, query,
		user.Name, user.Email, user.Phone, user.Password,
		user.Address, user.RoleID, user.Active, user.Deleted)
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, email = $2, phone = $3, password = $4,
		    address = $5, role_id = $6, active = $7
		WHERE id = $8`,
		user.Name, user.Email, user.Phone, user.Password,
		user.Address, user.RoleID, user.Active, user.ID)
	if err != nil {
		return err
	}
	return requireAffected(result, "users", user.ID)
}

// TouchLastLogin stamps a successful login.
func (s *Store) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = NOW() WHERE id = $1", id)
	return err
}

func (s *Store) SetUserDeleted(ctx context.Context, id int64, deleted bool) error {
	return s.setDeleted(ctx, "users", id, deleted)
}

func (s *Store) SetUsersDeleted(ctx context.Context, ids []int64, deleted bool) error {
	return s.setDeletedBatch(ctx, "users", ids, deleted)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "users", id)
}

func (s *Store) DeleteUsers(ctx context.Context, ids []int64) error {
	return s.deleteRows(ctx, "users", ids)
}
